package generator

import (
	"reflect"
	"testing"

	lir "github.com/oasforge/oasgen/pkg/generator/legacyir"
	"github.com/oasforge/oasgen/pkg/ir"
)

func TestSchemaToIRPrimitives(t *testing.T) {
	tests := []struct {
		name   string
		schema *ir.SchemaObject
		want   lir.IRSchemaKind
	}{
		{"string", &ir.SchemaObject{Kind: ir.KindString}, lir.IRKindString},
		{"integer", &ir.SchemaObject{Kind: ir.KindInteger}, lir.IRKindInteger},
		{"number", &ir.SchemaObject{Kind: ir.KindNumber}, lir.IRKindNumber},
		{"boolean", &ir.SchemaObject{Kind: ir.KindBoolean}, lir.IRKindBoolean},
		{"tuple", &ir.SchemaObject{Kind: ir.KindTuple, TupleConst: []any{"a", "b"}}, lir.IRKindTuple},
	}

	for _, test := range tests {
		result := schemaToIR(test.schema)
		if result.Kind != test.want {
			t.Errorf("schemaToIR(%s) kind = %q, expected %q", test.name, result.Kind, test.want)
		}
	}
}

func TestSchemaToIRRef(t *testing.T) {
	schema := &ir.SchemaObject{Kind: ir.KindRef, Ref: "#/components/schemas/Pet"}
	result := schemaToIR(schema)
	if result.Kind != lir.IRKindRef || result.Ref != "Pet" {
		t.Errorf("schemaToIR(ref) = %+v, expected ref to Pet", result)
	}
}

func TestSchemaToIREnum(t *testing.T) {
	schema := &ir.SchemaObject{
		Kind: ir.KindEnum,
		EnumMembers: []*ir.SchemaObject{
			{Const: "available"},
			{Const: "pending"},
			{Const: "sold"},
		},
	}
	result := schemaToIR(schema)
	if result.Kind != lir.IRKindEnum {
		t.Fatalf("schemaToIR(enum) kind = %q, expected enum", result.Kind)
	}
	if len(result.EnumValues) != 3 || result.EnumValues[0] != "available" {
		t.Errorf("schemaToIR(enum) values = %v", result.EnumValues)
	}
	if result.EnumBase != lir.IRKindString {
		t.Errorf("schemaToIR(enum) base = %q, expected string", result.EnumBase)
	}
}

func TestSchemaToIRArray(t *testing.T) {
	schema := &ir.SchemaObject{Kind: ir.KindArray, Items: []*ir.SchemaObject{{Kind: ir.KindString}}}
	result := schemaToIR(schema)
	if result.Kind != lir.IRKindArray || result.Items == nil || result.Items.Kind != lir.IRKindString {
		t.Errorf("schemaToIR(array) = %+v", result)
	}
}

func TestSchemaToIRObjectInline(t *testing.T) {
	schema := &ir.SchemaObject{
		Kind: ir.KindObject,
		Properties: []ir.Field{
			{Name: "id", Schema: &ir.SchemaObject{Kind: ir.KindInteger}, Required: true},
			{Name: "name", Schema: &ir.SchemaObject{Kind: ir.KindString}},
		},
	}
	result := schemaToIR(schema)
	if result.Kind != lir.IRKindObject || len(result.Properties) != 2 {
		t.Fatalf("schemaToIR(object) = %+v", result)
	}
	if !result.Properties[0].Required || result.Properties[1].Required {
		t.Errorf("schemaToIR(object) required flags = %+v", result.Properties)
	}
}

func TestSchemaToIRComposite(t *testing.T) {
	schema := &ir.SchemaObject{
		Kind:            ir.KindComposite,
		LogicalOperator: ir.LogicalAnd,
		Items: []*ir.SchemaObject{
			{Kind: ir.KindRef, Ref: "#/components/schemas/Base"},
			{Kind: ir.KindObject, Properties: []ir.Field{{Name: "extra", Schema: &ir.SchemaObject{Kind: ir.KindString}}}},
		},
	}
	result := schemaToIR(schema)
	if result.Kind != lir.IRKindAllOf || len(result.AllOf) != 2 {
		t.Fatalf("schemaToIR(composite and) = %+v", result)
	}

	schema.LogicalOperator = ir.LogicalOr
	result = schemaToIR(schema)
	if result.Kind != lir.IRKindOneOf {
		t.Errorf("schemaToIR(composite or) kind = %q, expected oneOf", result.Kind)
	}
}

// TestSchemaToIRNamedSynthesizesNestedObject verifies that a named component
// containing an inline nested object produces a separate model def, the way
// Pet.tags synthesizes Pet_Tags in a real generated OpenAPI document.
func TestSchemaToIRNamedSynthesizesNestedObject(t *testing.T) {
	schema := &ir.SchemaObject{
		Kind: ir.KindObject,
		Properties: []ir.Field{
			{Name: "id", Schema: &ir.SchemaObject{Kind: ir.KindString}, Required: true},
			{Name: "category", Schema: &ir.SchemaObject{
				Kind: ir.KindObject,
				Properties: []ir.Field{
					{Name: "id", Schema: &ir.SchemaObject{Kind: ir.KindInteger}},
					{Name: "name", Schema: &ir.SchemaObject{Kind: ir.KindString}},
				},
			}},
		},
	}

	var out []lir.IRModelDef
	seen := map[string]struct{}{"Pet": {}}
	result := schemaToIRNamed(schema, "Pet", "", false, &out, seen)

	if result.Kind != lir.IRKindObject {
		t.Fatalf("schemaToIRNamed(Pet) kind = %q, expected object", result.Kind)
	}
	var categoryField *lir.IRField
	for i := range result.Properties {
		if result.Properties[i].Name == "category" {
			categoryField = &result.Properties[i]
		}
	}
	if categoryField == nil || categoryField.Type.Kind != lir.IRKindRef || categoryField.Type.Ref != "Pet_Category" {
		t.Fatalf("category field = %+v", categoryField)
	}

	found := false
	for _, def := range out {
		if def.Name == "Pet_Category" {
			found = true
			if len(def.Schema.Properties) != 2 {
				t.Errorf("Pet_Category def has %d properties, expected 2", len(def.Schema.Properties))
			}
		}
	}
	if !found {
		t.Errorf("expected a synthesized Pet_Category model def, got %+v", out)
	}
}

// TestSchemaToIRNamedSynthesizesEnum verifies an inline enum property gets
// promoted to its own named model def and replaced with a ref, mirroring
// what transform.LiftEnums does, for the case where the enum still arrives
// inline because enum lifting is not enabled.
func TestSchemaToIRNamedSynthesizesEnum(t *testing.T) {
	schema := &ir.SchemaObject{
		Kind: ir.KindObject,
		Properties: []ir.Field{
			{Name: "status", Schema: &ir.SchemaObject{
				Kind:        ir.KindEnum,
				EnumMembers: []*ir.SchemaObject{{Const: "available"}, {Const: "sold"}},
			}},
		},
	}

	var out []lir.IRModelDef
	seen := map[string]struct{}{"Pet": {}}
	result := schemaToIRNamed(schema, "Pet", "", false, &out, seen)

	statusField := result.Properties[0]
	if statusField.Type.Kind != lir.IRKindRef || statusField.Type.Ref != "Pet_Status" {
		t.Fatalf("status field = %+v", statusField)
	}
	if len(out) != 1 || out[0].Name != "Pet_Status" || out[0].Schema.Kind != lir.IRKindEnum {
		t.Fatalf("expected one Pet_Status enum def, got %+v", out)
	}
}

func TestAnnotationsOfAccessScope(t *testing.T) {
	tests := []struct {
		scope         ir.AccessScope
		wantReadOnly  bool
		wantWriteOnly bool
	}{
		{ir.AccessUndefined, false, false},
		{ir.AccessRead, true, false},
		{ir.AccessWrite, false, true},
	}

	for _, test := range tests {
		result := annotationsOf(&ir.SchemaObject{AccessScope: test.scope, Description: "desc"})
		if result.ReadOnly != test.wantReadOnly || result.WriteOnly != test.wantWriteOnly {
			t.Errorf("annotationsOf(%q) = %+v", test.scope, result)
		}
		if result.Description != "desc" {
			t.Errorf("annotationsOf(%q) lost description: %+v", test.scope, result)
		}
	}
}

func TestAnnotationsOfNil(t *testing.T) {
	result := annotationsOf(nil)
	if !reflect.DeepEqual(result, lir.IRAnnotations{}) {
		t.Errorf("annotationsOf(nil) = %+v, expected zero value", result)
	}
}
