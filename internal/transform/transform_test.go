package transform

import (
	"testing"

	"github.com/oasforge/oasgen/pkg/ir"
)

func TestLiftEnumsReplacesInlineEnumWithRef(t *testing.T) {
	model := ir.NewModel()
	model.AddComponent("#/components/schemas/Pet", &ir.SchemaObject{
		Kind: ir.KindObject,
		Properties: []ir.Field{
			{Name: "status", Schema: &ir.SchemaObject{
				Kind: ir.KindEnum,
				EnumMembers: []*ir.SchemaObject{
					{Kind: ir.KindString, Const: "available"},
					{Kind: ir.KindString, Const: "sold"},
				},
			}},
		},
	})

	LiftEnums(model)

	pet := model.Components["#/components/schemas/Pet"]
	statusSchema := pet.Properties[0].Schema
	if statusSchema.Kind != ir.KindRef {
		t.Fatalf("expected status property to become a ref, got %v", statusSchema.Kind)
	}
	lifted, ok := model.Components[statusSchema.Ref]
	if !ok {
		t.Fatalf("expected lifted component at %s", statusSchema.Ref)
	}
	if lifted.Kind != ir.KindEnum || len(lifted.EnumMembers) != 2 {
		t.Fatalf("expected lifted enum with 2 members, got %+v", lifted)
	}
}

func TestLiftEnumsIsIdempotent(t *testing.T) {
	model := ir.NewModel()
	model.AddComponent("#/components/schemas/Pet", &ir.SchemaObject{
		Kind: ir.KindObject,
		Properties: []ir.Field{
			{Name: "status", Schema: &ir.SchemaObject{
				Kind:        ir.KindEnum,
				EnumMembers: []*ir.SchemaObject{{Kind: ir.KindString, Const: "a"}},
			}},
		},
	})
	LiftEnums(model)
	before := len(model.ComponentOrder)
	LiftEnums(model)
	if len(model.ComponentOrder) != before {
		t.Fatalf("expected second LiftEnums pass to be a no-op, component count changed %d -> %d", before, len(model.ComponentOrder))
	}
}

func TestBifurcateReadWriteSplitsMixedAccessObject(t *testing.T) {
	model := ir.NewModel()
	model.AddComponent("#/components/schemas/Pet", &ir.SchemaObject{
		Kind: ir.KindObject,
		Properties: []ir.Field{
			{Name: "id", Schema: &ir.SchemaObject{Kind: ir.KindInteger, AccessScope: ir.AccessRead}},
			{Name: "name", Schema: &ir.SchemaObject{Kind: ir.KindString}},
			{Name: "secret", Schema: &ir.SchemaObject{Kind: ir.KindString, AccessScope: ir.AccessWrite}},
		},
	})
	pi := model.Path("/pets")
	pi.AddOperation("POST", &ir.OperationObject{
		ID:        "createPet",
		Body:      &ir.RequestBodyObject{Schema: &ir.SchemaObject{Kind: ir.KindRef, Ref: "#/components/schemas/Pet"}},
		Responses: map[string]*ir.ResponseObject{"200": {Schema: &ir.SchemaObject{Kind: ir.KindRef, Ref: "#/components/schemas/Pet"}}},
	})
	pi.Operations["POST"].ResponseOrder = []string{"200"}

	if err := BifurcateReadWrite(model); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writable := model.Components["#/components/schemas/PetWritable"]
	if writable == nil || len(writable.Properties) != 2 {
		t.Fatalf("expected writable variant with 2 properties (name, secret), got %+v", writable)
	}
	readable := model.Components["#/components/schemas/PetReadable"]
	if readable == nil || len(readable.Properties) != 2 {
		t.Fatalf("expected readable variant with 2 properties (id, name), got %+v", readable)
	}

	op := pi.Operations["POST"]
	if op.Body.Schema.Ref != "#/components/schemas/PetWritable" {
		t.Fatalf("expected request body repointed to writable variant, got %s", op.Body.Schema.Ref)
	}
	if op.Responses["200"].Schema.Ref != "#/components/schemas/PetReadable" {
		t.Fatalf("expected response repointed to readable variant, got %s", op.Responses["200"].Schema.Ref)
	}
}
