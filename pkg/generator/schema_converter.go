package generator

import (
	"fmt"

	"github.com/oasforge/oasgen/internal/refresolver"
	lir "github.com/oasforge/oasgen/pkg/generator/legacyir"
	"github.com/oasforge/oasgen/pkg/ir"
	"github.com/oasforge/oasgen/pkg/utils"
)

// schemaToIR converts one Model schema node into the flattened legacyir
// shape, without synthesizing names for nested inline objects: this is the
// right behavior for a parameter, request body, or response schema, none of
// which need a standalone named declaration of their own.
func schemaToIR(s *ir.SchemaObject) lir.IRSchema {
	if s == nil {
		return lir.IRSchema{Kind: lir.IRKindUnknown}
	}
	if s.IsRef() {
		return lir.IRSchema{Kind: lir.IRKindRef, Ref: refresolver.LastSegment(s.Ref)}
	}

	disc := discriminatorOf(s)

	if s.Kind == ir.KindComposite {
		return compositeToIR(s, disc, func(it *ir.SchemaObject) lir.IRSchema { return schemaToIR(it) })
	}

	switch s.Kind {
	case ir.KindString:
		return lir.IRSchema{Kind: lir.IRKindString, Nullable: s.Nullable, Format: s.Format, Discriminator: disc}
	case ir.KindInteger:
		return lir.IRSchema{Kind: lir.IRKindInteger, Nullable: s.Nullable, Format: s.Format, Discriminator: disc}
	case ir.KindNumber:
		return lir.IRSchema{Kind: lir.IRKindNumber, Nullable: s.Nullable, Format: s.Format, Discriminator: disc}
	case ir.KindBoolean:
		return lir.IRSchema{Kind: lir.IRKindBoolean, Nullable: s.Nullable, Discriminator: disc}
	case ir.KindEnum:
		return enumToIR(s, disc)
	case ir.KindArray:
		return arrayToIR(s, disc, func(it *ir.SchemaObject) lir.IRSchema { return schemaToIR(it) })
	case ir.KindTuple:
		return lir.IRSchema{Kind: lir.IRKindTuple, TupleConst: s.TupleConst, Nullable: s.Nullable, Discriminator: disc}
	case ir.KindObject:
		return objectToIR(s, disc, func(f *ir.SchemaObject) lir.IRSchema { return schemaToIR(f) })
	default:
		return lir.IRSchema{Kind: lir.IRKindUnknown, Nullable: s.Nullable, Discriminator: disc}
	}
}

// schemaToIRNamed is schemaToIR's naming-aware counterpart: used only while
// walking a top-level component, it gives every inline object or enum it
// encounters (anything the parser or transform pass left inline rather than
// promoting to its own component) a synthesized name of the form
// Parent_Field, appends a model def for it to out, and replaces the inline
// occurrence with a ref to that name.
func schemaToIRNamed(s *ir.SchemaObject, parentName, propName string, isArrayItem bool, out *[]lir.IRModelDef, seen map[string]struct{}) lir.IRSchema {
	if s == nil {
		return lir.IRSchema{Kind: lir.IRKindUnknown}
	}
	if s.IsRef() {
		return lir.IRSchema{Kind: lir.IRKindRef, Ref: refresolver.LastSegment(s.Ref)}
	}

	disc := discriminatorOf(s)
	named := func(it *ir.SchemaObject, sub string, arrayItem bool) lir.IRSchema {
		return schemaToIRNamed(it, parentName, sub, arrayItem, out, seen)
	}

	if s.Kind == ir.KindComposite {
		return compositeToIR(s, disc, func(it *ir.SchemaObject) lir.IRSchema { return named(it, propName, isArrayItem) })
	}

	switch s.Kind {
	case ir.KindEnum:
		base := nestedName(parentName, propName, isArrayItem)
		if _, ok := seen[base]; !ok {
			seen[base] = struct{}{}
			*out = append(*out, lir.IRModelDef{Name: base, Schema: enumToIR(s, disc), Annotations: annotationsOf(s)})
		}
		return lir.IRSchema{Kind: lir.IRKindRef, Ref: base, Nullable: s.Nullable}
	case ir.KindArray:
		if len(s.Items) == 1 && s.Items[0] != nil && (s.Items[0].Kind == ir.KindObject || s.Items[0].Kind == ir.KindEnum) {
			item := named(s.Items[0], propName, true)
			return lir.IRSchema{Kind: lir.IRKindArray, Items: &item, Nullable: s.Nullable, Discriminator: disc}
		}
		return arrayToIR(s, disc, func(it *ir.SchemaObject) lir.IRSchema { return named(it, propName, true) })
	case ir.KindObject:
		fields := make([]lir.IRField, 0, len(s.Properties))
		for _, f := range s.Properties {
			var fType lir.IRSchema
			if (propName != "" || isArrayItem) && f.Schema != nil && f.Schema.Kind == ir.KindObject && len(f.Schema.Properties) > 0 {
				base := nestedName(parentName, propName, isArrayItem) + "_" + utils.ToPascalCase(f.Name)
				if _, ok := seen[base]; !ok {
					seen[base] = struct{}{}
					*out = append(*out, namedObjectDef(f.Schema, base, out, seen))
				}
				fType = lir.IRSchema{Kind: lir.IRKindRef, Ref: base}
			} else {
				fType = named(f.Schema, f.Name, false)
			}
			fields = append(fields, lir.IRField{Name: f.Name, Type: &fType, Required: f.Required, Annotations: annotationsOf(f.Schema)})
		}
		var addl *lir.IRSchema
		if s.AdditionalProperties != nil {
			ap := named(s.AdditionalProperties, "Properties", false)
			addl = &ap
		}
		obj := lir.IRSchema{Kind: lir.IRKindObject, Properties: fields, AdditionalProperties: addl, Nullable: s.Nullable, Discriminator: disc}
		if propName == "" && !isArrayItem {
			return obj
		}
		base := nestedName(parentName, propName, isArrayItem)
		if _, ok := seen[base]; !ok {
			seen[base] = struct{}{}
			*out = append(*out, lir.IRModelDef{Name: base, Schema: obj, Annotations: annotationsOf(s)})
		}
		return lir.IRSchema{Kind: lir.IRKindRef, Ref: base}
	default:
		return schemaToIR(s)
	}
}

// namedObjectDef builds the model def for a nested object schema already
// assigned the name base, recursing into its own properties under that name.
func namedObjectDef(s *ir.SchemaObject, base string, out *[]lir.IRModelDef, seen map[string]struct{}) lir.IRModelDef {
	schema := schemaToIRNamed(&ir.SchemaObject{Kind: ir.KindObject, Properties: s.Properties, AdditionalProperties: s.AdditionalProperties, Nullable: s.Nullable}, base, "", false, out, seen)
	return lir.IRModelDef{Name: base, Schema: schema, Annotations: annotationsOf(s)}
}

func nestedName(parentName, propName string, isArrayItem bool) string {
	name := parentName
	if propName != "" {
		name += "_" + utils.ToPascalCase(propName)
	}
	if isArrayItem {
		name += "_Item"
	}
	return name
}

func compositeToIR(s *ir.SchemaObject, disc *lir.IRDiscriminator, convert func(*ir.SchemaObject) lir.IRSchema) lir.IRSchema {
	subs := make([]*lir.IRSchema, 0, len(s.Items))
	for _, it := range s.Items {
		sc := convert(it)
		subs = append(subs, &sc)
	}
	if s.LogicalOperator == ir.LogicalAnd {
		return lir.IRSchema{Kind: lir.IRKindAllOf, AllOf: subs, Nullable: s.Nullable, Discriminator: disc}
	}
	return lir.IRSchema{Kind: lir.IRKindOneOf, OneOf: subs, Nullable: s.Nullable, Discriminator: disc}
}

func arrayToIR(s *ir.SchemaObject, disc *lir.IRDiscriminator, convert func(*ir.SchemaObject) lir.IRSchema) lir.IRSchema {
	switch len(s.Items) {
	case 0:
		unknown := lir.IRSchema{Kind: lir.IRKindUnknown}
		return lir.IRSchema{Kind: lir.IRKindArray, Items: &unknown, Nullable: s.Nullable, Discriminator: disc}
	case 1:
		item := convert(s.Items[0])
		return lir.IRSchema{Kind: lir.IRKindArray, Items: &item, Nullable: s.Nullable, Discriminator: disc}
	default:
		parts := make([]*lir.IRSchema, 0, len(s.Items))
		for _, it := range s.Items {
			sc := convert(it)
			parts = append(parts, &sc)
		}
		union := lir.IRSchema{Kind: lir.IRKindOneOf, OneOf: parts}
		return lir.IRSchema{Kind: lir.IRKindArray, Items: &union, Nullable: s.Nullable, Discriminator: disc}
	}
}

func objectToIR(s *ir.SchemaObject, disc *lir.IRDiscriminator, convert func(*ir.SchemaObject) lir.IRSchema) lir.IRSchema {
	fields := make([]lir.IRField, 0, len(s.Properties))
	for _, f := range s.Properties {
		fType := convert(f.Schema)
		fields = append(fields, lir.IRField{Name: f.Name, Type: &fType, Required: f.Required, Annotations: annotationsOf(f.Schema)})
	}
	var addl *lir.IRSchema
	if s.AdditionalProperties != nil {
		ap := convert(s.AdditionalProperties)
		addl = &ap
	}
	return lir.IRSchema{Kind: lir.IRKindObject, Properties: fields, AdditionalProperties: addl, Nullable: s.Nullable, Discriminator: disc}
}

func enumToIR(s *ir.SchemaObject, disc *lir.IRDiscriminator) lir.IRSchema {
	vals := make([]string, 0, len(s.EnumMembers))
	raw := make([]any, 0, len(s.EnumMembers))
	for _, m := range s.EnumMembers {
		vals = append(vals, fmt.Sprint(m.Const))
		raw = append(raw, m.Const)
	}
	return lir.IRSchema{Kind: lir.IRKindEnum, EnumValues: vals, EnumRaw: raw, EnumBase: enumBaseKind(s), Nullable: s.Nullable, Discriminator: disc}
}

// enumBaseKind infers the wire kind backing an enum's members, inspecting
// the first member's const since the Model (unlike the raw document) no
// longer carries a separate declared `type` alongside the enum.
func enumBaseKind(s *ir.SchemaObject) lir.IRSchemaKind {
	if len(s.EnumMembers) == 0 {
		return lir.IRKindUnknown
	}
	switch s.EnumMembers[0].Const.(type) {
	case string:
		return lir.IRKindString
	case int, int32, int64:
		return lir.IRKindInteger
	case float32, float64:
		return lir.IRKindNumber
	case bool:
		return lir.IRKindBoolean
	default:
		return lir.IRKindUnknown
	}
}

func discriminatorOf(s *ir.SchemaObject) *lir.IRDiscriminator {
	if s.Discriminator == nil {
		return nil
	}
	return &lir.IRDiscriminator{PropertyName: s.Discriminator.PropertyName, Mapping: s.Discriminator.Mapping}
}

// annotationsOf carries over what the tree Model tracks per schema node:
// description, default and the read/write access scope. The Model doesn't
// retain a separate title, deprecated flag or example list per schema node
// (the dialect parser folds readOnly/writeOnly into AccessScope rather than
// keeping the booleans), so those three IRAnnotations fields are always zero
// coming out of this path.
func annotationsOf(s *ir.SchemaObject) lir.IRAnnotations {
	if s == nil {
		return lir.IRAnnotations{}
	}
	return lir.IRAnnotations{
		Description: s.Description,
		ReadOnly:    s.AccessScope == ir.AccessRead,
		WriteOnly:   s.AccessScope == ir.AccessWrite,
		Default:     s.Default,
	}
}
