package v3

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oasforge/oasgen/pkg/ir"
)

// schemaRefToIR converts one schema occurrence. A
// populated sr.Ref short-circuits into a Kind=Ref node: kin-openapi already
// resolved the pointer while loading, but the IR keeps the two apart so the
// schema emitter (internal/schemaemitter) can detect and break cycles
// itself rather than relying on kin-openapi's own resolved Value graph.
func schemaRefToIR(doc *openapi3.T, sr *openapi3.SchemaRef) *ir.SchemaObject {
	if sr == nil {
		return &ir.SchemaObject{Kind: ir.KindUnknown}
	}
	if sr.Ref != "" {
		return &ir.SchemaObject{Kind: ir.KindRef, Ref: sr.Ref}
	}
	return schemaValueToIR(doc, sr.Value)
}

func schemaValueToIR(doc *openapi3.T, s *openapi3.Schema) *ir.SchemaObject {
	if s == nil {
		return &ir.SchemaObject{Kind: ir.KindUnknown}
	}

	out := &ir.SchemaObject{
		Description: s.Description,
		Default:     s.Default,
		AccessScope: accessScopeOf(s),
	}
	if len(s.Extensions) > 0 {
		out.Extensions = s.Extensions
	}

	primary, nullable := primaryType(s)

	switch {
	case len(s.AllOf) > 0:
		out.Kind = ir.KindComposite
		out.LogicalOperator = ir.LogicalAnd
		out.Items = schemaRefsToIR(doc, s.AllOf)
		return out
	case len(s.OneOf) > 0:
		out.Kind = ir.KindComposite
		out.LogicalOperator = ir.LogicalOr
		out.Items = schemaRefsToIR(doc, s.OneOf)
		out.Discriminator = discriminatorOf(s)
		return out
	case len(s.AnyOf) > 0:
		out.Kind = ir.KindComposite
		out.LogicalOperator = ir.LogicalOr
		out.Items = schemaRefsToIR(doc, s.AnyOf)
		out.Discriminator = discriminatorOf(s)
		return out
	}

	if len(s.Enum) > 0 {
		out.Kind = ir.KindEnum
		base := inferEnumBaseKind(primary, s.Enum)
		for _, v := range s.Enum {
			if v == nil {
				out.Nullable = true
				continue
			}
			out.EnumMembers = append(out.EnumMembers, &ir.SchemaObject{Kind: base, Const: v})
		}
		return out
	}

	out.Nullable = nullable
	switch primary {
	case "string":
		out.Kind = ir.KindString
		out.Format = s.Format
		out.Pattern = s.Pattern
		out.MinLength = uint64ToIntPtr(&s.MinLength)
		out.MaxLength = uint64ToIntPtr(s.MaxLength)
		out.Const = s.Const
	case "integer":
		out.Kind = ir.KindInteger
		out.Format = s.Format
		out.Minimum = s.Min
		out.Maximum = s.Max
		out.ExclusiveMinimum = s.ExclusiveMin.IsTrue()
		out.ExclusiveMaximum = s.ExclusiveMax.IsTrue()
		out.Const = s.Const
	case "number":
		out.Kind = ir.KindNumber
		out.Format = s.Format
		out.Minimum = s.Min
		out.Maximum = s.Max
		out.ExclusiveMinimum = s.ExclusiveMin.IsTrue()
		out.ExclusiveMaximum = s.ExclusiveMax.IsTrue()
		out.Const = s.Const
	case "boolean":
		out.Kind = ir.KindBoolean
		out.Const = s.Const
	case "array":
		if isTupleConst(s) {
			out.Kind = ir.KindTuple
			out.TupleConst = s.Const.([]interface{})
			return out
		}
		out.Kind = ir.KindArray
		out.MinItems = uint64ToIntPtr(&s.MinItems)
		out.MaxItems = uint64ToIntPtr(s.MaxItems)
		if s.Items != nil {
			out.Items = []*ir.SchemaObject{schemaRefToIR(doc, s.Items)}
		}
	case "object":
		out.Kind = ir.KindObject
		populateObject(doc, s, out)
	default:
		if len(s.Properties) > 0 || s.AdditionalProperties.Has != nil || s.AdditionalProperties.Schema != nil {
			out.Kind = ir.KindObject
			populateObject(doc, s, out)
		} else {
			out.Kind = ir.KindUnknown
		}
	}
	return out
}

func populateObject(doc *openapi3.T, s *openapi3.Schema, out *ir.SchemaObject) {
	required := map[string]bool{}
	for _, name := range s.Required {
		required[name] = true
	}
	out.Required = required
	for _, name := range sortedKeys(s.Properties) {
		prop := schemaRefToIR(doc, s.Properties[name])
		out.Properties = append(out.Properties, ir.Field{
			Name:     name,
			Schema:   prop,
			Required: required[name],
		})
	}
	if s.AdditionalProperties.Schema != nil {
		out.AdditionalProperties = schemaRefToIR(doc, s.AdditionalProperties.Schema)
	} else if s.AdditionalProperties.Has != nil && *s.AdditionalProperties.Has {
		out.AdditionalProperties = &ir.SchemaObject{Kind: ir.KindUnknown}
	}
	if s.Discriminator != nil {
		out.Discriminator = discriminatorOf(s)
	}
}

func schemaRefsToIR(doc *openapi3.T, refs openapi3.SchemaRefs) []*ir.SchemaObject {
	out := make([]*ir.SchemaObject, 0, len(refs))
	for _, r := range refs {
		out = append(out, schemaRefToIR(doc, r))
	}
	return out
}

func discriminatorOf(s *openapi3.Schema) *ir.Discriminator {
	if s.Discriminator == nil {
		return nil
	}
	var mapping map[string]string
	if len(s.Discriminator.Mapping) > 0 {
		mapping = make(map[string]string, len(s.Discriminator.Mapping))
		for k, v := range s.Discriminator.Mapping {
			mapping[k] = v.Ref
		}
	}
	return &ir.Discriminator{
		PropertyName: s.Discriminator.PropertyName,
		Mapping:      mapping,
	}
}

func accessScopeOf(s *openapi3.Schema) ir.AccessScope {
	switch {
	case s.ReadOnly:
		return ir.AccessRead
	case s.WriteOnly:
		return ir.AccessWrite
	default:
		return ir.AccessUndefined
	}
}

// primaryType resolves OpenAPI 3.0's single `type` string and 3.1's
// JSON-Schema type-array (where "null" is one of several listed types,
// folding into Nullable rather than its own member) to one primary type
// name.
func primaryType(s *openapi3.Schema) (string, bool) {
	if s.Type == nil {
		return "", s.Nullable
	}
	nullable := s.Nullable
	primary := ""
	for _, t := range *s.Type {
		if t == "null" {
			nullable = true
			continue
		}
		if primary == "" {
			primary = t
		}
	}
	return primary, nullable
}

// inferEnumBaseKind picks the enum's IR Kind from its declared primary type,
// or, when none is declared, from the first non-null member (any numeric
// member gives KindNumber), defaulting to KindString.
func inferEnumBaseKind(primary string, values []interface{}) ir.Kind {
	switch primary {
	case "string":
		return ir.KindString
	case "integer":
		return ir.KindInteger
	case "number":
		return ir.KindNumber
	case "boolean":
		return ir.KindBoolean
	}
	for _, v := range values {
		switch v.(type) {
		case string:
			return ir.KindString
		case float64, int, int64:
			return ir.KindNumber
		case bool:
			return ir.KindBoolean
		}
	}
	return ir.KindString
}

// isTupleConst reports the one tuple shape expressible without JSON
// Schema 2020-12 `prefixItems`, which kin-openapi does not model: a
// fixed-length array pinned entirely by `const`. Positional per-index schemas
// (`prefixItems`) are out of scope; see DESIGN.md.
func isTupleConst(s *openapi3.Schema) bool {
	if s.Const == nil {
		return false
	}
	_, ok := s.Const.([]interface{})
	return ok
}

func uint64ToIntPtr(v *uint64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
