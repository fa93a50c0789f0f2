// Package schemaemitter translates ir.SchemaObject into target-language
// validator-builder expressions (Zod-shaped: S.object(...), S.lazy(() =>
// Name), ...).
//
// Translation is done with plain recursive Go functions, not templates, the
// same way pkg/generator/typescript-types/generator.go hand-writes recursive
// type translation instead of a template walk. Circular references are
// found up front by a graph walk with explicit state (the path stack in
// detectCircularRefs), not by relying on Go's own call-stack unwinding,
// because emission never recurses into another component's body and the
// emitter needs to know *which* refs lie on a cycle.
package schemaemitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oasforge/oasgen/internal/identifier"
	"github.com/oasforge/oasgen/pkg/ir"
	"github.com/shopspring/decimal"
)

// Emitter translates a parsed, transformed ir.Model into validator
// expressions, one per named component plus one request bundle per
// operation.
type Emitter struct {
	model  *ir.Model
	ids    *identifier.Service
	fileID string

	// circular records every component ref that participates in a
	// reference cycle anywhere in the component graph, computed once up
	// front by a three-color graph walk (white/gray/black below) rather
	// than discovered by watching Go's own recursion unwind: a ref can
	// recur through a sibling component several calls away, which a
	// simple "am I currently inside my own call" check would miss
	//. Each
	// circular ref's own $ref occurrences are emitted as
	// S.lazy(() => Name) and its top-level declaration is annotated with
	// the escape-hatch AnyObjectSchema/AnySchema type.
	circular map[string]bool
}

// New returns an Emitter over model, precomputing the circular-reference
// set. Declaration and $ref names are resolved through ids, scoped to
// fileID, so every plugin touching the same output file agrees on one
// emitted name per $ref.
func New(model *ir.Model, ids *identifier.Service, fileID string) *Emitter {
	e := &Emitter{model: model, ids: ids, fileID: fileID}
	e.circular = detectCircularRefs(model)
	return e
}

const (
	colorWhite = 0
	colorGray  = 1
	colorBlack = 2
)

// detectCircularRefs walks the component reference graph with explicit
// per-node state (white = unvisited, gray = on the current path, black =
// fully explored) so that any ref reachable from itself, directly or
// through any number of intermediate components, is marked regardless of
// which component is emitted first.
func detectCircularRefs(model *ir.Model) map[string]bool {
	color := map[string]int{}
	circular := map[string]bool{}
	var path []string

	var visit func(ref string)
	visit = func(ref string) {
		switch color[ref] {
		case colorBlack:
			return
		case colorGray:
			// Back edge to an ancestor: every node from that ancestor to
			// here (inclusive) lies on the cycle, not just the ancestor.
			for i := len(path) - 1; i >= 0; i-- {
				circular[path[i]] = true
				if path[i] == ref {
					break
				}
			}
			return
		}
		color[ref] = colorGray
		path = append(path, ref)
		for _, child := range directRefs(model.Components[ref]) {
			visit(child)
		}
		path = path[:len(path)-1]
		color[ref] = colorBlack
	}

	for _, ref := range model.ComponentOrder {
		visit(ref)
	}
	return circular
}

// directRefs collects every $ref encountered while walking s's structure,
// without crossing into the body of whatever those refs point to (that
// body belongs to a different component and is walked on its own turn).
func directRefs(s *ir.SchemaObject) []string {
	if s == nil {
		return nil
	}
	if s.IsRef() {
		return []string{s.Ref}
	}
	var out []string
	for _, f := range s.Properties {
		out = append(out, directRefs(f.Schema)...)
	}
	if s.AdditionalProperties != nil {
		out = append(out, directRefs(s.AdditionalProperties)...)
	}
	for _, it := range s.Items {
		out = append(out, directRefs(it)...)
	}
	return out
}

// Component is one named, top-level emitted declaration.
type Component struct {
	Name       string
	Expr       string
	IsCircular bool
}

// EmitComponents emits every named schema component in the model's
// insertion order. Names are created on first use: a $ref to a component
// later in the order creates that component's Identifier where the ref is
// printed, and the component's own declaration then finds the same entry,
// so both sites print one name.
func (e *Emitter) EmitComponents() []Component {
	out := make([]Component, 0, len(e.model.ComponentOrder))
	for _, ref := range e.model.ComponentOrder {
		name := e.identifierName(ref)
		expr := e.emit(e.model.Components[ref], ref)
		out = append(out, Component{Name: name, Expr: expr, IsCircular: e.circular[ref]})
	}
	return out
}

// Bundle is the {body, headers, path, query} request-shape emission for
// one operation. Any
// absent part is S.never().
type Bundle struct {
	Body    string
	Headers string
	Path    string
	Query   string
}

// EmitOperationBundle builds the request-shape bundle for op.
func (e *Emitter) EmitOperationBundle(op *ir.OperationObject) Bundle {
	b := Bundle{Body: "S.never()", Headers: "S.never()", Path: "S.never()", Query: "S.never()"}
	if op.Body != nil && op.Body.Schema != nil {
		b.Body = e.emit(op.Body.Schema, "")
	}
	if g := op.Parameters[ir.ParamHeader]; g != nil && len(g.Names) > 0 {
		b.Headers = e.emitParamGroup(g)
	}
	if g := op.Parameters[ir.ParamPath]; g != nil && len(g.Names) > 0 {
		b.Path = e.emitParamGroup(g)
	}
	if g := op.Parameters[ir.ParamQuery]; g != nil && len(g.Names) > 0 {
		b.Query = e.emitParamGroup(g)
	}
	return b
}

func (e *Emitter) emitParamGroup(g *ir.ParameterGroup) string {
	var sb strings.Builder
	sb.WriteString("S.object({\n")
	for _, name := range g.Names {
		p := g.ByName[name]
		expr := e.emit(p.Schema, "")
		if !p.Required {
			expr += ".optional()"
		}
		fmt.Fprintf(&sb, "  %s: %s,\n", strconv.Quote(name), expr)
	}
	sb.WriteString("})")
	return sb.String()
}

// emit is the dispatcher: $ref first (cycle-aware), then each typed
// variant, then composite, then an unknown-kind fallback.
func (e *Emitter) emit(s *ir.SchemaObject, selfRef string) string {
	if s == nil {
		return "S.never()"
	}

	var expr string
	switch {
	case s.IsRef():
		expr = e.emitRef(s.Ref)
	case s.Kind == ir.KindComposite:
		expr = e.emitComposite(s)
	default:
		expr = e.emitTyped(s)
	}
	return applyModifiers(expr, s)
}

func (e *Emitter) emitRef(ref string) string {
	if e.circular[ref] {
		return fmt.Sprintf("S.lazy(() => %s)", e.identifierName(ref))
	}
	return e.identifierName(ref)
}

// identifierName looks up ref's emitted name in the current file's value
// namespace, creating it (forcing emission of its declaration name) if this
// is the first time this $ref has been named in this file.
func (e *Emitter) identifierName(ref string) string {
	id := e.ids.Identifier(identifier.Request{
		FileID:    e.fileID,
		Ref:       ref,
		Namespace: identifier.NamespaceValue,
		Create:    true,
		Case:      identifier.CasePascal,
	})
	return id.Name
}

func (e *Emitter) emitTyped(s *ir.SchemaObject) string {
	switch s.Kind {
	case ir.KindString:
		return e.emitString(s)
	case ir.KindInteger, ir.KindNumber:
		return e.emitNumeric(s)
	case ir.KindBoolean:
		return "S.boolean()"
	case ir.KindNull:
		return "S.null()"
	case ir.KindEnum:
		return e.emitEnum(s)
	case ir.KindArray:
		return e.emitArray(s)
	case ir.KindTuple:
		return e.emitTuple(s)
	case ir.KindObject:
		return e.emitObject(s)
	case ir.KindUndefined:
		return "S.undefined()"
	case ir.KindNever:
		return "S.never()"
	case ir.KindVoid:
		return "S.void()"
	default:
		return "S.unknown()"
	}
}

func (e *Emitter) emitString(s *ir.SchemaObject) string {
	var sb strings.Builder
	sb.WriteString("S.string()")
	if s.MinLength != nil && *s.MinLength > 0 {
		fmt.Fprintf(&sb, ".min(%d)", *s.MinLength)
	}
	if s.MaxLength != nil {
		fmt.Fprintf(&sb, ".max(%d)", *s.MaxLength)
	}
	if s.Pattern != "" {
		fmt.Fprintf(&sb, ".regex(/%s/)", s.Pattern)
	}
	switch s.Format {
	case "date-time":
		sb.WriteString(".datetime()")
	case "uuid":
		sb.WriteString(".uuid()")
	case "email":
		sb.WriteString(".email()")
	case "uri":
		sb.WriteString(".url()")
	}
	if s.Const != nil {
		fmt.Fprintf(&sb, ".refine(v => v === %s)", strconv.Quote(fmt.Sprint(s.Const)))
	}
	return sb.String()
}

func (e *Emitter) emitNumeric(s *ir.SchemaObject) string {
	base := "S.number()"
	if s.Kind == ir.KindInteger {
		base = "S.number().int()"
	}
	var sb strings.Builder
	sb.WriteString(base)
	if s.Minimum != nil {
		op := "gte"
		if s.ExclusiveMinimum {
			op = "gt"
		}
		fmt.Fprintf(&sb, ".%s(%s)", op, formatNum(*s.Minimum))
	}
	if s.Maximum != nil {
		op := "lte"
		if s.ExclusiveMaximum {
			op = "lt"
		}
		fmt.Fprintf(&sb, ".%s(%s)", op, formatNum(*s.Maximum))
	}
	if s.Const != nil {
		fmt.Fprintf(&sb, ".refine(v => v === %s)", numericLiteral(s.Const, s.Format))
	}
	return sb.String()
}

func (e *Emitter) emitEnum(s *ir.SchemaObject) string {
	values := make([]string, 0, len(s.EnumMembers))
	for _, m := range s.EnumMembers {
		values = append(values, literal(m.Const))
	}
	expr := fmt.Sprintf("S.enum([%s])", strings.Join(values, ", "))
	if s.Nullable {
		expr += ".nullable()"
	}
	return expr
}

func (e *Emitter) emitArray(s *ir.SchemaObject) string {
	var inner string
	if len(s.Items) == 1 {
		inner = e.emit(s.Items[0], "")
	} else if len(s.Items) > 1 {
		parts := make([]string, len(s.Items))
		for i, it := range s.Items {
			parts[i] = e.emit(it, "")
		}
		inner = fmt.Sprintf("S.union([%s])", strings.Join(parts, ", "))
	} else {
		inner = "S.unknown()"
	}
	expr := fmt.Sprintf("S.array(%s)", inner)
	if s.MinItems != nil && *s.MinItems > 0 {
		expr += fmt.Sprintf(".min(%d)", *s.MinItems)
	}
	if s.MaxItems != nil {
		expr += fmt.Sprintf(".max(%d)", *s.MaxItems)
	}
	return expr
}

func (e *Emitter) emitTuple(s *ir.SchemaObject) string {
	parts := make([]string, len(s.TupleConst))
	for i, v := range s.TupleConst {
		parts[i] = fmt.Sprintf("S.literal(%s)", literal(v))
	}
	return fmt.Sprintf("S.tuple([%s])", strings.Join(parts, ", "))
}

func (e *Emitter) emitObject(s *ir.SchemaObject) string {
	var sb strings.Builder
	sb.WriteString("S.object({\n")
	for _, f := range s.Properties {
		expr := e.emit(f.Schema, "")
		if !f.Required {
			expr += ".optional()"
		}
		fmt.Fprintf(&sb, "  %s: %s,\n", strconv.Quote(f.Name), expr)
	}
	sb.WriteString("})")
	out := sb.String()
	if s.AdditionalProperties != nil {
		out += fmt.Sprintf(".catchall(%s)", e.emit(s.AdditionalProperties, ""))
	} else if s.Required != nil && len(s.Required) == 0 && len(s.Properties) == 0 {
		out += ".passthrough()"
	}
	return out
}

func (e *Emitter) emitComposite(s *ir.SchemaObject) string {
	parts := make([]string, len(s.Items))
	for i, it := range s.Items {
		parts[i] = e.emit(it, "")
	}
	switch s.LogicalOperator {
	case ir.LogicalAnd:
		return strings.Join(parts, ".merge(") + strings.Repeat(")", len(parts)-1)
	default:
		return fmt.Sprintf("S.union([%s])", strings.Join(parts, ", "))
	}
}

func applyModifiers(expr string, s *ir.SchemaObject) string {
	if s.Nullable && s.Kind != ir.KindEnum {
		expr += ".nullable()"
	}
	if s.AccessScope == ir.AccessRead {
		expr += ".readonly()"
	}
	if s.Default != nil {
		if s.Kind == ir.KindInteger || s.Kind == ir.KindNumber {
			expr += fmt.Sprintf(".default(%s)", numericLiteral(s.Default, s.Format))
		} else {
			expr += fmt.Sprintf(".default(%s)", literal(s.Default))
		}
	}
	if s.Description != "" {
		expr += fmt.Sprintf(".describe(%s)", strconv.Quote(s.Description))
	}
	return expr
}

func literal(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	default:
		return fmt.Sprint(t)
	}
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// numericLiteral renders a numeric const/default. For format "int64" or
// "decimal" it goes through shopspring/decimal instead of float64, so a
// 64-bit integer or arbitrary-precision decimal constant round-trips
// exactly instead of picking up float64 rounding.
func numericLiteral(v any, format string) string {
	if format == "int64" || format == "decimal" {
		switch t := v.(type) {
		case string:
			if d, err := decimal.NewFromString(t); err == nil {
				return d.String()
			}
		case float64:
			return decimal.NewFromFloat(t).String()
		case int64:
			return decimal.NewFromInt(t).String()
		}
	}
	return literal(v)
}
