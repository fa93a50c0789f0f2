// Package transform applies config-gated, idempotent rewrites to a
// populated ir.Model before plugins run. Each transform deep-copies the
// schemas it registers as new components, so a synthesized component never
// aliases the site it was taken from; the rewritten sites themselves are
// updated in place.
package transform

import (
	"fmt"

	"github.com/mohae/deepcopy"
	"github.com/oasforge/oasgen/pkg/config"
	"github.com/oasforge/oasgen/pkg/ir"
)

// Run applies every enabled transform in a fixed order: enum-lift, then
// read/write bifurcation. Both are idempotent, so running Run twice on
// the same Model is a no-op the second time.
func Run(model *ir.Model, cfg config.TransformsConfig) error {
	if cfg.Enums.Enabled && cfg.Enums.Mode == config.EnumModeLift {
		LiftEnums(model)
	}
	if cfg.ReadWrite.Enabled {
		if err := BifurcateReadWrite(model); err != nil {
			return err
		}
	}
	return nil
}

// LiftEnums walks every component and inline operation schema and replaces
// each inline enum node with a $ref to a synthesized named component,
// registering the named enum once per unique member set.
func LiftEnums(model *ir.Model) {
	lifted := map[string]string{} // signature -> ref
	counter := map[string]int{}

	var walk func(s *ir.SchemaObject, nameHint string) *ir.SchemaObject
	walk = func(s *ir.SchemaObject, nameHint string) *ir.SchemaObject {
		if s == nil || s.IsRef() {
			return s
		}
		switch s.Kind {
		case ir.KindEnum:
			sig := enumSignature(s)
			ref, ok := lifted[sig]
			if !ok {
				name := nameHint
				if name == "" {
					name = "Enum"
				}
				counter[name]++
				if counter[name] > 1 {
					name = fmt.Sprintf("%s%d", name, counter[name])
				}
				ref = "#/components/schemas/" + name
				lifted[sig] = ref
				model.AddComponent(ref, deepcopy.Copy(s).(*ir.SchemaObject))
			}
			return &ir.SchemaObject{Kind: ir.KindRef, Ref: ref}
		case ir.KindObject:
			for i, f := range s.Properties {
				s.Properties[i].Schema = walk(f.Schema, nameHint+capitalize(f.Name))
			}
			if s.AdditionalProperties != nil {
				s.AdditionalProperties = walk(s.AdditionalProperties, nameHint+"Value")
			}
		case ir.KindArray:
			for i, it := range s.Items {
				s.Items[i] = walk(it, nameHint+"Item")
			}
		case ir.KindComposite:
			for i, it := range s.Items {
				s.Items[i] = walk(it, fmt.Sprintf("%sOption%d", nameHint, i))
			}
		}
		return s
	}

	for _, ref := range append([]string{}, model.ComponentOrder...) {
		// A component that is itself an enum is already named; lifting it
		// would replace it with a $ref to itself.
		if s := model.Components[ref]; s != nil && s.Kind == ir.KindEnum {
			continue
		}
		model.Components[ref] = walk(model.Components[ref], refName(ref))
	}
	for _, path := range model.PathOrder {
		pi := model.Paths[path]
		for _, method := range pi.OperationOrder {
			op := pi.Operations[method]
			for _, loc := range []ir.ParamLocation{ir.ParamHeader, ir.ParamPath, ir.ParamQuery, ir.ParamCookie} {
				g := op.Parameters[loc]
				if g == nil {
					continue
				}
				for _, name := range g.Names {
					p := g.ByName[name]
					p.Schema = walk(p.Schema, capitalize(p.Name))
				}
			}
			if op.Body != nil {
				op.Body.Schema = walk(op.Body.Schema, capitalize(op.ID)+"Body")
			}
			for _, code := range op.ResponseOrder {
				op.Responses[code].Schema = walk(op.Responses[code].Schema, capitalize(op.ID)+"Response")
			}
		}
	}
}

func enumSignature(s *ir.SchemaObject) string {
	sig := fmt.Sprintf("%v|%v|", s.Nullable, len(s.EnumMembers))
	for _, m := range s.EnumMembers {
		sig += fmt.Sprintf("%v,", m.Const)
	}
	return sig
}

func refName(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
