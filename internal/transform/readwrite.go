package transform

import (
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/oasforge/oasgen/pkg/ir"
)

// BifurcateReadWrite splits every object component schema that has at
// least one readOnly or writeOnly property into a "<Name>Readable" variant
// (drops writeOnly properties, kept for response bodies) and a
// "<Name>Writable" variant (drops readOnly properties, kept for request
// bodies), then repoints request/response refs at the matching variant.
// The original component is left in place for any caller that still needs
// the unsplit shape.
func BifurcateReadWrite(model *ir.Model) error {
	variants := map[string]struct{ readable, writable string }{}

	for _, ref := range append([]string{}, model.ComponentOrder...) {
		s := model.Components[ref]
		if s == nil || s.Kind != ir.KindObject || !hasMixedAccess(s) {
			continue
		}
		readableRef := ref + "Readable"
		writableRef := ref + "Writable"
		// Skip components already split by an earlier run, and the variants
		// themselves, so a second run changes nothing.
		if model.Components[readableRef] != nil || model.Components[writableRef] != nil {
			continue
		}
		if base := strings.TrimSuffix(strings.TrimSuffix(ref, "Readable"), "Writable"); base != ref && model.Components[base] != nil {
			continue
		}

		readable := deepcopy.Copy(s).(*ir.SchemaObject)
		readable.Properties = filterProperties(readable.Properties, ir.AccessWrite)
		model.AddComponent(readableRef, readable)

		writable := deepcopy.Copy(s).(*ir.SchemaObject)
		writable.Properties = filterProperties(writable.Properties, ir.AccessRead)
		model.AddComponent(writableRef, writable)

		variants[ref] = struct{ readable, writable string }{readableRef, writableRef}
	}

	if len(variants) == 0 {
		return nil
	}

	for _, path := range model.PathOrder {
		pi := model.Paths[path]
		for _, method := range pi.OperationOrder {
			op := pi.Operations[method]
			if op.Body != nil && op.Body.Schema != nil {
				if v, ok := variants[op.Body.Schema.Ref]; ok {
					op.Body.Schema = &ir.SchemaObject{Kind: ir.KindRef, Ref: v.writable}
				}
			}
			for _, code := range op.ResponseOrder {
				resp := op.Responses[code]
				if resp.Schema != nil {
					if v, ok := variants[resp.Schema.Ref]; ok {
						resp.Schema = &ir.SchemaObject{Kind: ir.KindRef, Ref: v.readable}
					}
				}
			}
		}
	}
	return nil
}

func hasMixedAccess(s *ir.SchemaObject) bool {
	sawRead, sawWrite := false, false
	for _, f := range s.Properties {
		switch f.Schema.AccessScope {
		case ir.AccessRead:
			sawRead = true
		case ir.AccessWrite:
			sawWrite = true
		}
	}
	return sawRead || sawWrite
}

// filterProperties drops properties whose AccessScope equals drop.
func filterProperties(props []ir.Field, drop ir.AccessScope) []ir.Field {
	out := make([]ir.Field, 0, len(props))
	for _, f := range props {
		if f.Schema.AccessScope == drop {
			continue
		}
		out = append(out, f)
	}
	return out
}
