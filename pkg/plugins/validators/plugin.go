// Package validators implements the built-in validators plugin: it
// subscribes to the orchestrator's after event and emits one Zod-shaped
// validator module from the transformed IR, using internal/schemaemitter.
package validators

import (
	"fmt"
	"strings"

	"github.com/oasforge/oasgen/internal/eventbus"
	"github.com/oasforge/oasgen/internal/pipelinectx"
	"github.com/oasforge/oasgen/internal/schemaemitter"
)

// Plugin emits "validators.ts": one `export const <Name> = ...` per
// component, plus one exported request bundle per operation.
type Plugin struct {
	OutputFile string // relative path, default "validators.ts"
}

// New returns a validators plugin writing to relPath (default
// "validators.ts" when empty).
func New(relPath string) *Plugin {
	if relPath == "" {
		relPath = "validators.ts"
	}
	return &Plugin{OutputFile: relPath}
}

func (p *Plugin) Name() string           { return "validators" }
func (p *Plugin) MinCoreVersion() string { return ">=1.0.0" }
func (p *Plugin) Dependencies() []string { return nil }

func (p *Plugin) Init(ctx *pipelinectx.Context) error {
	ctx.CreateFile("validators", p.OutputFile)
	ctx.Subscribe(eventbus.After, p.Name(), func(payload any) error {
		return p.render(ctx)
	})
	return nil
}

func (p *Plugin) render(ctx *pipelinectx.Context) error {
	file := ctx.File("validators")
	if file == nil {
		return fmt.Errorf("validators: output file not created")
	}
	emitter := schemaemitter.New(ctx.Model, ctx.Identifiers(), "validators")

	file.Import("zod", "z as S")

	for _, c := range emitter.EmitComponents() {
		if file.HasNode(c.Name) {
			continue
		}
		typeAnnotation := ""
		if c.IsCircular {
			typeAnnotation = ": S.ZodType<any>"
		}
		file.Add(c.Name, fmt.Sprintf("export const %s%s = %s;", c.Name, typeAnnotation, c.Expr))
	}

	for _, path := range ctx.Model.PathOrder {
		pathItem := ctx.Model.Paths[path]
		for _, method := range pathItem.OperationOrder {
			op := pathItem.Operations[method]
			id := operationBundleName(op.ID)
			if file.HasNode(id) {
				continue
			}
			bundle := emitter.EmitOperationBundle(op)
			var sb strings.Builder
			fmt.Fprintf(&sb, "export const %s = {\n", id)
			fmt.Fprintf(&sb, "  body: %s,\n", bundle.Body)
			fmt.Fprintf(&sb, "  headers: %s,\n", bundle.Headers)
			fmt.Fprintf(&sb, "  path: %s,\n", bundle.Path)
			fmt.Fprintf(&sb, "  query: %s,\n", bundle.Query)
			sb.WriteString("};")
			file.Add(id, sb.String())
		}
	}
	return nil
}

func operationBundleName(operationID string) string {
	if operationID == "" {
		return "UnnamedOperation"
	}
	b := []byte(operationID)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b) + "Request"
}
