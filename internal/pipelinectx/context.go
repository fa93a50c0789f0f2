// Package pipelinectx implements the Context object handed to every plugin:
// a narrow façade over the orchestrator's internals so a plugin can resolve
// refs, create output files, and subscribe to events without importing the
// orchestrator or IR packages' mutable internals directly.
package pipelinectx

import (
	"fmt"

	"github.com/oasforge/oasgen/internal/eventbus"
	"github.com/oasforge/oasgen/internal/fileregistry"
	"github.com/oasforge/oasgen/internal/identifier"
	"github.com/oasforge/oasgen/pkg/config"
	"github.com/oasforge/oasgen/pkg/ir"
)

// Context is passed by value-like pointer to every plugin's lifecycle
// hooks. Plugins must not retain it past the generation run it was built
// for.
type Context struct {
	Config *config.Config
	Model  *ir.Model

	bus       *eventbus.Bus
	files     *fileregistry.Registry
	idService *identifier.Service
}

// New builds a Context wiring the orchestrator's shared collaborators.
func New(cfg *config.Config, model *ir.Model, bus *eventbus.Bus, files *fileregistry.Registry, ids *identifier.Service) *Context {
	return &Context{Config: cfg, Model: model, bus: bus, files: files, idService: ids}
}

// ResolveRef looks up a component by its fully qualified ref
// (e.g. "#/components/schemas/Pet") in the IR, not the source document.
func (c *Context) ResolveRef(ref string) (*ir.SchemaObject, error) {
	s, ok := c.Model.Components[ref]
	if !ok {
		return nil, fmt.Errorf("pipelinectx: no component registered at %s", ref)
	}
	return s, nil
}

// Dereference follows s if it is a $ref node, returning the first
// non-ref schema reached. A chain of refs that returns to a ref already
// followed is reported as an error. Only the top-level ref chain is
// followed; refs nested inside the returned schema are left as they are.
func (c *Context) Dereference(s *ir.SchemaObject) (*ir.SchemaObject, error) {
	seen := map[string]bool{}
	for s != nil && s.IsRef() {
		if seen[s.Ref] {
			return nil, fmt.Errorf("pipelinectx: circular $ref at %s", s.Ref)
		}
		seen[s.Ref] = true
		next, err := c.ResolveRef(s.Ref)
		if err != nil {
			return nil, err
		}
		s = next
	}
	return s, nil
}

// Identifier derives (or looks up) a name for ref within namespace,
// delegating to the shared identifier.Service so every plugin agrees on
// one name per (file, namespace, ref).
func (c *Context) Identifier(req identifier.Request) identifier.Identifier {
	return c.idService.Identifier(req)
}

// Identifiers returns the shared identifier.Service backing Identifier, for
// collaborators (like internal/schemaemitter) that need to drive naming
// themselves rather than through single-request calls.
func (c *Context) Identifiers() *identifier.Service {
	return c.idService
}

// CreateFile registers a new output file.
func (c *Context) CreateFile(id, relPath string) *fileregistry.File {
	return c.files.CreateFile(id, relPath)
}

// File looks up a previously created output file by id.
func (c *Context) File(id string) *fileregistry.File {
	return c.files.File(id)
}

// Subscribe registers pluginName's callback for event.
func (c *Context) Subscribe(event eventbus.Event, pluginName string, cb eventbus.Callback) {
	c.bus.Subscribe(event, pluginName, cb)
}

// Broadcast fires event with payload, halting and returning a
// *eventbus.BroadcastError on the first subscriber failure.
func (c *Context) Broadcast(event eventbus.Event, payload any) error {
	return c.bus.Broadcast(event, payload)
}
