// Package clientbridge adapts the template-driven client emitters
// (pkg/generator/golang, typescript, python, typescript-types) to the
// orchestrator.Plugin contract, so the same plugin graph, dependency
// ordering, and before/after broadcast sequence covers them as covers the
// validators plugin.
//
// The wrapped generators build their flattened legacyir.IR from the same
// normalized, transformed ir.Model the validators plugin and schema emitter
// see (pkg/generator/ir_builder.go), so enum lifting and read/write
// bifurcation apply uniformly across every emission path.
package clientbridge

import (
	"fmt"

	"github.com/oasforge/oasgen/internal/eventbus"
	"github.com/oasforge/oasgen/internal/pipelinectx"
	"github.com/oasforge/oasgen/pkg/config"
	"github.com/oasforge/oasgen/pkg/generator"
)

// Plugin runs one configured client emitter (go/typescript/python/
// typescript-types) as a single orchestrator plugin instance.
type Plugin struct {
	client config.Client
}

// New returns a plugin wrapping client.
func New(client config.Client) *Plugin {
	return &Plugin{client: client}
}

func (p *Plugin) Name() string           { return "client:" + p.client.Name }
func (p *Plugin) MinCoreVersion() string { return ">=1.0.0" }
func (p *Plugin) Dependencies() []string { return nil }

func (p *Plugin) Init(ctx *pipelinectx.Context) error {
	ctx.Subscribe(eventbus.After, p.Name(), func(payload any) error {
		return p.generate(ctx)
	})
	return nil
}

func (p *Plugin) generate(ctx *pipelinectx.Context) error {
	if ctx.Model == nil {
		return fmt.Errorf("clientbridge: no model available for client %q", p.client.Name)
	}
	service := generator.NewService()
	cfg := &config.Config{Clients: []config.Client{p.client}}
	return service.GenerateFromModel(ctx.Model, cfg, p.client.Name)
}
