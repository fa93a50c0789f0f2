// Package oasgen is the top-level façade: it loads a config file and an
// OpenAPI document, runs the dialect parser and transform pass, assembles
// the plugin graph, and drives the orchestrator end to end.
package oasgen

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/oasforge/oasgen/internal/dialect/v2"
	"github.com/oasforge/oasgen/internal/dialect/v3"
	"github.com/oasforge/oasgen/internal/eventbus"
	"github.com/oasforge/oasgen/internal/fileregistry"
	"github.com/oasforge/oasgen/internal/filter"
	"github.com/oasforge/oasgen/internal/identifier"
	"github.com/oasforge/oasgen/internal/orchestrator"
	"github.com/oasforge/oasgen/internal/pipelinectx"
	"github.com/oasforge/oasgen/internal/transform"
	"github.com/oasforge/oasgen/pkg/config"
	"github.com/oasforge/oasgen/pkg/ir"
	"github.com/oasforge/oasgen/pkg/openapi"
	"github.com/oasforge/oasgen/pkg/plugins/clientbridge"
	"github.com/oasforge/oasgen/pkg/plugins/validators"
)

// Run loads configPath, parses and transforms its spec, and drives every
// configured plugin through one orchestrator pass.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return RunWithConfig(cfg)
}

// RunWithConfig is Run for a config already loaded (or built in memory),
// e.g. by a caller wanting to override fields before generation.
func RunWithConfig(cfg *config.Config) error {
	// runID namespaces this run's log lines only; it never reaches emitted
	// file content, so it doesn't affect output determinism.
	runID := uuid.New().String()
	log.Printf("oasgen[%s]: generating from %s", runID, cfg.Spec)

	doc, err := openapi.Load(cfg.Spec)
	if err != nil {
		return err
	}

	filters, err := filter.Compile(cfg.Input.Include, cfg.Input.Exclude)
	if err != nil {
		return fmt.Errorf("oasgen: compile input filters: %w", err)
	}

	bus := eventbus.New()
	parseOpts := v3.Options{Filters: filters, Bus: bus}

	var model *ir.Model
	switch doc.Dialect {
	case openapi.DialectSwagger2:
		model, err = v2.Parse(doc, parseOpts)
	default:
		model, err = v3.Parse(doc.V3, parseOpts)
	}
	if err != nil {
		return fmt.Errorf("oasgen: parse %s: %w", cfg.Spec, err)
	}

	if err := transform.Run(model, cfg.Parser.Transforms); err != nil {
		return fmt.Errorf("oasgen: transform: %w", err)
	}

	ids := identifier.New()
	files := fileregistry.New(cfg.Output.Path)
	ctx := pipelinectx.New(cfg, model, bus, files, ids)

	plugins, err := buildPlugins(cfg)
	if err != nil {
		return err
	}

	if err := orchestrator.Run(ctx, bus, plugins); err != nil {
		return err
	}

	return fileregistry.Finalize(files, func(f *fileregistry.File) (string, error) {
		return renderFile(f), nil
	})
}

// buildPlugins assembles the plugin graph: the built-in validators plugin,
// one clientbridge instance per configured client, and any Plugins entries
// whose handler name the façade recognizes.
func buildPlugins(cfg *config.Config) ([]orchestrator.Plugin, error) {
	var plugins []orchestrator.Plugin

	if handler, ok := cfg.Plugins["validators"]; ok {
		plugins = append(plugins, validators.New(handler.Output))
	} else if len(cfg.Plugins) == 0 {
		// No explicit plugin config at all: default to always emitting
		// validators.
		plugins = append(plugins, validators.New(""))
	}

	for _, client := range cfg.Clients {
		plugins = append(plugins, clientbridge.New(client))
	}

	for name := range cfg.Plugins {
		if name == "validators" {
			continue
		}
		return nil, fmt.Errorf("oasgen: unknown plugin handler %q", name)
	}

	return plugins, nil
}

// renderFile concatenates a file's imports and nodes into final source
// text, the same import-then-declarations layout
// pkg/generator/typescript/generator.go uses.
func renderFile(f *fileregistry.File) string {
	var out string
	for _, imp := range f.Imports() {
		out += "import { " + imp.Symbol + " } from \"" + imp.Module + "\";\n"
	}
	if len(f.Imports()) > 0 {
		out += "\n"
	}
	for i, node := range f.Nodes {
		if i > 0 {
			out += "\n\n"
		}
		out += node.Text
	}
	out += "\n"
	return out
}
