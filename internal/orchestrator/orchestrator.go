// Package orchestrator implements the Plugin Orchestrator: dependency-ordered plugin instantiation and the
// before/component-events/operation/after broadcast sequence.
package orchestrator

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/oasforge/oasgen/internal/eventbus"
	"github.com/oasforge/oasgen/internal/pipelinectx"
)

// CoreVersion is the orchestrator's own semantic version, checked against
// each plugin's declared MinCoreVersion constraint.
const CoreVersion = "1.0.0"

// Plugin is the contract every emitter/validator implementation satisfies.
// Name must be stable: it is used both as the dependency-graph node id and
// as the eventbus subscriber name for error attribution.
type Plugin interface {
	Name() string
	// MinCoreVersion is a semver constraint (e.g. ">=1.0.0, <2.0.0"); an
	// empty string means no constraint.
	MinCoreVersion() string
	// Dependencies names other plugins that must run (and whose output is
	// available) before this one.
	Dependencies() []string
	// Init subscribes to whatever events the plugin cares about and
	// performs any setup needing the shared Context.
	Init(ctx *pipelinectx.Context) error
}

// ConfigError reports a problem in the plugin graph itself rather than a
// plugin's runtime behavior.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return "orchestrator: " + e.Message }

// Run resolves plugins into dependency order, instantiates them, and
// drives the before -> component events -> operation (per op) -> after
// broadcast sequence.
func Run(ctx *pipelinectx.Context, bus *eventbus.Bus, plugins []Plugin) error {
	ordered, err := topoSort(plugins)
	if err != nil {
		return err
	}
	for _, p := range ordered {
		if err := checkCoreVersion(p); err != nil {
			return err
		}
		if err := p.Init(ctx); err != nil {
			return fmt.Errorf("orchestrator: init plugin %q: %w", p.Name(), err)
		}
	}

	if err := bus.Broadcast(eventbus.Before, ctx.Model); err != nil {
		return err
	}

	for _, ref := range ctx.Model.ComponentOrder {
		if err := bus.Broadcast(eventbus.Schema, ctx.Model.Components[ref]); err != nil {
			return err
		}
	}
	for _, ref := range ctx.Model.ParameterOrder {
		if err := bus.Broadcast(eventbus.Parameter, ctx.Model.Parameters[ref]); err != nil {
			return err
		}
	}
	for _, ref := range ctx.Model.RequestBodyOrder {
		if err := bus.Broadcast(eventbus.RequestBody, ctx.Model.RequestBodies[ref]); err != nil {
			return err
		}
	}
	for _, s := range ctx.Model.Servers {
		if err := bus.Broadcast(eventbus.Server, s); err != nil {
			return err
		}
	}

	for _, path := range ctx.Model.PathOrder {
		pathItem := ctx.Model.Paths[path]
		for _, method := range pathItem.OperationOrder {
			if err := bus.Broadcast(eventbus.Operation, pathItem.Operations[method]); err != nil {
				return err
			}
		}
	}

	return bus.Broadcast(eventbus.After, ctx.Model)
}

func checkCoreVersion(p Plugin) error {
	constraint := p.MinCoreVersion()
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return &ConfigError{Message: fmt.Sprintf("plugin %q has invalid minCoreVersion constraint %q: %v", p.Name(), constraint, err)}
	}
	v, err := semver.NewVersion(CoreVersion)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return &ConfigError{Message: fmt.Sprintf("plugin %q requires core %s, have %s", p.Name(), constraint, CoreVersion)}
	}
	return nil
}

// topoSort orders plugins so every dependency precedes its dependents,
// reporting a *ConfigError naming the cycle if one exists.
func topoSort(plugins []Plugin) ([]Plugin, error) {
	byName := make(map[string]Plugin, len(plugins))
	for _, p := range plugins {
		byName[p.Name()] = p
	}

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := map[string]int{}
	var order []Plugin
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visited:
			return nil
		case visiting:
			cycle := append(append([]string{}, path...), name)
			return &ConfigError{Message: fmt.Sprintf("plugin dependency cycle: %v", cycle)}
		}
		p, ok := byName[name]
		if !ok {
			return &ConfigError{Message: fmt.Sprintf("unknown plugin dependency %q", name)}
		}
		state[name] = visiting
		path = append(path, name)
		for _, dep := range p.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = visited
		order = append(order, p)
		return nil
	}

	for _, p := range plugins {
		if err := visit(p.Name()); err != nil {
			return nil, err
		}
	}
	return order, nil
}
