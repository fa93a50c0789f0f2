package orchestrator

import (
	"testing"

	"github.com/oasforge/oasgen/internal/pipelinectx"
)

type stubPlugin struct {
	name string
	deps []string
}

func (s *stubPlugin) Name() string                    { return s.name }
func (s *stubPlugin) MinCoreVersion() string          { return "" }
func (s *stubPlugin) Dependencies() []string          { return s.deps }
func (s *stubPlugin) Init(*pipelinectx.Context) error { return nil }

func TestTopoSortOrdersDependenciesFirst(t *testing.T) {
	plugins := []Plugin{
		&stubPlugin{name: "client", deps: []string{"validators"}},
		&stubPlugin{name: "validators"},
	}
	ordered, err := topoSort(plugins)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ordered[0].Name() != "validators" || ordered[1].Name() != "client" {
		t.Fatalf("expected [validators client], got %v", names(ordered))
	}
}

func TestTopoSortDetectsCycle(t *testing.T) {
	plugins := []Plugin{
		&stubPlugin{name: "a", deps: []string{"b"}},
		&stubPlugin{name: "b", deps: []string{"a"}},
	}
	_, err := topoSort(plugins)
	if err == nil {
		t.Fatal("expected a cycle error")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
}

func TestCheckCoreVersionRejectsIncompatiblePlugin(t *testing.T) {
	p := &stubPlugin{name: "too-new"}
	err := checkCoreVersion(pluginWithConstraint{p, ">=99.0.0"})
	if err == nil {
		t.Fatal("expected incompatible-version error")
	}
}

type pluginWithConstraint struct {
	Plugin
	constraint string
}

func (p pluginWithConstraint) MinCoreVersion() string { return p.constraint }

func names(plugins []Plugin) []string {
	out := make([]string, len(plugins))
	for i, p := range plugins {
		out[i] = p.Name()
	}
	return out
}
