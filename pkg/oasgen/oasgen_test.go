package oasgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oasforge/oasgen/internal/fileregistry"
	"github.com/oasforge/oasgen/pkg/config"
)

const samplePetstore = `{
  "openapi": "3.0.3",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "paths": {
    "/pets/{id}": {
      "get": {
        "operationId": "getPet",
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {
            "description": "a pet",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "Pet": {
        "type": "object",
        "required": ["name"],
        "properties": {"name": {"type": "string"}}
      }
    }
  }
}`

func TestBuildPluginsDefaultsToValidatorsWithNoPluginConfig(t *testing.T) {
	plugins, err := buildPlugins(&config.Config{})
	if err != nil {
		t.Fatalf("buildPlugins returned error: %v", err)
	}
	if len(plugins) != 1 {
		t.Fatalf("expected exactly the default validators plugin, got %d plugins", len(plugins))
	}
	if plugins[0].Name() != "validators" {
		t.Errorf("plugins[0].Name() = %q, want validators", plugins[0].Name())
	}
}

func TestBuildPluginsAddsOneClientbridgePerClient(t *testing.T) {
	cfg := &config.Config{Clients: []config.Client{
		{Type: "typescript", Name: "sdk1"},
		{Type: "go", Name: "sdk2"},
	}}
	plugins, err := buildPlugins(cfg)
	if err != nil {
		t.Fatalf("buildPlugins returned error: %v", err)
	}
	if len(plugins) != 3 {
		t.Fatalf("expected validators + 2 clientbridge plugins, got %d", len(plugins))
	}
}

func TestBuildPluginsRejectsUnknownPluginHandler(t *testing.T) {
	cfg := &config.Config{Plugins: map[string]config.PluginConfig{"mystery": {}}}
	if _, err := buildPlugins(cfg); err == nil {
		t.Fatal("expected an error for an unrecognized plugin handler name")
	}
}

func TestRenderFileConcatenatesImportsAndNodes(t *testing.T) {
	f := &fileregistry.File{}
	f.Import("zod", "z")
	f.Add("Pet", "export const Pet = z.object({});")

	got := renderFile(f)
	want := "import { z } from \"zod\";\n\nexport const Pet = z.object({});\n"
	if got != want {
		t.Errorf("renderFile() = %q, want %q", got, want)
	}
}

func TestRunWithConfigGeneratesValidatorsFile(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "openapi.json")
	if err := os.WriteFile(specPath, []byte(samplePetstore), 0o644); err != nil {
		t.Fatalf("write sample spec: %v", err)
	}
	outDir := filepath.Join(dir, "out")

	cfg := &config.Config{Spec: specPath, Output: config.OutputConfig{Path: outDir}}
	if err := RunWithConfig(cfg); err != nil {
		t.Fatalf("RunWithConfig returned error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "validators.ts"))
	if err != nil {
		t.Fatalf("read generated validators.ts: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("expected non-empty generated validators.ts")
	}
}
