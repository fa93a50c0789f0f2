package openapi

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleV3 = `{
  "openapi": "3.0.3",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "paths": {},
  "components": {"schemas": {"Pet": {"type": "object"}}}
}`

const sampleSwagger2 = `{
  "swagger": "2.0",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "paths": {},
  "definitions": {"Pet": {"type": "object"}}
}`

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write sample document: %v", err)
	}
	return path
}

func TestLoadDetectsOpenAPI3(t *testing.T) {
	doc, err := Load(writeDoc(t, sampleV3))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Dialect != DialectOpenAPI3 {
		t.Errorf("Dialect = %q, want %q", doc.Dialect, DialectOpenAPI3)
	}
	if doc.Raw2 != nil {
		t.Error("expected Raw2 to be nil for an OpenAPI 3 document")
	}
	if doc.V3 == nil {
		t.Fatal("expected V3 to be populated")
	}
}

func TestLoadDetectsAndConvertsSwagger2(t *testing.T) {
	doc, err := Load(writeDoc(t, sampleSwagger2))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Dialect != DialectSwagger2 {
		t.Errorf("Dialect = %q, want %q", doc.Dialect, DialectSwagger2)
	}
	if doc.Raw2 == nil {
		t.Fatal("expected Raw2 to be populated for a Swagger 2.0 document")
	}
	if doc.V3 == nil {
		t.Fatal("expected the converted v3 document to be populated")
	}
	if _, ok := doc.V3.Components.Schemas["Pet"]; !ok {
		t.Error("expected the Pet definition to survive conversion to v3 components")
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
