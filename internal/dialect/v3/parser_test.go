package v3

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"
	"github.com/oasforge/oasgen/internal/filter"
	"github.com/oasforge/oasgen/pkg/ir"
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
        "properties": {
          "name": {"type": "string"},
          "tag": {"type": "string"}
        }
      }
    }
  }
}`

func loadSample(t *testing.T) *openapi3.T {
	t.Helper()
	doc, err := openapi3.NewLoader().LoadFromData([]byte(samplePetstore))
	if err != nil {
		t.Fatalf("load sample document: %v", err)
	}
	return doc
}

func TestParseBuildsOperationAndComponent(t *testing.T) {
	doc := loadSample(t)
	model, err := Parse(doc, Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	pet, ok := model.Components["#/components/schemas/Pet"]
	if !ok {
		t.Fatalf("expected Pet component to be registered")
	}
	if pet.Kind != ir.KindObject {
		t.Errorf("Pet.Kind = %v, want object", pet.Kind)
	}
	if names := pet.RequiredNames(); len(names) != 1 || names[0] != "name" {
		t.Errorf("Pet.RequiredNames() = %v, want [name]", names)
	}

	pathItem, ok := model.Paths["/pets/{id}"]
	if !ok {
		t.Fatalf("expected /pets/{id} to be registered")
	}
	op, ok := pathItem.Operations["GET"]
	if !ok {
		t.Fatalf("expected GET operation")
	}
	if op.ID != "getPet" {
		t.Errorf("op.ID = %q, want %q", op.ID, "getPet")
	}
	resp, ok := op.Responses["200"]
	if !ok || resp.Schema == nil || resp.Schema.Ref != "#/components/schemas/Pet" {
		t.Errorf("200 response schema = %#v, want a ref to Pet", resp)
	}
}

// TestParseIsDeterministic guards the ordering invariant sortedKeys exists
// for: parsing the same document twice must produce byte-for-byte identical
// component/operation ordering, not just equal sets.
func TestParseIsDeterministic(t *testing.T) {
	doc1 := loadSample(t)
	doc2 := loadSample(t)

	model1, err := Parse(doc1, Options{})
	if err != nil {
		t.Fatalf("Parse #1 returned error: %v", err)
	}
	model2, err := Parse(doc2, Options{})
	if err != nil {
		t.Fatalf("Parse #2 returned error: %v", err)
	}

	if diff := cmp.Diff(model1.ComponentOrder, model2.ComponentOrder); diff != "" {
		t.Errorf("ComponentOrder differs between identical parses (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(model1.PathOrder, model2.PathOrder); diff != "" {
		t.Errorf("PathOrder differs between identical parses (-first +second):\n%s", diff)
	}
}

func TestParseAppliesFilters(t *testing.T) {
	doc := loadSample(t)
	f, err := filter.Compile(nil, []string{`^#/paths/`})
	if err != nil {
		t.Fatalf("compile filters: %v", err)
	}
	model, err := Parse(doc, Options{Filters: f})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(model.PathOrder) != 0 {
		t.Errorf("expected all paths excluded, got %v", model.PathOrder)
	}
	if _, ok := model.Components["#/components/schemas/Pet"]; !ok {
		t.Errorf("expected Pet component to survive a path-only exclude filter")
	}
}
