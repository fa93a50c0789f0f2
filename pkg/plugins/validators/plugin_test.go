package validators

import (
	"strings"
	"testing"

	"github.com/oasforge/oasgen/internal/eventbus"
	"github.com/oasforge/oasgen/internal/fileregistry"
	"github.com/oasforge/oasgen/internal/identifier"
	"github.com/oasforge/oasgen/internal/pipelinectx"
	"github.com/oasforge/oasgen/pkg/config"
	"github.com/oasforge/oasgen/pkg/ir"
)

func newTestModel() *ir.Model {
	model := ir.NewModel()
	model.AddComponent("#/components/schemas/Pet", &ir.SchemaObject{
		Kind: ir.KindObject,
		Properties: []ir.Field{
			{Name: "name", Required: true, Schema: &ir.SchemaObject{Kind: ir.KindString}},
		},
	})
	return model
}

func TestNewDefaultsOutputFile(t *testing.T) {
	p := New("")
	if p.OutputFile != "validators.ts" {
		t.Errorf("OutputFile = %q, want validators.ts", p.OutputFile)
	}
}

func TestInitAndBroadcastEmitsComponent(t *testing.T) {
	model := newTestModel()
	bus := eventbus.New()
	files := fileregistry.New("")
	ctx := pipelinectx.New(&config.Config{}, model, bus, files, identifier.New())

	p := New("")
	if err := p.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := ctx.Broadcast(eventbus.After, nil); err != nil {
		t.Fatalf("Broadcast returned error: %v", err)
	}

	file := ctx.File("validators")
	if file == nil {
		t.Fatal("expected validators file to be registered")
	}
	if !file.HasNode("Pet") {
		t.Fatalf("expected a Pet node to be emitted, got nodes: %+v", file.Nodes)
	}
	var found string
	for _, n := range file.Nodes {
		if n.ID == "Pet" {
			found = n.Text
		}
	}
	if !strings.Contains(found, "export const Pet") {
		t.Errorf("unexpected Pet declaration: %s", found)
	}
}

func TestOperationBundleNameCapitalizesAndFallsBack(t *testing.T) {
	if got := operationBundleName("getPet"); got != "GetPetRequest" {
		t.Errorf("operationBundleName(getPet) = %q, want GetPetRequest", got)
	}
	if got := operationBundleName(""); got != "UnnamedOperation" {
		t.Errorf("operationBundleName(\"\") = %q, want UnnamedOperation", got)
	}
}
