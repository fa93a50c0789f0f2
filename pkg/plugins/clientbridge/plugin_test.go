package clientbridge

import (
	"testing"

	"github.com/oasforge/oasgen/internal/eventbus"
	"github.com/oasforge/oasgen/internal/fileregistry"
	"github.com/oasforge/oasgen/internal/identifier"
	"github.com/oasforge/oasgen/internal/pipelinectx"
	"github.com/oasforge/oasgen/pkg/config"
	"github.com/oasforge/oasgen/pkg/ir"
)

func TestNamePrefixesClientName(t *testing.T) {
	p := New(config.Client{Name: "main-sdk"})
	if p.Name() != "client:main-sdk" {
		t.Errorf("Name() = %q, want client:main-sdk", p.Name())
	}
}

func TestGenerateWithoutModelErrors(t *testing.T) {
	p := New(config.Client{Name: "main-sdk", Type: "typescript"})
	ctx := pipelinectx.New(&config.Config{}, nil, eventbus.New(), fileregistry.New(""), identifier.New())

	if err := p.generate(ctx); err == nil {
		t.Fatal("expected an error when ctx.Model is nil")
	}
}

func TestInitSubscribesToAfterEvent(t *testing.T) {
	p := New(config.Client{Name: "main-sdk", Type: "typescript"})
	bus := eventbus.New()
	ctx := pipelinectx.New(&config.Config{}, ir.NewModel(), bus, fileregistry.New(""), identifier.New())

	if err := p.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	// An empty Model has no clients-worth of paths, but the bridge still
	// walks it to build an (empty) IR and calls the registered generator;
	// with no output directory configured on the client, that generator
	// call fails, and that failure should surface through the bus as a
	// *eventbus.BroadcastError.
	if err := ctx.Broadcast(eventbus.After, nil); err == nil {
		t.Fatal("expected Broadcast to propagate generate's error")
	}
}
