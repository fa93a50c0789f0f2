package eventbus

import (
	"errors"
	"testing"
)

func TestBroadcastOrderAndSequencing(t *testing.T) {
	bus := New()
	var order []string

	bus.Subscribe(Operation, "first", func(payload any) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe(Operation, "second", func(payload any) error {
		order = append(order, "second")
		return nil
	})

	if err := bus.Broadcast(Operation, "op-1"); err != nil {
		t.Fatalf("Broadcast returned error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("subscribers fired out of order: %v", order)
	}
}

func TestBroadcastStopsOnFirstError(t *testing.T) {
	bus := New()
	var calledSecond bool

	cause := errors.New("boom")
	bus.Subscribe(Schema, "failing", func(payload any) error { return cause })
	bus.Subscribe(Schema, "never-called", func(payload any) error {
		calledSecond = true
		return nil
	})

	err := bus.Broadcast(Schema, "schema-1")
	if err == nil {
		t.Fatal("expected error")
	}
	var be *BroadcastError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BroadcastError, got %T", err)
	}
	if be.PluginName != "failing" || be.EventName != Schema || !errors.Is(err, cause) {
		t.Fatalf("unexpected BroadcastError: %+v", be)
	}
	if calledSecond {
		t.Fatal("second subscriber must not run after the first fails")
	}
}
