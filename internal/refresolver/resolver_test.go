package refresolver

import "testing"

func TestResolve(t *testing.T) {
	root := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Pet/Owner": map[string]any{"type": "object"},
			},
		},
	}

	got, err := Resolve("#/components/schemas/Pet~1Owner", root)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok || m["type"] != "object" {
		t.Fatalf("Resolve returned %#v, want schema object", got)
	}
}

func TestResolveNotFound(t *testing.T) {
	root := map[string]any{"components": map[string]any{}}
	_, err := Resolve("#/components/schemas/Missing", root)
	if err == nil {
		t.Fatal("expected RefNotFoundError, got nil")
	}
	if _, ok := err.(*RefNotFoundError); !ok {
		t.Fatalf("expected *RefNotFoundError, got %T", err)
	}
}

func TestCacheResolveRepeatedLookups(t *testing.T) {
	calls := 0
	root := map[string]any{"components": map[string]any{"schemas": map[string]any{
		"Pet": map[string]any{"type": "object"},
	}}}

	c := NewCache(root)
	for i := 0; i < 3; i++ {
		got, err := c.Resolve("#/components/schemas/Pet")
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		m, ok := got.(map[string]any)
		if !ok || m["type"] != "object" {
			t.Fatalf("Resolve returned %#v, want schema object", got)
		}
		calls++
	}
	if calls != 3 {
		t.Fatalf("expected 3 successful calls, got %d", calls)
	}
}

func TestLastSegment(t *testing.T) {
	tests := []struct {
		ref      string
		expected string
	}{
		{"#/components/schemas/Pet", "Pet"},
		{"#/components/schemas/Pet~1Owner", "Pet/Owner"},
		{"#/components/schemas/A~0B", "A~B"},
		{"#", ""},
	}
	for _, tc := range tests {
		if got := LastSegment(tc.ref); got != tc.expected {
			t.Errorf("LastSegment(%q) = %q, want %q", tc.ref, got, tc.expected)
		}
	}
}
