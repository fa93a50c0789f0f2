package filter

import "testing"

func TestAcceptsWithNoIncludeListAcceptsAll(t *testing.T) {
	s, err := Compile(nil, nil)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if !s.Accepts("#/paths/~1pets") {
		t.Error("expected accept-all with empty include/exclude")
	}
}

func TestAcceptsHonorsIncludeAndExclude(t *testing.T) {
	s, err := Compile([]string{`^#/paths/`}, []string{`admin`})
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if !s.Accepts("#/paths/~1pets") {
		t.Error("expected #/paths/~1pets to be included")
	}
	if s.Accepts("#/paths/~1admin~1users") {
		t.Error("expected #/paths/~1admin~1users to be excluded")
	}
	if s.Accepts("#/components/schemas/Pet") {
		t.Error("expected a non-matching include pattern to reject")
	}
}

func TestAcceptsOnNilSetAcceptsAll(t *testing.T) {
	var s *Set
	if !s.Accepts("anything") {
		t.Error("expected a nil *Set to accept everything")
	}
}

func TestCompileInvalidPatternErrors(t *testing.T) {
	if _, err := Compile([]string{"("}, nil); err == nil {
		t.Fatal("expected an error for an invalid regex")
	}
}
