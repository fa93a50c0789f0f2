package fileregistry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateFileIsIdempotentByID(t *testing.T) {
	r := New(t.TempDir())
	f1 := r.CreateFile("validators", "validators.ts")
	f2 := r.CreateFile("validators", "elsewhere.ts")
	if f1 != f2 {
		t.Fatal("expected duplicate CreateFile to return the existing file")
	}
	if f2.RelPath != "validators.ts" {
		t.Errorf("RelPath = %q, want the first-registered path", f2.RelPath)
	}
}

func TestImportsDeduplicateAndPreserveOrder(t *testing.T) {
	f := &File{}
	f.Import("zod", "z")
	f.Import("zod", "z")
	f.Import("./types", "Pet")

	imports := f.Imports()
	if len(imports) != 2 {
		t.Fatalf("expected 2 deduplicated imports, got %d", len(imports))
	}
	if imports[0].Symbol != "z" || imports[1].Symbol != "Pet" {
		t.Errorf("unexpected import order: %+v", imports)
	}
}

func TestCloneNodeFromDeepCopiesNode(t *testing.T) {
	src := &File{}
	src.Add("Pet", "export const Pet = S.object({});")

	dest := &File{}
	if err := dest.CloneNodeFrom(src, "Pet", "Pet"); err != nil {
		t.Fatalf("CloneNodeFrom returned error: %v", err)
	}
	if !dest.HasNode("Pet") {
		t.Fatal("expected cloned node to be present in dest")
	}

	// Mutating the source's node must not affect the clone.
	src.Nodes[0].Text = "mutated"
	if dest.Nodes[0].Text == "mutated" {
		t.Fatal("clone aliased the source node")
	}
}

func TestCloneNodeFromMissingSourceErrors(t *testing.T) {
	src := &File{}
	dest := &File{}
	if err := dest.CloneNodeFrom(src, "Missing", "Missing"); err == nil {
		t.Fatal("expected an error for a missing source node")
	}
}

func TestFinalizeWritesAllFilesAtomically(t *testing.T) {
	dir := t.TempDir()
	r := New(dir)
	r.CreateFile("a", "a.ts")
	r.CreateFile("b", "nested/b.ts")

	err := Finalize(r, func(f *File) (string, error) {
		return "// " + f.ID, nil
	})
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}

	for id, rel := range map[string]string{"a": "a.ts", "b": "nested/b.ts"} {
		content, err := os.ReadFile(filepath.Join(dir, rel))
		if err != nil {
			t.Fatalf("read %s: %v", rel, err)
		}
		if string(content) != "// "+id {
			t.Errorf("content of %s = %q, want %q", rel, content, "// "+id)
		}
	}
}
