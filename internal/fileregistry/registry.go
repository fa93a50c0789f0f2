// Package fileregistry owns every emitted file, its imports, exports, and
// the barrel-file flag.
package fileregistry

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/copystructure"
)

// Import is a single (module, symbol) pair. Imports are deduplicated within
// a file.
type Import struct {
	Module string
	Symbol string
}

// Node is one top-level declaration appended to a file, in append order.
type Node struct {
	ID   string
	Text string
}

// File owns one emitted file's nodes and imports.
type File struct {
	ID              string
	RelPath         string
	IdentifierCase  string
	ExportFromIndex bool

	Nodes   []Node
	imports map[Import]bool
	order   []Import
}

// Add appends decl as a new top-level node, in call order.
func (f *File) Add(id, text string) {
	f.Nodes = append(f.Nodes, Node{ID: id, Text: text})
}

// HasNode reports whether a node with the given id has already been added,
// letting a plugin avoid emitting the same declaration twice for one ref.
func (f *File) HasNode(id string) bool {
	for _, n := range f.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// CloneNodeFrom splices a node already emitted into src (e.g. a shared type
// re-exported from a barrel file) into f, under a (possibly different) id.
// The node is deep-copied via copystructure so later edits to either file's
// copy can never alias the other's.
func (f *File) CloneNodeFrom(src *File, srcID, destID string) error {
	for _, n := range src.Nodes {
		if n.ID != srcID {
			continue
		}
		cloned, err := copystructure.Copy(n)
		if err != nil {
			return fmt.Errorf("fileregistry: clone node %q: %w", srcID, err)
		}
		node := cloned.(Node)
		node.ID = destID
		f.Nodes = append(f.Nodes, node)
		return nil
	}
	return fmt.Errorf("fileregistry: source node %q not found", srcID)
}

// Import records a (module, symbol) import, ignoring duplicates.
func (f *File) Import(module, symbol string) {
	if f.imports == nil {
		f.imports = map[Import]bool{}
	}
	imp := Import{Module: module, Symbol: symbol}
	if f.imports[imp] {
		return
	}
	f.imports[imp] = true
	f.order = append(f.order, imp)
}

// Imports returns the file's deduplicated imports in first-requested order.
func (f *File) Imports() []Import {
	return append([]Import(nil), f.order...)
}

// Registry owns every File created during a run.
type Registry struct {
	outputRoot string
	files      map[string]*File
	order      []string
}

// New returns a Registry rooted at outputRoot (config `output.path`).
func New(outputRoot string) *Registry {
	return &Registry{outputRoot: outputRoot, files: map[string]*File{}}
}

// CreateFile creates (or returns the existing) file for id. A duplicate
// creation with the same id is a programmer error: it is logged as a warning
// and the existing file wins.
func (r *Registry) CreateFile(id, relPath string) *File {
	if existing, ok := r.files[id]; ok {
		log.Printf("fileregistry: duplicate createFile(%q); existing file wins", id)
		return existing
	}
	f := &File{ID: id, RelPath: relPath}
	r.files[id] = f
	r.order = append(r.order, id)
	return f
}

// File returns the file registered under id, or nil if none exists yet.
func (r *Registry) File(id string) *File {
	return r.files[id]
}

// Files returns every registered file in creation order.
func (r *Registry) Files() []*File {
	out := make([]*File, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.files[id])
	}
	return out
}

// AbsPath resolves a file's relative path against the configured output
// root, preserving directory structure.
func (r *Registry) AbsPath(f *File) string {
	return filepath.Join(r.outputRoot, f.RelPath)
}

// Finalize writes every file to disk. It is all-or-nothing: no partial file
// is ever flushed on error, so Finalize renders every file's content in
// memory first and only starts writing once every render succeeded.
func Finalize(r *Registry, render func(f *File) (string, error)) error {
	rendered := make(map[string]string, len(r.order))
	for _, id := range r.order {
		f := r.files[id]
		content, err := render(f)
		if err != nil {
			return fmt.Errorf("fileregistry: render %q: %w", id, err)
		}
		rendered[id] = content
	}
	for _, id := range r.order {
		f := r.files[id]
		abs := r.AbsPath(f)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return fmt.Errorf("fileregistry: mkdir for %q: %w", id, err)
		}
		if err := os.WriteFile(abs, []byte(rendered[id]), 0o644); err != nil {
			return fmt.Errorf("fileregistry: write %q: %w", id, err)
		}
	}
	return nil
}
