// Package refresolver resolves a JSON Pointer $ref against a root document
// (RFC 6901).
//
// The resolver itself does not detect cycles; callers that walk a graph that
// may be cyclic (the schema emitter) maintain their own traversal stack.
package refresolver

import (
	"fmt"
	"strings"

	"github.com/go-openapi/jsonpointer"
	"golang.org/x/sync/singleflight"
)

// RefNotFoundError is returned when any segment of a pointer is missing.
type RefNotFoundError struct {
	Ref     string
	Segment string
}

func (e *RefNotFoundError) Error() string {
	return fmt.Sprintf("refresolver: %q not found (segment %q)", e.Ref, e.Segment)
}

// Resolve walks $ref against root and returns the node it designates.
//
// $ref is expected in "#/a/b/c" form; the "#" prefix is optional. Pointer
// segments are unescaped per RFC 6901 ("~1" -> "/", "~0" -> "~") using
// github.com/go-openapi/jsonpointer, the same library the example pack's
// go-openapi-based tooling already depends on for this exact concern.
func Resolve(ref string, root any) (any, error) {
	pointer := strings.TrimPrefix(ref, "#")
	if pointer == "" {
		return root, nil
	}
	ptr, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, fmt.Errorf("refresolver: invalid pointer %q: %w", ref, err)
	}
	val, _, err := ptr.Get(root)
	if err != nil {
		return nil, &RefNotFoundError{Ref: ref, Segment: pointer}
	}
	return val, nil
}

// ResolveTyped resolves ref against root and type-asserts the result to T.
func ResolveTyped[T any](ref string, root any) (T, error) {
	var zero T
	val, err := Resolve(ref, root)
	if err != nil {
		return zero, err
	}
	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("refresolver: %q resolved to %T, want %T", ref, val, zero)
	}
	return typed, nil
}

// Segments splits a "#/a/b~1c" pointer into its decoded path segments
// ("a", "b/c"), exposed for callers (the Identifier Service) that need the
// last segment as a naming seed without resolving the value itself.
func Segments(ref string) []string {
	pointer := strings.TrimPrefix(ref, "#")
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil
	}
	raw := strings.Split(pointer, "/")
	out := make([]string, 0, len(raw))
	for _, seg := range raw {
		out = append(out, unescape(seg))
	}
	return out
}

// LastSegment returns the decoded final path segment of ref, or "" if ref has
// none (e.g. it is just "#").
func LastSegment(ref string) string {
	segs := Segments(ref)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

func unescape(seg string) string {
	seg = strings.ReplaceAll(seg, "~1", "/")
	seg = strings.ReplaceAll(seg, "~0", "~")
	return seg
}

// Cache resolves refs against one root document, collapsing concurrent
// lookups of the same ref into a single traversal via singleflight. Results
// are not stored: a lookup that starts after an earlier one has finished
// walks the document again.
type Cache struct {
	root  any
	group singleflight.Group
}

// NewCache returns a Cache resolving refs against root.
func NewCache(root any) *Cache {
	return &Cache{root: root}
}

// Resolve resolves ref against the cache's root, deduplicating concurrent
// calls for the same ref so callers in flight at the same time share one
// walk.
func (c *Cache) Resolve(ref string) (any, error) {
	v, err, _ := c.group.Do(ref, func() (any, error) {
		return Resolve(ref, c.root)
	})
	return v, err
}
