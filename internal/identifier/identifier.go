// Package identifier maintains the stable $ref -> emitted-symbol-name
// mapping, with case and collision discipline, scoped per (file, namespace).
package identifier

import (
	"fmt"
	"strings"

	"github.com/go-openapi/swag"
	"github.com/oasforge/oasgen/internal/refresolver"
	"github.com/oasforge/oasgen/pkg/utils"
)

// Namespace separates colliding names used for values vs. types, since many
// target languages distinguish a runtime constant from a type declaration
// sharing the same base name.
type Namespace string

const (
	NamespaceValue Namespace = "value"
	NamespaceType  Namespace = "type"
)

// Case is one of the supported case-conversion modes.
type Case string

const (
	CaseCamel     Case = "camelCase"
	CasePascal    Case = "PascalCase"
	CaseSnake     Case = "snake_case"
	CaseScreaming Case = "SCREAMING_SNAKE"
	CasePreserve  Case = "preserve"
)

// NameTransformer is a tagged variant {Fn | Pattern}: either a Go function or
// a printf-like pattern string containing "{{name}}".
type NameTransformer struct {
	Fn      func(name string) string
	Pattern string
}

// Apply evaluates the transformer against a base name. A zero-value
// NameTransformer is the identity transform.
func (t NameTransformer) Apply(name string) string {
	switch {
	case t.Fn != nil:
		return t.Fn(name)
	case t.Pattern != "":
		return strings.ReplaceAll(t.Pattern, "{{name}}", name)
	default:
		return name
	}
}

// Identifier is a stable emitted symbol name associated with a $ref and
// namespace.
type Identifier struct {
	Ref       string
	Namespace Namespace
	Name      string
	Created   bool
}

// Request is the input to Service.Identifier.
type Request struct {
	FileID          string
	Ref             string
	Namespace       Namespace
	Create          bool
	Case            Case
	NameTransformer NameTransformer
}

type key struct {
	fileID    string
	ref       string
	namespace Namespace
}

// Service owns the per-file $ref -> name map.
//
// It is driven exclusively from cooperative broadcast slices, so no synchronization is needed: at most one plugin mutates a
// given file's tables in any one slice.
type Service struct {
	byKey      map[key]*Identifier
	namesInUse map[string]map[Namespace]map[string]bool // fileID -> namespace -> name -> taken
}

// New returns an empty Service.
func New() *Service {
	return &Service{
		byKey:      map[key]*Identifier{},
		namesInUse: map[string]map[Namespace]map[string]bool{},
	}
}

// Identifier resolves req against the per-file table:
//   - an existing (ref, namespace) mapping is returned with Created=false;
//   - otherwise, if Create is true, a name is derived, transformed, cased,
//     disambiguated, recorded, and returned with Created=true;
//   - otherwise the empty-name sentinel {Name: "", Created: false} is
//     returned, letting the caller detect a forward reference.
func (s *Service) Identifier(req Request) Identifier {
	k := key{fileID: req.FileID, ref: req.Ref, namespace: req.Namespace}
	if existing, ok := s.byKey[k]; ok {
		return Identifier{Ref: existing.Ref, Namespace: existing.Namespace, Name: existing.Name, Created: false}
	}
	if !req.Create {
		return Identifier{Ref: req.Ref, Namespace: req.Namespace, Name: "", Created: false}
	}

	base := req.NameTransformer.Apply(refresolver.LastSegment(req.Ref))
	name := applyCase(base, req.Case)
	name = s.disambiguate(req.FileID, req.Namespace, name)

	id := &Identifier{Ref: req.Ref, Namespace: req.Namespace, Name: name, Created: true}
	s.byKey[k] = id
	s.markUsed(req.FileID, req.Namespace, name)
	return *id
}

// disambiguate appends a numeric suffix until name is free within
// (fileID, namespace).
func (s *Service) disambiguate(fileID string, ns Namespace, name string) string {
	if !s.taken(fileID, ns, name) {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if !s.taken(fileID, ns, candidate) {
			return candidate
		}
	}
}

func (s *Service) taken(fileID string, ns Namespace, name string) bool {
	byNS := s.namesInUse[fileID]
	if byNS == nil {
		return false
	}
	return byNS[ns][name]
}

func (s *Service) markUsed(fileID string, ns Namespace, name string) {
	if s.namesInUse[fileID] == nil {
		s.namesInUse[fileID] = map[Namespace]map[string]bool{}
	}
	if s.namesInUse[fileID][ns] == nil {
		s.namesInUse[fileID][ns] = map[string]bool{}
	}
	s.namesInUse[fileID][ns][name] = true
}

// applyCase performs the requested case conversion, using pkg/utils's case
// converters with a go-openapi/swag initialism-aware fallback for PascalCase
// (so "UserID" comes out rather than "UserId").
func applyCase(name string, c Case) string {
	switch c {
	case CaseCamel:
		return utils.ToCamelCase(name)
	case CasePascal:
		pascal := utils.ToPascalCase(name)
		if initialism := swag.ToGoName(name); looksLikeBetterInitialism(pascal, initialism) {
			return initialism
		}
		return pascal
	case CaseSnake:
		return utils.ToSnakeCase(name)
	case CaseScreaming:
		return strings.ToUpper(utils.ToSnakeCase(name))
	case CasePreserve, "":
		return name
	default:
		return name
	}
}

// looksLikeBetterInitialism prefers swag's initialism table (Id->ID, Url->URL,
// Http->HTTP, ...) only when it actually recognizes one in this name; for
// ordinary words the plain PascalCase conversion is kept as-is so unrelated
// identifiers aren't perturbed by an unrelated library's opinions.
func looksLikeBetterInitialism(pascal, swagName string) bool {
	if pascal == swagName {
		return false
	}
	for _, initialism := range []string{"Id", "Url", "Http", "Api", "Json", "Uuid", "Html"} {
		if strings.Contains(pascal, initialism) {
			return true
		}
	}
	return false
}
