// Package filter compiles the input.include / input.exclude ref-pattern
// lists into a predicate over ($ref, ...).
package filter

import "regexp"

// Set is a compiled include/exclude filter pair.
//
// A ref is processed iff include.matches && !exclude.matches; an empty
// include list means accept-all.
type Set struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// Compile compiles include/exclude glob-like regex patterns. Patterns are
// plain regular expressions, the same tag-filter convention
// pkg/generator/ir_builder.go's compileTagFilters uses.
func Compile(include, exclude []string) (*Set, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return nil, err
	}
	return &Set{include: inc, exclude: exc}, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// Accepts reports whether ref passes the filter: matched by some include
// pattern (or no include patterns at all) and matched by no exclude
// pattern.
func (s *Set) Accepts(ref string) bool {
	if s == nil {
		return true
	}
	if len(s.include) > 0 && !matchesAny(s.include, ref) {
		return false
	}
	if matchesAny(s.exclude, ref) {
		return false
	}
	return true
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
