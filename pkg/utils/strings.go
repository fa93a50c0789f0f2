// Package utils holds the case-conversion helpers shared by every emitter:
// the template-driven client generators under pkg/generator/* and
// internal/identifier's Identifier Service both derive symbol names from
// OpenAPI identifiers (path segments, property names, operationIds) through
// these functions, so one word-splitting algorithm governs every emitted
// name regardless of which plugin asked for it.
package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// RemoveAccents converts accented characters to their base forms (e.g.
// "café" -> "cafe") so a name containing them still produces a valid
// identifier in languages that don't allow combining marks in symbol names.
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// SplitWords splits s into words on any run of non-alphanumeric characters
// and on camelCase/PascalCase boundaries, including acronym runs ("XMLHttp"
// -> "XML", "Http"), after stripping accents.
func SplitWords(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = RemoveAccents(s)

	var words []string
	for _, chunk := range nonAlnum.Split(s, -1) {
		if chunk != "" {
			words = append(words, splitCamelCase(chunk)...)
		}
	}
	return words
}

// splitCamelCase splits one alphanumeric run into words at camelCase /
// PascalCase boundaries, keeping an acronym run together except for its
// last letter when that letter starts a new lowercase word
// ("XMLHttpRequest" -> "XML", "Http", "Request").
func splitCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		isNewWord := false
		if i > 0 && unicode.IsUpper(r) {
			switch {
			case !unicode.IsUpper(runes[i-1]):
				isNewWord = true
			case i < len(runes)-1 && !unicode.IsUpper(runes[i+1]):
				isNewWord = true
			}
		}
		if isNewWord && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// ToPascalCase converts s to PascalCase.
func ToPascalCase(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		if len(w) > 1 {
			b.WriteString(strings.ToLower(w[1:]))
		}
	}
	return b.String()
}

// ToCamelCase converts s to camelCase.
func ToCamelCase(s string) string {
	p := ToPascalCase(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// ToSnakeCase converts s to snake_case.
func ToSnakeCase(s string) string {
	return joinLower(SplitWords(s), "_")
}

// ToKebabCase converts s to kebab-case.
func ToKebabCase(s string) string {
	return joinLower(SplitWords(s), "-")
}

func joinLower(words []string, sep string) string {
	if len(words) == 0 {
		return ""
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return strings.Join(out, sep)
}
