// Package normalizers provides field normalization for roster records: a
// small registry of generic string normalizers plus the fixed roster
// vocabulary tables (positions, bat/throw hands, class years, state names).
package normalizers

import (
	"strings"
	"unicode"
)

// Normalizer is a function that normalizes a string value
type Normalizer func(string) string

// registry holds all registered normalizers
var registry = make(map[string]Normalizer)

func init() {
	// Register built-in normalizers
	Register("lowercase", Lowercase)
	Register("trim", Trim)
	Register("collapse_whitespace", CollapseWhitespace)
	Register("nname", NormalizeName)
	Register("strip_sentinel", StripSentinel)
}

// Register adds a normalizer to the registry
func Register(name string, fn Normalizer) {
	registry[name] = fn
}

// Apply applies a named normalizer to a value
func Apply(value, normalizer string) string {
	fn, ok := registry[normalizer]
	if !ok {
		return value
	}
	return fn(value)
}

// ApplyChain applies multiple normalizers in sequence
func ApplyChain(value string, normalizers ...string) string {
	result := value
	for _, name := range normalizers {
		result = Apply(result, name)
	}
	return result
}

// Built-in normalizers

// Lowercase converts string to lowercase
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// Trim removes leading and trailing whitespace
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// CollapseWhitespace folds runs of whitespace into single spaces
func CollapseWhitespace(s string) string {
	var result strings.Builder
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !prevSpace {
				result.WriteRune(' ')
				prevSpace = true
			}
			continue
		}
		result.WriteRune(r)
		prevSpace = false
	}
	return strings.TrimSpace(result.String())
}

// StripSentinel maps the scraper's "N/A" sentinel to the empty string
func StripSentinel(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "N/A") {
		return ""
	}
	return s
}

// NormalizeName normalizes a person or institution name for matching
// - Lowercase
// - Remove extra whitespace
// - Remove common suffixes (Jr., Sr., III, etc.)
// - Remove punctuation
func NormalizeName(s string) string {
	s = strings.ToLower(s)

	suffixes := []string{" jr.", " jr", " sr.", " sr", " iii", " ii", " iv"}
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			s = s[:len(s)-len(suffix)]
		}
	}

	var result strings.Builder
	prevSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
			prevSpace = false
		} else if unicode.IsSpace(r) {
			if !prevSpace {
				result.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	return strings.TrimSpace(result.String())
}
