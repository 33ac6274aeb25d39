package hea

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CompositionSize is the number of distinct elements in a composition.
const CompositionSize = 6

// DefaultElements is the element enumeration of the six-element lake.
var DefaultElements = []string{
	"Al", "Co", "Cr", "Cu", "Fe", "Hf", "Mn", "Mo",
	"Nb", "Ni", "Ta", "Ti", "V", "W", "Zr",
}

// Canonicalize trims s and capitalizes it: first letter upper, rest lower.
func Canonicalize(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// ElementSet is a set of canonical element symbols.
type ElementSet map[string]struct{}

// NewElementSet canonicalizes symbols into a set.
func NewElementSet(symbols ...string) ElementSet {
	set := make(ElementSet, len(symbols))
	for _, s := range symbols {
		set[Canonicalize(s)] = struct{}{}
	}
	return set
}

// Contains reports whether the canonical symbol is in the set.
func (s ElementSet) Contains(symbol string) bool {
	_, ok := s[symbol]
	return ok
}

// Symbols returns the members in sorted order.
func (s ElementSet) Symbols() []string {
	out := make([]string, 0, len(s))
	for sym := range s {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// canonicalSet canonicalizes, deduplicates and sorts symbols.
func canonicalSet(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		c := Canonicalize(s)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// compositionKey is the order-independent key of a canonical sorted set.
func compositionKey(set []string) string {
	return strings.Join(set, "-")
}

// normalize turns caller input into a validated, sorted composition set.
// The size check runs before element validation.
func normalize(symbols []string, valid ElementSet) ([]string, error) {
	set := canonicalSet(symbols)
	if len(set) != CompositionSize {
		return nil, &InvalidCompositionSizeError{Count: len(set), Symbols: set}
	}

	var unknown []string
	for _, s := range set {
		if !valid.Contains(s) {
			unknown = append(unknown, s)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownElementError{Symbols: unknown, Valid: valid.Symbols()}
	}
	return set, nil
}
