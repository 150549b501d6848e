package dataprocessing

import (
	"strings"
	"unicode"

	"srdash/pkg/contracts/domain"
)

// stateLookup maps the space-stripped lowercase form of every accepted
// spelling to its canonical state, so "On Hold", "on hold" and "onhold"
// all resolve to the same label.
var stateLookup = map[string]domain.TxState{
	"remitted":  domain.StateRemitted,
	"published": domain.StatePublished,
	"rejected":  domain.StateRejected,
	"onhold":    domain.StateOnHold,
	"stuck":     domain.StateStuck,
	"inreview":  domain.StateInReview,
	"inprocess": domain.StateInProcess,
	"amlreview": domain.StateAmlReview,
	"noconfig":  domain.StateNoConfig,
}

// NormalizeState maps a raw free-text state label onto the canonical
// vocabulary. Missing or empty input becomes Unknown. Unrecognized labels
// fall back to a capitalized form of the trimmed original (first rune
// upper, rest lower); this lossy fallback is kept as-is for compatibility
// with datasets produced before the vocabulary was fixed.
func NormalizeState(raw string) domain.TxState {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.StateUnknown
	}

	key := strings.ToLower(trimmed)
	if state, ok := stateLookup[key]; ok {
		return state
	}
	// Secondary lookup with internal spaces stripped.
	if state, ok := stateLookup[strings.ReplaceAll(key, " ", "")]; ok {
		return state
	}

	return domain.TxState(capitalize(trimmed))
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
