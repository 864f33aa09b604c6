// Package universe tracks the investor's stock watchlist and owns symbol
// normalization across exchange-suffix variants.
package universe

import (
	"regexp"
	"strings"
)

// Indian listings show up with or without an exchange suffix depending on
// where the record came from: "RELIANCE", "RELIANCE.NS" (NSE) and
// "RELIANCE.BO" (BSE) all name the same instrument.
var exchangeSuffixPattern = regexp.MustCompile(`\.(NS|BO)$`)

// Normalize canonicalizes a symbol for matching: trims, upper-cases, and
// strips a recognized exchange suffix. It is a lookup aid only; callers
// keep whichever literal spelling was first recorded for display.
func Normalize(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	return exchangeSuffixPattern.ReplaceAllString(s, "")
}

// SameInstrument reports whether two symbols refer to the same instrument
// regardless of suffix variant.
func SameInstrument(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
