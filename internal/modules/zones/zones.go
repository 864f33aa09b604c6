// Package zones parses price zone strings and classifies prices against them.
package zones

import (
	"strconv"
	"strings"
)

// nearThreshold is the fraction of a bound's value used to flag prices
// approaching a zone boundary.
const nearThreshold = 0.05

// Parse converts a zone string to its low and high bounds.
// "250-300" yields (250, 300), a single value "250" yields (250, 250),
// and anything unparseable yields (nil, nil). It never errors.
func Parse(zone string) (*float64, *float64) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return nil, nil
	}

	parts := strings.SplitN(zone, "-", 2)
	low, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, nil
	}

	if len(parts) == 1 {
		high := low
		return &low, &high
	}

	high, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, nil
	}
	if high < low {
		low, high = high, low
	}

	return &low, &high
}

// Position describes where a price sits relative to a zone.
type Position string

const (
	PositionInZone  Position = "in_zone"
	PositionNear    Position = "near_zone"
	PositionOutside Position = "outside"
	PositionUnknown Position = "unknown"
)

// Classify reports where price sits relative to the zone string.
// A price outside the zone but within nearThreshold of a bound's value
// counts as near, so "250-300" is near from 237.50 down and 315 up.
// Unparseable zones classify as unknown.
func Classify(price float64, zone string) Position {
	low, high := Parse(zone)
	if low == nil || high == nil {
		return PositionUnknown
	}

	if price >= *low && price <= *high {
		return PositionInZone
	}

	if price >= *low*(1-nearThreshold) && price <= *high*(1+nearThreshold) {
		return PositionNear
	}

	return PositionOutside
}

// InZone reports whether price falls within the zone bounds inclusive.
func InZone(price float64, zone string) bool {
	return Classify(price, zone) == PositionInZone
}
