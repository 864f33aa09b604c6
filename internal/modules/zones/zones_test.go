package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		zone string
		low  float64
		high float64
		ok   bool
	}{
		{name: "range", zone: "250-300", low: 250, high: 300, ok: true},
		{name: "single value", zone: "250", low: 250, high: 250, ok: true},
		{name: "decimals", zone: "99.5-110.25", low: 99.5, high: 110.25, ok: true},
		{name: "whitespace", zone: " 250 - 300 ", low: 250, high: 300, ok: true},
		{name: "inverted bounds swapped", zone: "300-250", low: 250, high: 300, ok: true},
		{name: "empty", zone: "", ok: false},
		{name: "garbage", zone: "abc", ok: false},
		{name: "partial garbage", zone: "250-abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := Parse(tt.zone)
			if !tt.ok {
				assert.Nil(t, low)
				assert.Nil(t, high)
				return
			}
			require.NotNil(t, low)
			require.NotNil(t, high)
			assert.Equal(t, tt.low, *low)
			assert.Equal(t, tt.high, *high)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		zone  string
		want  Position
	}{
		{name: "inside range", price: 275, zone: "250-300", want: PositionInZone},
		{name: "at low bound", price: 250, zone: "250-300", want: PositionInZone},
		{name: "at high bound", price: 300, zone: "250-300", want: PositionInZone},
		{name: "just below", price: 249, zone: "250-300", want: PositionNear},
		{name: "just above", price: 302, zone: "250-300", want: PositionNear},
		{name: "within 5pct of low bound", price: 240, zone: "250-300", want: PositionNear},
		{name: "within 5pct of high bound", price: 310, zone: "250-300", want: PositionNear},
		{name: "below low margin", price: 237, zone: "250-300", want: PositionOutside},
		{name: "above high margin", price: 316, zone: "250-300", want: PositionOutside},
		{name: "far below", price: 200, zone: "250-300", want: PositionOutside},
		{name: "far above", price: 400, zone: "250-300", want: PositionOutside},
		{name: "single value exact", price: 250, zone: "250", want: PositionInZone},
		{name: "single value near", price: 245, zone: "250", want: PositionNear},
		{name: "bad zone", price: 100, zone: "n/a", want: PositionUnknown},
		{name: "empty zone", price: 100, zone: "", want: PositionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.price, tt.zone))
		})
	}
}

func TestInZone(t *testing.T) {
	assert.True(t, InZone(275, "250-300"))
	assert.False(t, InZone(249, "250-300"))
	assert.False(t, InZone(100, ""))
}
