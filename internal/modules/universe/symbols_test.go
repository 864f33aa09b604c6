package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		expected string
	}{
		{name: "plain symbol", symbol: "RELIANCE", expected: "RELIANCE"},
		{name: "NSE suffix", symbol: "RELIANCE.NS", expected: "RELIANCE"},
		{name: "BSE suffix", symbol: "RELIANCE.BO", expected: "RELIANCE"},
		{name: "lowercase with suffix", symbol: "reliance.ns", expected: "RELIANCE"},
		{name: "whitespace", symbol: "  tcs.bo ", expected: "TCS"},
		{name: "unrelated dot suffix kept", symbol: "BRK.A", expected: "BRK.A"},
		{name: "empty", symbol: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.symbol))
		})
	}
}

func TestSameInstrument(t *testing.T) {
	assert.True(t, SameInstrument("ABC", "ABC.NS"))
	assert.True(t, SameInstrument("abc.bo", "ABC.NS"))
	assert.False(t, SameInstrument("ABC", "ABCD"))
}
