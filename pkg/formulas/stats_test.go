package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-9)
}

func TestHerfindahl(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "empty is maximum concentration", values: nil, expected: 1.0},
		{name: "single position", values: []float64{500}, expected: 1.0},
		{name: "two equal positions", values: []float64{100, 100}, expected: 0.5},
		{name: "four equal positions", values: []float64{25, 25, 25, 25}, expected: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Herfindahl(tt.values), 1e-9)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.2345, 2))
	assert.Equal(t, 1.24, Round(1.235, 2))
	assert.Equal(t, -5.68, Round(-5.679, 2))
}
