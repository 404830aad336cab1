package rounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

func TestLookupKnownMethods(t *testing.T) {
	for _, method := range Methods() {
		p, ok := Lookup(method)
		require.True(t, ok, "method %s should be registered", method)
		require.NotNil(t, p.Apply)
		assert.NotEmpty(t, p.Name)
	}
}

func TestLookupUnknownMethod(t *testing.T) {
	_, ok := Lookup(models.RoundingMethod("truncate"))
	assert.False(t, ok)
}

func TestPolicies(t *testing.T) {
	tests := []struct {
		name   string
		method models.RoundingMethod
		input  float64
		want   float64
	}{
		{"standard rounds half up", models.RoundingStandard, 6.5, 7},
		{"standard rounds down below half", models.RoundingStandard, 6.4, 6},
		{"standard rounds up above half", models.RoundingStandard, 6.6, 7},
		{"bankers rounds half to even down", models.RoundingBankers, 6.5, 6},
		{"bankers rounds half to even up", models.RoundingBankers, 7.5, 8},
		{"bankers leaves non-half alone", models.RoundingBankers, 6.6, 7},
		{"roundUp snaps up to nearest half", models.RoundingRoundUp, 6.1, 6.5},
		{"roundUp keeps exact halves", models.RoundingRoundUp, 6.5, 6.5},
		{"roundDown snaps down to nearest half", models.RoundingRoundDown, 6.9, 6.5},
		{"roundDown keeps exact halves", models.RoundingRoundDown, 6.5, 6.5},
		{"ceil", models.RoundingCeil, 6.1, 7},
		{"floor", models.RoundingFloor, 6.9, 6},
		{"integer input unchanged", models.RoundingStandard, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Lookup(tt.method)
			require.True(t, ok)
			assert.InDelta(t, tt.want, p.Apply(tt.input), 1e-9)
		})
	}
}
