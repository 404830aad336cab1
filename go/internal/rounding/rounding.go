// Package rounding holds the fixed table of rounding policies applied
// to vote averages. The table is pure and not extensible at runtime.
package rounding

import (
	"math"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

// Policy pairs a display name with its numeric transform.
type Policy struct {
	Name  string
	Apply func(float64) float64
}

var policies = map[models.RoundingMethod]Policy{
	models.RoundingStandard: {
		Name:  "一般的な四捨五入",
		Apply: math.Round,
	},
	models.RoundingBankers: {
		Name:  "銀行型四捨五入",
		Apply: math.RoundToEven,
	},
	models.RoundingRoundUp: {
		Name: "切り上げ型四捨五入",
		Apply: func(v float64) float64 {
			return math.Ceil(v*2) / 2
		},
	},
	models.RoundingRoundDown: {
		Name: "切り捨て型四捨五入",
		Apply: func(v float64) float64 {
			return math.Floor(v*2) / 2
		},
	},
	models.RoundingCeil: {
		Name:  "天井関数",
		Apply: math.Ceil,
	},
	models.RoundingFloor: {
		Name:  "床関数",
		Apply: math.Floor,
	},
}

// Lookup returns the policy for a method identifier. A missing entry is
// a programming error on the caller's side, not a runtime condition.
func Lookup(method models.RoundingMethod) (Policy, bool) {
	p, ok := policies[method]
	return p, ok
}

// Methods returns the method identifiers in a fixed display order.
func Methods() []models.RoundingMethod {
	return []models.RoundingMethod{
		models.RoundingStandard,
		models.RoundingBankers,
		models.RoundingRoundUp,
		models.RoundingRoundDown,
		models.RoundingCeil,
		models.RoundingFloor,
	}
}
