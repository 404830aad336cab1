package game

import (
	"github.com/mkobayashi/planning-poker/go/internal/models"
	"github.com/mkobayashi/planning-poker/go/internal/rounding"
)

// Average computes the arithmetic mean of the numeric votes and applies
// the given rounding policy. Players who have not voted and "?" cards
// are excluded. Zero numeric votes yield 0.
func Average(players []models.Player, method models.RoundingMethod) float64 {
	sum := 0
	count := 0
	for _, p := range players {
		if p.Vote == nil || p.Vote.Unknown {
			continue
		}
		sum += p.Vote.Points
		count++
	}

	if count == 0 {
		return 0
	}

	policy, ok := rounding.Lookup(method)
	if !ok {
		// Fixed table, unknown identifiers are a bug in the caller.
		panic("unknown rounding method: " + string(method))
	}
	return policy.Apply(float64(sum) / float64(count))
}

// Average applies the aggregator to the current roster and policy.
func (a *App) Average() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Average(a.players, a.roundingMethod)
}
