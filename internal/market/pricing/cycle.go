package pricing

import (
	"math/rand"

	"github.com/whalegame/whalegame/internal/market"
)

// Cycle advances the macro phase state machine. Phase order is fixed;
// each entered phase runs for a duration drawn uniformly from its own
// configured day range.
type Cycle struct {
	rng *rand.Rand
}

// NewCycle returns a cycle driver drawing phase durations from rng.
func NewCycle(rng *rand.Rand) *Cycle {
	return &Cycle{rng: rng}
}

// Advance accrues fractional days into the current phase and rolls over
// to the next phase when the configured duration is spent. Returns true
// on a transition, with the phase just entered.
func (c *Cycle) Advance(state *market.MarketState, fractionalDays float64) (bool, market.Phase) {
	state.PhaseDay += fractionalDays
	if state.PhaseDay < state.PhaseTotalDays {
		return false, state.Phase
	}

	next := state.Phase.Next()
	params := market.PhaseParamsFor(next)
	state.Phase = next
	state.PhaseDay = 0
	state.PhaseTotalDays = params.DurationMin + c.rng.Float64()*(params.DurationMax-params.DurationMin)
	return true, next
}
