// Package pricing drives the stochastic price process: a correlated
// geometric random walk parameterized by the macro phase, plus the cycle
// state machine and launch-history seeding.
package pricing

import (
	"math"
	"math/rand"

	"github.com/whalegame/whalegame/internal/market"
)

// HuntDirection is the side a liquidation hunt pushes price toward.
type HuntDirection uint8

const (
	HuntDown HuntDirection = iota
	HuntUp
)

// HuntTarget aims one tick's price kick at a single coin.
type HuntTarget struct {
	Symbol    string
	Direction HuntDirection
}

// sentimentDecay is the per-game-minute geometric decay of the news bias.
const sentimentDecay = 0.99

// huntKickPer15Min is the log-return magnitude of a hunt kick over one
// candle interval.
const huntKickPer15Min = 0.10

// Model advances coin prices. All randomness flows through the injected
// rng so runs are reproducible under a fixed seed.
type Model struct {
	rng *rand.Rand
}

// NewModel returns a price model drawing from rng.
func NewModel(rng *rand.Rand) *Model {
	return &Model{rng: rng}
}

// Step advances every coin by deltaMinutes of game time. BTC draws one
// phase-conditioned return; every coin follows it through its beta plus
// idiosyncratic noise, scaled down to keep correlation dominant. The
// news sentiment bias decays first and shifts the drawn mean; a hunt
// target takes an extra directional kick proportional to elapsed time.
func (m *Model) Step(coins []*market.Coin, state *market.MarketState, totalGameMinutes, deltaMinutes float64, hunt *HuntTarget, wallMillis int64) {
	fraction := deltaMinutes / 1440
	params := market.PhaseParamsFor(state.Phase)

	state.NewsSentimentBias *= math.Pow(sentimentDecay, deltaMinutes)
	adjustedMean := params.Mean + state.NewsSentimentBias

	sigma := params.Sigma * math.Sqrt(fraction)
	btcReturn := m.rng.NormFloat64()*sigma + adjustedMean*fraction

	for _, coin := range coins {
		profile := market.ProfileFor(coin)
		betaMove := btcReturn * profile.Beta
		noise := m.rng.NormFloat64() * (sigma * profile.Beta * 0.5)
		totalReturn := betaMove + noise

		if hunt != nil && hunt.Symbol == coin.Symbol {
			kick := huntKickPer15Min * (deltaMinutes / market.CandleMinutes)
			if hunt.Direction == HuntDown {
				kick = -kick
			}
			totalReturn += kick
		}

		newPrice := coin.Price * math.Exp(totalReturn)
		coin.ApplyPrice(newPrice, totalGameMinutes, fraction, wallMillis)
	}
}
