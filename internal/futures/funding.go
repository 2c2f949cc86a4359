package futures

import (
	"math"
	"math/rand"

	"github.com/whalegame/whalegame/internal/market"
)

// UpdateFundingRates mutates each coin's funding rate for one 8-hour
// funding window. The rate drifts with the 24h trend and the macro phase,
// picks up uniform jitter, clamps hard at the global limit and softly
// reverts once it runs past 1.5× the coin's extreme threshold.
// FundingExtremeDuration tracks consecutive hours spent over the
// threshold; it is a warning signal, nothing here enforces it.
func UpdateFundingRates(coins []*market.Coin, phase market.Phase, rng *rand.Rand) {
	for _, c := range coins {
		limit := market.FundingExtremeLimit(c.Symbol)

		trendBias := 0.0
		if c.Change24h > 5 {
			trendBias = 0.0001
		} else if c.Change24h < -5 {
			trendBias = -0.0001
		}
		if phase == market.PhaseBullRun {
			trendBias += 0.00005
		}
		if phase == market.PhaseBearMarket {
			trendBias -= 0.00005
		}

		rate := c.CurrentFundingRate + trendBias + (rng.Float64()-0.5)*0.0001
		rate = math.Max(-market.FundingRateClamp, math.Min(market.FundingRateClamp, rate))
		if math.Abs(rate) > limit*1.5 {
			rate *= 0.9
		}

		c.CurrentFundingRate = rate
		if math.Abs(rate) > limit {
			c.FundingExtremeDuration += market.FundingIntervalHours
		} else {
			c.FundingExtremeDuration = 0
		}
	}
}

// SettleFunding charges one funding payment, fee = size × rate, against
// every open position. LONG pays a positive rate and SHORT receives it;
// each position's FundingFees accumulates the LONG-signed amount either
// way. Returns the net change to apply to the cash balance.
func (b *Book) SettleFunding(coins []*market.Coin) float64 {
	bySymbol := make(map[string]*market.Coin, len(coins))
	for _, c := range coins {
		bySymbol[c.Symbol] = c
	}

	cashDelta := 0.0
	for _, pos := range b.positions {
		coin := bySymbol[pos.Symbol]
		if coin == nil {
			continue
		}
		fee := pos.Size * coin.CurrentFundingRate
		signed := fee
		if pos.Direction == Short {
			signed = -fee
		}
		cashDelta -= signed
		pos.FundingFees += signed
	}
	return cashDelta
}
