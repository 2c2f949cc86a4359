package futures

import (
	"math"

	"github.com/whalegame/whalegame/internal/market"
)

// HuntThreshold is the hazard score above which the market starts
// hunting the account's riskiest position.
const HuntThreshold = 1.8

// HazardScore rates how exposed the account is to a liquidation hunt.
// It is the max over open positions of
// effectiveLeverage×1.3 + leverage/10 + distanceFactor×1.2, where
// effective leverage is notional over total account equity and the
// distance factor approaches 1 as price nears the liquidation price.
// A non-positive equity scores a flat 5.
func (b *Book) HazardScore(cash float64, coins []*market.Coin) float64 {
	if len(b.positions) == 0 {
		return 0
	}

	equity := cash
	for _, p := range b.positions {
		equity += p.Margin + p.PnL
	}
	if equity <= 0 {
		return 5
	}

	bySymbol := make(map[string]*market.Coin, len(coins))
	for _, c := range coins {
		bySymbol[c.Symbol] = c
	}

	maxScore := 0.0
	for _, p := range b.positions {
		coin := bySymbol[p.Symbol]
		if coin == nil {
			continue
		}
		effectiveLeverage := p.Size / equity
		distPct := math.Abs(coin.Price-p.LiquidationPrice) / coin.Price
		distFactor := math.Max(0, 1-distPct)

		score := effectiveLeverage*1.3 + p.Leverage/10 + distFactor*1.2
		maxScore = math.Max(maxScore, score)
	}
	return maxScore
}

// HuntChance converts a hazard score into a per-tick trigger probability
// for the elapsed game minutes.
func HuntChance(score, deltaMinutes float64) float64 {
	if score <= HuntThreshold {
		return 0
	}
	return (0.18 + score/100) * deltaMinutes / 10000
}

// RiskiestPosition returns the open position with the largest
// size×leverage, the hunt's preferred target, or nil when flat.
func (b *Book) RiskiestPosition() *Position {
	var riskiest *Position
	for _, p := range b.positions {
		if riskiest == nil || p.Size*p.Leverage > riskiest.Size*riskiest.Leverage {
			riskiest = p
		}
	}
	return riskiest
}
