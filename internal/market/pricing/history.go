package pricing

import (
	"math/rand"
	"time"

	"github.com/whalegame/whalegame/internal/market"
)

// GenerateHistory seeds each coin with a backfilled random walk of the
// given number of 15-minute candles so charts and 24h stats have data
// from the first frame. Prices end near their configured launch values;
// the walk is a shared small-drift move each coin follows through its
// beta plus its own jitter.
func GenerateHistory(coins []*market.Coin, periods int, rng *rand.Rand) {
	now := time.Now().UnixMilli()
	for i := 0; i < periods; i++ {
		sharedChange := (rng.Float64() - 0.5) * 0.005
		label := market.FormatGameTime(float64(i * market.CandleMinutes))

		for _, c := range coins {
			change := sharedChange*c.CorrelationBeta + (rng.Float64()-0.5)*0.002
			price := c.Price * (1 + change)
			if price < market.PriceFloor {
				price = market.PriceFloor
			}
			c.Price = price
			c.History = append(c.History, market.Candle{
				Time:      label,
				Open:      price,
				High:      price * 1.002,
				Low:       price * 0.998,
				Close:     price,
				Volume:    rng.Float64() * 200000,
				Timestamp: now - int64(periods-i)*15*60*1000,
				// Backfilled buckets index below zero so the first
				// live tick opens a fresh candle at index 0.
				Index: int64(i - periods),
			})
		}
	}
	for _, c := range coins {
		c.MarketCap = c.Price * c.CirculatingSupply
	}
}
