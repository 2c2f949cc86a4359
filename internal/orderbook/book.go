package orderbook

import (
	"math"
	"math/rand"
	"sort"

	"github.com/whalegame/whalegame/internal/entity"
	"github.com/whalegame/whalegame/internal/market"
)

const (
	bookLevels   = 50
	levelStepPct = 0.0005 // 0.05% spacing between levels
)

// whaleOrderStyle shapes how an entity kind layers resting orders.
type whaleOrderStyle struct {
	layers int
	spread float64
}

func styleFor(k entity.Kind) whaleOrderStyle {
	switch k {
	case entity.KindCountry:
		return whaleOrderStyle{layers: 5, spread: 0.02}
	case entity.KindCompany:
		return whaleOrderStyle{layers: 3, spread: 0.05}
	default:
		return whaleOrderStyle{layers: 2, spread: 0.08}
	}
}

// generate builds the market-maker depth curve around the current price:
// 50 levels per side at 0.05% spacing, USD depth decaying exponentially
// with distance in bps, with ±20% jitter re-rolled on every call.
func generate(coin *market.Coin, rng *rand.Rand) *Book {
	profile := market.LiquidityProfileFor(coin.Symbol)
	mid := coin.Price

	book := &Book{
		Bids: make([]Level, 0, bookLevels),
		Asks: make([]Level, 0, bookLevels),
	}
	for i := 1; i <= bookLevels; i++ {
		distancePct := float64(i) * levelStepPct
		bps := distancePct * 10000
		depthUSD := profile.BaseDepth * math.Exp(-profile.DecayFactor*(bps/100))
		noisyDepth := depthUSD * (0.8 + rng.Float64()*0.4)

		bidPrice := mid * (1 - distancePct)
		askPrice := mid * (1 + distancePct)
		book.Bids = append(book.Bids, Level{Price: bidPrice, Size: noisyDepth / bidPrice, Source: SourceMarketMaker})
		book.Asks = append(book.Asks, Level{Price: askPrice, Size: noisyDepth / askPrice, Source: SourceMarketMaker})
	}
	return book
}

// injectEntityOrders layers each directional entity's resting orders into
// the book: 10% of its holdings in this coin spread across the kind's
// layer count. Bullish entities add bid depth, bearish add ask depth; the
// player's mirrored exchange whale is excluded. Levels are re-sorted
// best-to-worst afterwards.
func injectEntityOrders(book *Book, coin *market.Coin, entities []*entity.Entity) {
	for _, e := range entities {
		if e.ID == entity.PlayerMirrorID {
			continue
		}
		holdings := e.Holdings(coin.Symbol)
		if holdings <= 0 {
			continue
		}
		style := styleFor(e.Kind)

		switch e.Sentiment {
		case entity.SentimentBullish:
			totalBuyPower := holdings * 0.10
			layerSize := totalBuyPower / float64(style.layers)
			for i := 1; i <= style.layers; i++ {
				price := coin.Price * (1 - style.spread*float64(i))
				book.Bids = append(book.Bids, Level{
					Price:  price,
					Size:   layerSize * (coin.Price / price),
					Source: SourceWhale,
				})
			}
		case entity.SentimentBearish:
			totalSellSize := holdings * 0.10
			layerSize := totalSellSize / float64(style.layers)
			for i := 1; i <= style.layers; i++ {
				price := coin.Price * (1 + style.spread*float64(i))
				book.Asks = append(book.Asks, Level{Price: price, Size: layerSize, Source: SourceWhale})
			}
		}
	}
	sort.Slice(book.Bids, func(i, j int) bool { return book.Bids[i].Price > book.Bids[j].Price })
	sort.Slice(book.Asks, func(i, j int) bool { return book.Asks[i].Price < book.Asks[j].Price })
}
