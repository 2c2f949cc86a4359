package orderbook

import (
	"math"
	"math/rand"

	"github.com/whalegame/whalegame/internal/entity"
	"github.com/whalegame/whalegame/internal/market"
)

// impactCushion halves the raw last-fill deviation before it moves the
// market price: the player pays the full book-walk price, but a single
// trade only partially reprices the asset.
const impactCushion = 0.5

// tailPenalty prices the synthetic fill used when an order exhausts all
// listed depth, bounding worst-case slippage.
const tailPenalty = 0.1

// Executor runs market orders against freshly generated synthetic books.
type Executor struct {
	rng *rand.Rand
}

// NewExecutor creates an Executor drawing book jitter from rng.
func NewExecutor(rng *rand.Rand) *Executor {
	return &Executor{rng: rng}
}

// Execute fills a market order of size coin units against a fresh
// synthetic book. The walk consumes levels best price first; any size
// beyond the listed depth fills at a penalized tail price. The result's
// FilledSize always equals the request.
//
// Execution is intentionally non-deterministic across calls (the book
// jitter is re-rolled); only bounds should be asserted on its output.
func (x *Executor) Execute(coin *market.Coin, side Side, size float64, entities []*entity.Entity) ExecutionResult {
	book := generate(coin, x.rng)
	injectEntityOrders(book, coin, entities)

	levels := book.Asks
	if side == SideSell {
		levels = book.Bids
	}

	mid := coin.Price
	remaining := size
	totalCost := 0.0
	finalPrice := mid
	var filled []Level

	for _, level := range levels {
		if remaining <= 0 {
			break
		}
		take := math.Min(remaining, level.Size)
		totalCost += take * level.Price
		remaining -= take
		finalPrice = level.Price
		filled = append(filled, Level{Price: level.Price, Size: take, Source: level.Source})
	}
	if remaining > 0 {
		penalty := 1 + tailPenalty
		if side == SideSell {
			penalty = 1 - tailPenalty
		}
		finalPrice *= penalty
		totalCost += remaining * finalPrice
		filled = append(filled, Level{Price: finalPrice, Size: remaining, Source: SourceMarketMaker})
	}

	vwap := totalCost / size
	rawImpact := math.Abs((finalPrice - mid) / mid)
	cushioned := rawImpact * impactCushion

	impact := cushioned
	newPrice := mid * (1 + cushioned)
	if side == SideSell {
		impact = -cushioned
		newPrice = mid * (1 - cushioned)
	}

	return ExecutionResult{
		VWAPPrice:    vwap,
		FinalPrice:   newPrice,
		FilledSize:   size,
		SlippagePct:  math.Abs((vwap-mid)/mid) * 100,
		Impact:       impact,
		FilledLevels: filled,
	}
}

// EstimateImpact is the closed-form impact approximation used when only an
// estimate is needed (futures entry previews, the immediate shift applied
// when a leveraged position opens). It is deterministic in its inputs:
// impact = 0.004 * min(orderUSD/(volume*liqFactor*0.01), 20)^0.8.
// Zero or negative volume is guarded with a fixed minimum divisor.
func EstimateImpact(symbol string, orderValueUSD, marketVolume24h float64) float64 {
	if orderValueUSD <= 0 {
		return 0
	}
	liquidityFactor := market.LiquidityImpactFactor(symbol)
	denom := marketVolume24h * liquidityFactor * 0.01
	if denom <= 0 {
		denom = 1 // zero-volume guard: treat the book as minimally liquid
	}
	ratio := math.Min(orderValueUSD/denom, 20)
	return 0.004 * math.Pow(ratio, 0.8)
}
