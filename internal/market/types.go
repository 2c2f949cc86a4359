package market

import "fmt"

// CoinID uniquely identifies a coin.
type CoinID string

// Phase is one state of the macro market cycle.
type Phase uint8

const (
	PhaseAccumulation Phase = iota
	PhaseBullRun
	PhaseDistribution
	PhaseBearMarket
)

func (p Phase) String() string {
	switch p {
	case PhaseAccumulation:
		return "ACCUMULATION"
	case PhaseBullRun:
		return "BULL_RUN"
	case PhaseDistribution:
		return "DISTRIBUTION"
	case PhaseBearMarket:
		return "BEAR_MARKET"
	default:
		return "UNKNOWN"
	}
}

// Next returns the phase that follows p in the fixed forward cycle.
func (p Phase) Next() Phase {
	switch p {
	case PhaseAccumulation:
		return PhaseBullRun
	case PhaseBullRun:
		return PhaseDistribution
	case PhaseDistribution:
		return PhaseBearMarket
	default:
		return PhaseAccumulation
	}
}

// VolatilityTag groups coins into profile families used by the price model.
type VolatilityTag uint8

const (
	TagBTC VolatilityTag = iota
	TagBigAlt
	TagSmallAlt
	TagMeme
)

func (t VolatilityTag) String() string {
	switch t {
	case TagBTC:
		return "BTC"
	case TagBigAlt:
		return "BIG_ALT"
	case TagSmallAlt:
		return "SMALL_ALT"
	case TagMeme:
		return "MEME"
	default:
		return "UNKNOWN"
	}
}

// Candle is one fixed 15-minute OHLCV bucket of a coin's history.
// The bucket is identified by Index = floor(gameMinutes/15); the live
// candle is mutated in place until the index advances.
type Candle struct {
	Time      string // formatted game time label ("Day 3 14:15")
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp int64 // wall-clock unix millis, display sorting only
	Index     int64
}

// MarketState is the process-wide macro state, created once per run.
type MarketState struct {
	Phase           Phase
	PhaseDay        float64 // fractional days elapsed in current phase
	PhaseTotalDays  float64
	GlobalSentiment float64
	VolatilityIndex float64
	GlobalMomentum  float64 // reserved
	// NewsSentimentBias is an additive drift accumulator; it decays
	// geometrically by 0.99 per elapsed game-minute.
	NewsSentimentBias float64
	NextFundingMinute float64
}

// NewMarketState returns the initial macro state.
func NewMarketState() *MarketState {
	return &MarketState{
		Phase:           PhaseAccumulation,
		PhaseTotalDays:  45,
		GlobalSentiment: 40,
		VolatilityIndex: 15,
	}
}

// Coin is a tradeable asset. Price is the authoritative current price;
// everything derived (market cap, change24h) is recomputed on update.
type Coin struct {
	ID                CoinID
	Symbol            string
	Name              string
	Price             float64
	IntrinsicValue    float64
	Change24h         float64 // percent vs oldest retained candle close
	Volume            float64 // 24h USD volume
	MarketCap         float64
	CirculatingSupply float64
	TotalSupply       float64
	History           []Candle

	Volatility      float64
	Trend           float64
	CorrelationBeta float64
	Tag             VolatilityTag

	CurrentFundingRate     float64
	FundingExtremeDuration float64 // hours continuously beyond the extreme limit
}

// CandleMinutes is the base candle bucket size in game minutes.
const CandleMinutes = 15

// MaxHistory bounds the retained candle history per coin.
const MaxHistory = 1000

// PriceFloor is the minimum representable price.
const PriceFloor = 1e-6

// ApplyPrice commits a new price at the given total game time, folding it
// into the live candle or opening a new bucket, and refreshes the derived
// fields. fractionOfDay is the elapsed slice of a day used to pro-rate the
// candle volume; wallMillis stamps new candles for display sorting.
func (c *Coin) ApplyPrice(newPrice float64, totalGameMinutes, fractionOfDay float64, wallMillis int64) {
	if newPrice < PriceFloor {
		newPrice = PriceFloor
	}

	idx := int64(totalGameMinutes) / CandleMinutes
	label := FormatGameTime(totalGameMinutes)

	n := len(c.History)
	if n == 0 || c.History[n-1].Index < idx {
		c.History = append(c.History, Candle{
			Time:      label,
			Open:      c.Price,
			High:      max(c.Price, newPrice),
			Low:       min(c.Price, newPrice),
			Close:     newPrice,
			Volume:    c.Volume * fractionOfDay,
			Timestamp: wallMillis,
			Index:     idx,
		})
	} else {
		last := &c.History[n-1]
		last.Close = newPrice
		last.High = max(last.High, newPrice)
		last.Low = min(last.Low, newPrice)
		last.Volume += c.Volume * fractionOfDay
		last.Time = label
	}
	if len(c.History) > MaxHistory {
		c.History = c.History[len(c.History)-MaxHistory:]
	}

	c.Price = newPrice
	c.MarketCap = newPrice * c.CirculatingSupply
	if oldest := c.History[0].Close; oldest > 0 {
		c.Change24h = (newPrice - oldest) / oldest * 100
	}
}

// FormatGameTime renders a total game-minute count as "Day X HH:MM".
func FormatGameTime(totalMinutes float64) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	d := int(totalMinutes/1440) + 1
	m := int(totalMinutes) % 1440
	return fmt.Sprintf("Day %d %02d:%02d", d, m/60, m%60)
}
