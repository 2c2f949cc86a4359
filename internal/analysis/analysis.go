// Package analysis derives technical indicators from candle history.
// Everything here is a pure read: no coin state is mutated.
package analysis

import (
	"math"
	"sort"

	"github.com/markcheno/go-talib"

	"github.com/whalegame/whalegame/internal/market"
)

// Signal is the trading stance suggested by the indicator set.
type Signal uint8

const (
	StrongBuy Signal = iota
	Buy
	Neutral
	Sell
	StrongSell
)

func (s Signal) String() string {
	switch s {
	case StrongBuy:
		return "STRONG_BUY"
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case StrongSell:
		return "STRONG_SELL"
	default:
		return "NEUTRAL"
	}
}

// MACD holds one MACD(12,26,9) reading.
type MACD struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// LevelKind distinguishes support from resistance.
type LevelKind uint8

const (
	Support LevelKind = iota
	Resistance
)

func (k LevelKind) String() string {
	if k == Resistance {
		return "RESISTANCE"
	}
	return "SUPPORT"
}

// SRLevel is one clustered pivot level. Strength grows with each pivot
// that lands within 2% of the level, capped at 1.
type SRLevel struct {
	Price    float64
	Kind     LevelKind
	Strength float64
	Touches  int
}

// Report is the full indicator readout for one coin.
type Report struct {
	RSI       float64
	MACD      MACD
	FearGreed float64
	Signal    Signal
	Levels    []SRLevel
}

const (
	rsiPeriod  = 14
	lookback   = 50
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
)

// Analyze computes the indicator report over the coin's recent history.
// Thin histories degrade gracefully: RSI defaults to 50 and the MACD
// reads zero until enough candles accumulate.
func Analyze(coin *market.Coin) Report {
	history := coin.History
	if len(history) > lookback {
		history = history[len(history)-lookback:]
	}

	closes := make([]float64, len(history))
	for i, c := range history {
		closes[i] = c.Close
	}

	rsi := 50.0
	if len(closes) > rsiPeriod {
		series := talib.Rsi(closes, rsiPeriod)
		rsi = series[len(series)-1]
	}

	var macd MACD
	if len(closes) > macdSlow+macdSignal {
		line, sig, hist := talib.Macd(closes, macdFast, macdSlow, macdSignal)
		macd = MACD{
			Line:      line[len(line)-1],
			Signal:    sig[len(sig)-1],
			Histogram: hist[len(hist)-1],
		}
	}

	fearGreed := rsi - 20
	if coin.Trend > 0 {
		fearGreed = rsi + 20
	}
	fearGreed = math.Max(0, math.Min(100, fearGreed))

	return Report{
		RSI:       rsi,
		MACD:      macd,
		FearGreed: fearGreed,
		Signal:    signalFor(rsi),
		Levels:    detectLevels(history, coin.Price),
	}
}

func signalFor(rsi float64) Signal {
	switch {
	case rsi < 30:
		return StrongBuy
	case rsi < 45:
		return Buy
	case rsi > 70:
		return StrongSell
	case rsi > 55:
		return Sell
	default:
		return Neutral
	}
}

// detectLevels finds local close extremes and clusters them into at most
// five levels, strongest first.
func detectLevels(history []market.Candle, currentPrice float64) []SRLevel {
	var pivots []float64
	for i := 2; i < len(history)-2; i++ {
		prev, curr, next := history[i-1].Close, history[i].Close, history[i+1].Close
		if curr > prev && curr > next {
			pivots = append(pivots, curr)
		}
		if curr < prev && curr < next {
			pivots = append(pivots, curr)
		}
	}

	var levels []SRLevel
	for _, p := range pivots {
		merged := false
		for i := range levels {
			if math.Abs(levels[i].Price-p)/p < 0.02 {
				levels[i].Touches++
				levels[i].Strength = math.Min(1, levels[i].Strength+0.1)
				merged = true
				break
			}
		}
		if !merged {
			kind := Support
			if p > currentPrice {
				kind = Resistance
			}
			levels = append(levels, SRLevel{Price: p, Kind: kind, Strength: 0.2, Touches: 1})
		}
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].Strength > levels[j].Strength })
	if len(levels) > 5 {
		levels = levels[:5]
	}
	return levels
}
