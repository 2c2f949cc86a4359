package analysis

import (
	"testing"

	"github.com/whalegame/whalegame/internal/market"
)

func coinWithCloses(closes []float64) *market.Coin {
	c := &market.Coin{Symbol: "BTC", Price: closes[len(closes)-1], Trend: 1}
	for i, cl := range closes {
		c.History = append(c.History, market.Candle{
			Open: cl, High: cl, Low: cl, Close: cl, Index: int64(i),
		})
	}
	return c
}

func TestAnalyzeThinHistoryDefaults(t *testing.T) {
	rep := Analyze(coinWithCloses([]float64{100, 101, 102}))
	if rep.RSI != 50 {
		t.Errorf("thin history should default RSI to 50, got %f", rep.RSI)
	}
	if rep.MACD.Line != 0 || rep.MACD.Histogram != 0 {
		t.Errorf("thin history should zero the MACD, got %+v", rep.MACD)
	}
	if rep.Signal != Neutral {
		t.Errorf("RSI 50 must read NEUTRAL, got %s", rep.Signal)
	}
}

func TestAnalyzeRisingSeriesReadsOverbought(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}
	rep := Analyze(coinWithCloses(closes))
	if rep.RSI < 70 {
		t.Fatalf("monotone rise should push RSI into overbought, got %f", rep.RSI)
	}
	if rep.Signal != StrongSell {
		t.Errorf("overbought must read STRONG_SELL, got %s", rep.Signal)
	}
	if rep.MACD.Line <= 0 {
		t.Errorf("uptrend should carry a positive MACD line, got %f", rep.MACD.Line)
	}
}

func TestAnalyzeFallingSeriesReadsOversold(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 300 - float64(i)*2
	}
	rep := Analyze(coinWithCloses(closes))
	if rep.RSI > 30 {
		t.Fatalf("monotone fall should push RSI into oversold, got %f", rep.RSI)
	}
	if rep.Signal != StrongBuy {
		t.Errorf("oversold must read STRONG_BUY, got %s", rep.Signal)
	}
}

func TestFearGreedClamps(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}
	coin := coinWithCloses(closes)
	coin.Trend = 1
	rep := Analyze(coin)
	if rep.FearGreed > 100 || rep.FearGreed < 0 {
		t.Fatalf("fear/greed must clamp to [0,100], got %f", rep.FearGreed)
	}
}

func TestDetectLevelsClustersAndRanks(t *testing.T) {
	// Oscillate between two prices: both extremes become heavily touched
	// pivot levels.
	var closes []float64
	for i := 0; i < 40; i++ {
		if i%2 == 0 {
			closes = append(closes, 100)
		} else {
			closes = append(closes, 110)
		}
	}
	rep := Analyze(coinWithCloses(closes))
	if len(rep.Levels) == 0 {
		t.Fatal("oscillating series must surface levels")
	}
	if len(rep.Levels) > 5 {
		t.Fatalf("at most 5 levels, got %d", len(rep.Levels))
	}
	for i := 1; i < len(rep.Levels); i++ {
		if rep.Levels[i].Strength > rep.Levels[i-1].Strength {
			t.Fatal("levels must sort strongest first")
		}
	}
	if rep.Levels[0].Touches < 2 {
		t.Errorf("repeated pivots should merge into touches, got %d", rep.Levels[0].Touches)
	}
}
