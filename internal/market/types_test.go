package market

import (
	"testing"
)

func TestApplyPriceNewBucket(t *testing.T) {
	c := &Coin{Symbol: "BTC", Price: 100, Volume: 1440, CirculatingSupply: 10}

	c.ApplyPrice(105, 0, 1.0/1440, 1)
	if len(c.History) != 1 {
		t.Fatalf("expected 1 candle, got %d", len(c.History))
	}
	k := c.History[0]
	if k.Open != 100 || k.Close != 105 || k.High != 105 || k.Low != 100 {
		t.Errorf("bad candle: %+v", k)
	}
	if k.Index != 0 {
		t.Errorf("expected index 0, got %d", k.Index)
	}
	if c.MarketCap != 1050 {
		t.Errorf("expected market cap 1050, got %f", c.MarketCap)
	}
}

func TestApplyPriceMutatesLiveBucket(t *testing.T) {
	c := &Coin{Symbol: "BTC", Price: 100, Volume: 1440}

	c.ApplyPrice(105, 0, 0, 1)
	c.ApplyPrice(95, 5, 0, 2) // still bucket 0
	if len(c.History) != 1 {
		t.Fatalf("expected live candle mutation, got %d candles", len(c.History))
	}
	k := c.History[0]
	if k.High != 105 || k.Low != 95 || k.Close != 95 {
		t.Errorf("bad live candle: %+v", k)
	}

	c.ApplyPrice(96, 15, 0, 3) // bucket 1 opens
	if len(c.History) != 2 {
		t.Fatalf("expected new bucket at minute 15, got %d candles", len(c.History))
	}
	if c.History[1].Open != 95 {
		t.Errorf("new bucket should open at previous close, got %f", c.History[1].Open)
	}
}

func TestApplyPriceFloorsPrice(t *testing.T) {
	c := &Coin{Symbol: "PEPE", Price: 0.001}
	c.ApplyPrice(-5, 0, 0, 1)
	if c.Price != PriceFloor {
		t.Errorf("expected floor %g, got %g", PriceFloor, c.Price)
	}
}

func TestApplyPriceBoundsHistory(t *testing.T) {
	c := &Coin{Symbol: "BTC", Price: 100}
	for i := 0; i <= MaxHistory+10; i++ {
		c.ApplyPrice(100, float64(i*CandleMinutes), 0, int64(i))
	}
	if len(c.History) != MaxHistory {
		t.Errorf("expected history bounded to %d, got %d", MaxHistory, len(c.History))
	}
}

func TestCandleInvariant(t *testing.T) {
	c := &Coin{Symbol: "BTC", Price: 100}
	prices := []float64{101, 99, 103, 97, 100.5}
	for i, p := range prices {
		c.ApplyPrice(p, float64(i), 0, int64(i))
	}
	k := c.History[0]
	if k.Low > k.Open || k.Low > k.Close || k.High < k.Open || k.High < k.Close {
		t.Errorf("low<=open,close<=high violated: %+v", k)
	}
}

func TestResampleCandles(t *testing.T) {
	var history []Candle
	for i := 0; i < 8; i++ {
		f := float64(i)
		history = append(history, Candle{
			Open: 100 + f, High: 110 + f, Low: 90 - f, Close: 101 + f,
			Volume: 10, Index: int64(i),
		})
	}

	bars := ResampleCandles(history, TF1H)
	if len(bars) != 2 {
		t.Fatalf("expected 2 hourly bars from 8 candles, got %d", len(bars))
	}
	b := bars[0]
	if b.Open != 100 {
		t.Errorf("expected open from first candle, got %f", b.Open)
	}
	if b.Close != 104 {
		t.Errorf("expected close from last candle, got %f", b.Close)
	}
	if b.High != 113 || b.Low != 87 {
		t.Errorf("expected high 113 low 87, got %f %f", b.High, b.Low)
	}
	if b.Volume != 40 {
		t.Errorf("expected summed volume 40, got %f", b.Volume)
	}
}

func TestResamplePartialBar(t *testing.T) {
	history := []Candle{{Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 3}}
	bars := ResampleCandles(history, TF1D)
	if len(bars) != 1 {
		t.Fatalf("expected trailing partial bar, got %d", len(bars))
	}
}

func TestMaxLeverageFor(t *testing.T) {
	cases := []struct {
		symbol   string
		notional float64
		want     float64
	}{
		{"BTC", 100_000, 125},
		{"BTC", 900_000, 100},
		{"BTC", 100_000_000, 10},
		{"PEPE", 100_000, 50},
		{"UNKNOWN", 50_000, 50},
		{"UNKNOWN", 1e12, 5},
	}
	for _, tc := range cases {
		if got := MaxLeverageFor(tc.symbol, tc.notional); got != tc.want {
			t.Errorf("MaxLeverageFor(%s, %g) = %g, want %g", tc.symbol, tc.notional, got, tc.want)
		}
	}
}

func TestPhaseCycleOrder(t *testing.T) {
	p := PhaseAccumulation
	want := []Phase{PhaseBullRun, PhaseDistribution, PhaseBearMarket, PhaseAccumulation}
	for _, w := range want {
		p = p.Next()
		if p != w {
			t.Fatalf("expected %v, got %v", w, p)
		}
	}
}

func TestFormatGameTime(t *testing.T) {
	if got := FormatGameTime(0); got != "Day 1 00:00" {
		t.Errorf("got %q", got)
	}
	if got := FormatGameTime(1440 + 125); got != "Day 2 02:05" {
		t.Errorf("got %q", got)
	}
}
