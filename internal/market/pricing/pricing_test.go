package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/whalegame/whalegame/internal/market"
)

func TestStepMovesEveryCoin(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := NewModel(rng)
	coins := market.LaunchCoins()
	state := market.NewMarketState()

	before := make(map[string]float64)
	for _, c := range coins {
		before[c.Symbol] = c.Price
	}

	m.Step(coins, state, 15, 15, nil, 0)

	for _, c := range coins {
		if c.Price == before[c.Symbol] {
			t.Errorf("%s price did not move", c.Symbol)
		}
		if c.Price < market.PriceFloor {
			t.Errorf("%s price broke the floor: %g", c.Symbol, c.Price)
		}
		if len(c.History) == 0 {
			t.Errorf("%s step must fold into a candle", c.Symbol)
		}
	}
}

func TestStepSentimentBiasDecays(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	m := NewModel(rng)
	coins := market.LaunchCoins()
	state := market.NewMarketState()
	state.NewsSentimentBias = 0.08

	m.Step(coins, state, 15, 15, nil, 0)
	want := 0.08 * math.Pow(0.99, 15)
	if math.Abs(state.NewsSentimentBias-want) > 1e-12 {
		t.Errorf("bias should decay to %g, got %g", want, state.NewsSentimentBias)
	}
}

func TestStepBullDriftOverManyTicks(t *testing.T) {
	// Drift is tiny per tick; integrate a long stretch of BULL_RUN and
	// check BTC ends materially higher on average across seeds.
	up := 0
	const seeds = 20
	for seed := int64(0); seed < seeds; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m := NewModel(rng)
		coins := market.LaunchCoins()
		state := market.NewMarketState()
		state.Phase = market.PhaseBullRun

		start := coins[0].Price
		for i := 0; i < 96*90; i++ { // 90 days of 15-minute ticks
			m.Step(coins, state, float64(i*15), 15, nil, 0)
		}
		if coins[0].Price > start {
			up++
		}
	}
	if up < seeds*3/4 {
		t.Errorf("bull phase should trend up in most runs, got %d/%d", up, seeds)
	}
}

func TestStepHuntKick(t *testing.T) {
	// A hunt kick of -0.10 per 15 minutes dwarfs normal vol; the
	// hunted coin must drop while the others stay in a normal band.
	rng := rand.New(rand.NewSource(3))
	m := NewModel(rng)
	coins := market.LaunchCoins()
	state := market.NewMarketState()

	start := coins[0].Price
	m.Step(coins, state, 15, 15, &HuntTarget{Symbol: "BTC", Direction: HuntDown}, 0)
	drop := math.Log(coins[0].Price / start)
	if drop > -0.05 {
		t.Errorf("hunted coin should take a hard kick, log-return %f", drop)
	}
}

func TestCycleAdvances(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	c := NewCycle(rng)
	state := market.NewMarketState()
	state.PhaseTotalDays = 10

	transitioned, phase := c.Advance(state, 5)
	if transitioned {
		t.Fatal("5 of 10 days must not transition")
	}
	if phase != market.PhaseAccumulation {
		t.Fatalf("unexpected phase %s", phase)
	}

	transitioned, phase = c.Advance(state, 5)
	if !transitioned || phase != market.PhaseBullRun {
		t.Fatalf("expected transition into BULL_RUN, got %v %s", transitioned, phase)
	}
	if state.PhaseDay != 0 {
		t.Error("transition must reset phase day")
	}
	params := market.PhaseParamsFor(market.PhaseBullRun)
	if state.PhaseTotalDays < params.DurationMin || state.PhaseTotalDays > params.DurationMax {
		t.Errorf("drawn duration %f outside [%f,%f]", state.PhaseTotalDays, params.DurationMin, params.DurationMax)
	}
}

func TestCycleFullLoop(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c := NewCycle(rng)
	state := market.NewMarketState()

	want := []market.Phase{market.PhaseBullRun, market.PhaseDistribution, market.PhaseBearMarket, market.PhaseAccumulation}
	for _, expected := range want {
		_, phase := c.Advance(state, state.PhaseTotalDays)
		if phase != expected {
			t.Fatalf("cycle order broken: got %s, want %s", phase, expected)
		}
	}
}

func TestGenerateHistorySeedsCharts(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	coins := market.LaunchCoins()
	GenerateHistory(coins, 100, rng)

	for _, c := range coins {
		if len(c.History) != 100 {
			t.Fatalf("%s expected 100 candles, got %d", c.Symbol, len(c.History))
		}
		if last := c.History[len(c.History)-1].Index; last != -1 {
			t.Errorf("%s last backfilled index should be -1, got %d", c.Symbol, last)
		}
		if c.MarketCap <= 0 {
			t.Errorf("%s market cap not refreshed", c.Symbol)
		}
	}

	// The first live tick must open a new candle, not mutate backfill.
	btc := coins[0]
	n := len(btc.History)
	btc.ApplyPrice(btc.Price*1.01, 0, 15.0/1440, 0)
	if len(btc.History) != n+1 {
		t.Error("live tick should append a fresh candle after backfill")
	}
}
