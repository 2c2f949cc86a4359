package news

import (
	"math/rand"
	"testing"

	"github.com/whalegame/whalegame/internal/market"
)

func TestImpactValue(t *testing.T) {
	cases := []struct {
		impact    Impact
		sentiment Sentiment
		want      float64
	}{
		{ImpactHigh, SentimentBullish, 0.08},
		{ImpactMedium, SentimentBullish, 0.04},
		{ImpactLow, SentimentBullish, 0.01},
		{ImpactHigh, SentimentBearish, -0.08},
		{ImpactMedium, SentimentNeutral, 0},
	}
	for _, tc := range cases {
		if got := ImpactValue(tc.impact, tc.sentiment); got != tc.want {
			t.Errorf("ImpactValue(%v, %v) = %g, want %g", tc.impact, tc.sentiment, got, tc.want)
		}
	}
}

func TestGenerateRandomRate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hits := 0
	for i := 0; i < 10000; i++ {
		if item := GenerateRandom(rng, market.PhaseAccumulation, 0); item != nil {
			hits++
			if item.Title == "" {
				t.Fatal("generated item missing title")
			}
		}
	}
	// 5% roll; allow generous slack
	if hits < 300 || hits > 700 {
		t.Errorf("expected roughly 500 hits in 10000 rolls, got %d", hits)
	}
}

func TestGenerateRandomPhaseLean(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	var bear, bull int
	for i := 0; i < 20000; i++ {
		if item := GenerateRandom(rng, market.PhaseBearMarket, 0); item != nil {
			switch item.Sentiment {
			case SentimentBearish:
				bear++
			case SentimentBullish:
				bull++
			}
		}
	}
	if bear <= bull {
		t.Errorf("bear-market news should lean bearish, got bear=%d bull=%d", bear, bull)
	}
}
