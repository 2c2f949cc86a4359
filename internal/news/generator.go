package news

import (
	"math/rand"

	"github.com/whalegame/whalegame/internal/market"
)

type poolEntry struct {
	title  string
	impact Impact
}

// instantPool is the template pool for spontaneous daily headlines.
var instantPool = []poolEntry{
	{"Major Exchange Hack", ImpactMedium},
	{"Whale Wallet Movement (Inflow)", ImpactLow},
	{"Whale Wallet Movement (Outflow)", ImpactLow},
	{"Tech Upgrade in Ethereum", ImpactMedium},
	{"Country X Adopts Bitcoin", ImpactHigh},
	{"Meme Coin Trend Viral", ImpactLow},
	{"Regulatory Crackdown Rumors", ImpactMedium},
	{"Stablecoin Depeg Scare", ImpactHigh},
	{"New Institutional ETF Approved", ImpactHigh},
}

// GenerateRandom rolls for a spontaneous headline; nil on the 95% of calls
// where nothing happens. Sentiment distribution leans with the macro phase:
// bearish phases produce bearish news 60% of the time and vice versa.
func GenerateRandom(rng *rand.Rand, phase market.Phase, gameMinute float64) *Item {
	if rng.Float64() > 0.05 {
		return nil
	}
	tpl := instantPool[rng.Intn(len(instantPool))]

	roll := rng.Float64()
	var sentiment Sentiment
	if phase == market.PhaseBearMarket || phase == market.PhaseDistribution {
		switch {
		case roll < 0.6:
			sentiment = SentimentBearish
		case roll < 0.9:
			sentiment = SentimentBullish
		default:
			sentiment = SentimentNeutral
		}
	} else {
		switch {
		case roll < 0.6:
			sentiment = SentimentBullish
		case roll < 0.9:
			sentiment = SentimentBearish
		default:
			sentiment = SentimentNeutral
		}
	}

	return &Item{
		Title:       tpl.title,
		Description: tpl.title,
		Impact:      tpl.impact,
		Sentiment:   sentiment,
		GameMinute:  gameMinute,
	}
}
