package entity

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/whalegame/whalegame/internal/market"
	"github.com/whalegame/whalegame/internal/news"
)

// PostCooldownMinutes gates how often a single entity can hit the feed.
const PostCooldownMinutes = 240

// SimResult carries everything one behavior pass produced.
type SimResult struct {
	News      []news.Item
	Feed      []news.FeedItem
	VolumeAdd float64 // USD volume injected into BTC by entity trades
}

// Engine simulates institutional and whale behavior on its own cadence.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates a behavior engine using the given RNG.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Simulate runs one behavior pass over the roster. timeFactor is the
// accumulated game minutes since the last pass; nowMinute is total game
// time. Entities are mutated in place (holdings, cooldown stamps).
func (g *Engine) Simulate(entities []*Entity, coins []*market.Coin, timeFactor, nowMinute float64) SimResult {
	var res SimResult

	for _, e := range entities {
		if e.ID == PlayerMirrorID {
			continue
		}
		if e.LastPostMinute > 0 && nowMinute-e.LastPostMinute < PostCooldownMinutes {
			continue
		}

		// passive treasury accrual
		e.BTCHoldings += 0.05 * timeFactor

		if g.rng.Float64() > 0.002*timeFactor {
			continue
		}

		buy := g.rng.Float64() > 0.5
		targetSymbol := "BTC"
		if g.rng.Float64() > 0.7 {
			if g.rng.Float64() > 0.5 {
				targetSymbol = "ETH"
			} else {
				targetSymbol = "SOL"
			}
		}
		target := findBySymbol(coins, targetSymbol)
		if target == nil {
			continue
		}

		amount := math.Floor(e.BTCHoldings * 0.05)
		if amount < 1 {
			continue
		}
		if buy {
			e.BTCHoldings += amount
		} else {
			e.BTCHoldings -= amount
		}

		notional := amount * target.Price
		res.VolumeAdd += notional

		threshold := market.NewsThreshold(targetSymbol)
		if notional <= threshold {
			continue
		}

		action := "Dumped"
		if buy {
			action = "Accumulated"
		}
		desc := fmt.Sprintf("%s %s %.2f %s ($%.1fM)", e.Name, action, amount, targetSymbol, notional/1e6)

		templates := []string{"🚨 HUGE MOVE: " + desc, "🐋 Whale Alert: " + desc}
		handle := "@Institutional"
		if e.Kind == KindWhale {
			handle = "@WhaleAlert"
		}
		res.Feed = append(res.Feed, news.FeedItem{
			Author: e.Name, Handle: handle,
			Content:    templates[g.rng.Intn(len(templates))],
			GameMinute: nowMinute,
			Likes:      2000, Comments: 200,
			Kind: news.FeedWhale,
		})

		if notional > threshold*3 {
			sentiment := news.SentimentBearish
			if buy {
				sentiment = news.SentimentBullish
			}
			res.News = append(res.News, news.Item{
				Title:       e.Name + " Activity",
				Description: desc,
				Impact:      news.ImpactMedium,
				Sentiment:   sentiment,
				GameMinute:  nowMinute,
			})
		}
		e.LastPostMinute = nowMinute
	}

	// whale clash check
	if g.rng.Float64() < 0.05 {
		if btc := findBySymbol(coins, "BTC"); btc != nil && g.whaleConflict(entities) {
			res.News = append(res.News, news.Item{
				Title:       "Whale Clash on BTC",
				Description: "Bull Whales and Bear Whales entered opposite high-leverage positions. Liquidity war detected in the order books.",
				Impact:      news.ImpactHigh,
				Sentiment:   news.SentimentNeutral,
				GameMinute:  nowMinute,
			})
		}
	}

	return res
}

// whaleConflict compares aggregate bullish vs bearish pressure among whales;
// a clash needs both sides above 10 and within 5 of each other.
func (g *Engine) whaleConflict(entities []*Entity) bool {
	var bull, bear float64
	for _, e := range entities {
		if e.Kind != KindWhale {
			continue
		}
		pressure := 2 + g.rng.Float64()*3
		switch e.Sentiment {
		case SentimentBullish:
			bull += pressure
		case SentimentBearish:
			bear += pressure
		}
	}
	return bull > 10 && bear > 10 && math.Abs(bull-bear) < 5
}

func findBySymbol(coins []*market.Coin, symbol string) *market.Coin {
	for _, c := range coins {
		if c.Symbol == symbol {
			return c
		}
	}
	return nil
}
