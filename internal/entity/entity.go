package entity

import (
	"fmt"
	"math/rand"
	"sort"
)

// ID uniquely identifies a simulated participant.
type ID string

// Kind classifies simulated market participants.
type Kind uint8

const (
	KindCountry Kind = iota
	KindCompany
	KindWhale
)

func (k Kind) String() string {
	switch k {
	case KindCountry:
		return "COUNTRY"
	case KindCompany:
		return "COMPANY"
	case KindWhale:
		return "WHALE"
	default:
		return "UNKNOWN"
	}
}

// Sentiment is an entity's current directional stance.
type Sentiment uint8

const (
	SentimentHodl Sentiment = iota
	SentimentBullish
	SentimentBearish
)

func (s Sentiment) String() string {
	switch s {
	case SentimentHodl:
		return "HODL"
	case SentimentBullish:
		return "BULLISH"
	case SentimentBearish:
		return "BEARISH"
	default:
		return "UNKNOWN"
	}
}

// Entity is a simulated non-player market participant.
type Entity struct {
	ID        ID
	Name      string
	Kind      Kind
	Sentiment Sentiment

	BTCHoldings float64
	ETHHoldings float64
	SOLHoldings float64

	TradeFrequency      float64
	TradeSizeMultiplier float64
	LastPostMinute      float64 // game minute of last feed post; cooldown gate
}

// PlayerMirrorID marks the synthetic entry mirroring the player's exchange
// balance; the order book excludes it to avoid self-interaction.
const PlayerMirrorID ID = "player-whale"

// Holdings returns the entity's balance in the given symbol. Non-whales
// only expose their BTC treasury to the book.
func (e *Entity) Holdings(symbol string) float64 {
	if e.Kind == KindWhale {
		switch symbol {
		case "BTC":
			return e.BTCHoldings
		case "ETH":
			return e.ETHHoldings
		case "SOL":
			return e.SOLHoldings
		}
		return 0
	}
	if symbol == "BTC" {
		return e.BTCHoldings
	}
	return 0
}

var countryNames = []string{
	"El Salvador Treasury", "Bhutan Sovereign Fund", "UAE Reserve",
	"Singapore GIC Desk", "Norway Oil Fund",
}

var companyNames = []string{
	"MicroStrategy", "Tesla Treasury", "Galaxy Digital",
	"Marathon Digital", "Block Inc", "Metaplanet",
}

var whalePrefixes = []string{
	"Mr. 100", "Plankton Capital", "Dormant Satoshi-Era Wallet",
	"The Leviathan", "0xAbyss", "Kraken Cold 7",
}

// GenerateRoster builds the fixed launch roster, sorted by BTC holdings
// descending.
func GenerateRoster(rng *rand.Rand) []*Entity {
	var out []*Entity
	for i, name := range countryNames {
		out = append(out, &Entity{
			ID: ID(fmt.Sprintf("country-%d", i)), Name: name, Kind: KindCountry,
			BTCHoldings: 10000 + float64(rng.Intn(50000)),
			Sentiment:   SentimentBullish, TradeFrequency: 0.1, TradeSizeMultiplier: 1,
		})
	}
	for i, name := range companyNames {
		out = append(out, &Entity{
			ID: ID(fmt.Sprintf("company-%d", i)), Name: name, Kind: KindCompany,
			BTCHoldings: 5000 + float64(rng.Intn(150000)),
			ETHHoldings: 10000, SOLHoldings: 50000,
			Sentiment: SentimentHodl, TradeFrequency: 0.05, TradeSizeMultiplier: 1,
		})
	}
	for i := 0; i < 10; i++ {
		s := SentimentBullish
		if rng.Float64() > 0.5 {
			s = SentimentBearish
		}
		out = append(out, &Entity{
			ID:   ID(fmt.Sprintf("whale-%d", i)),
			Name: whalePrefixes[i%len(whalePrefixes)], Kind: KindWhale,
			BTCHoldings: 1000 + float64(rng.Intn(10000)),
			ETHHoldings: 5000, SOLHoldings: 100000,
			Sentiment: s, TradeFrequency: 0.2, TradeSizeMultiplier: 2,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BTCHoldings > out[j].BTCHoldings })
	return out
}

// ColdWalletBalance is the slice of player state the mirror derivation needs.
type ColdWalletBalance struct {
	ID   string
	Name string
	BTC  float64
	ETH  float64
	SOL  float64
}

// WhaleThresholdBTC is the exchange balance above which the player shows up
// on whale trackers.
const WhaleThresholdBTC = 1000

// DeriveMirrors is a pure derivation of the synthetic entities mirroring the
// player's own large holdings. It is recomputed from player state on demand,
// never incrementally mutated.
func DeriveMirrors(playerName string, exchangeBTC float64, wallets []ColdWalletBalance) []*Entity {
	var out []*Entity
	for _, w := range wallets {
		out = append(out, &Entity{
			ID:   ID("cold-" + w.ID),
			Name: w.Name + " (You)", Kind: KindWhale,
			BTCHoldings: w.BTC, ETHHoldings: w.ETH, SOLHoldings: w.SOL,
			Sentiment: SentimentHodl,
		})
	}
	if exchangeBTC > WhaleThresholdBTC {
		out = append(out, &Entity{
			ID:   PlayerMirrorID,
			Name: playerName + " (Exchange)", Kind: KindWhale,
			BTCHoldings: exchangeBTC,
			Sentiment:   SentimentBullish, TradeSizeMultiplier: 1,
		})
	}
	return out
}
