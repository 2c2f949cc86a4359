package game

import (
	"time"

	newsservice "github.com/whalegame/whalegame/internal/news/service"
)

// Config holds configuration for the game.
type Config struct {
	// Seed feeds every RNG in the simulation; a fixed seed reproduces a run.
	Seed int64
	// PlayerName labels the account and its whale mirrors.
	PlayerName string
	// StartingCash is the exchange wallet opening balance.
	StartingCash float64
	// StartingBank is the bank opening balance.
	StartingBank float64
	// HistoryCandles is how many 15-minute candles to backfill at launch.
	HistoryCandles int
	// SpeedLevel is the initial speed setting (see SpeedLevels).
	SpeedLevel int
	// NewsConfig is the configuration for the news service.
	NewsConfig newsservice.Config
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Seed:           time.Now().UnixNano(),
		PlayerName:     "CryptoWhale",
		StartingCash:   10000,
		StartingBank:   1000,
		HistoryCandles: 96 * 90, // 90 days of 15-minute candles
		SpeedLevel:     1,
		NewsConfig:     newsservice.DefaultConfig(),
	}
}
