// Package game wires every engine into one cooperatively scheduled
// simulation: prices, the macro cycle, entities, funding, mining,
// liquidations, and the news surface. A single goroutine drives
// Advance; the Game is not safe for concurrent mutation.
package game

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/whalegame/whalegame/internal/entity"
	"github.com/whalegame/whalegame/internal/market"
	"github.com/whalegame/whalegame/internal/market/pricing"
	newsservice "github.com/whalegame/whalegame/internal/news/service"
	"github.com/whalegame/whalegame/internal/orderbook"
	"github.com/whalegame/whalegame/internal/player"
)

// SpeedLevels maps the speed setting to its game-minutes-per-wall-second
// multiplier. Level 0 pauses the simulation while the loop keeps polling.
var SpeedLevels = map[int]float64{
	0: 0,
	1: 1,
	2: 5,
	3: 10,
	4: 25,
	5: 50,
	6: 100,
	7: 500,
	8: 1000,
}

// MaxSpeedLevel is the highest configurable speed setting.
const MaxSpeedLevel = 8

// Periodic engine cadences in game minutes.
const (
	fundingIntervalMinutes = market.FundingIntervalHours * 60
	entityIntervalMinutes  = 5
	miningIntervalMinutes  = 60
)

// startMinutes opens the simulation at Day 1 08:00.
const startMinutes = 480

// Game owns the entire simulation state.
type Game struct {
	cfg Config
	log *zap.Logger
	rng *rand.Rand

	coins    []*market.Coin
	state    *market.MarketState
	model    *pricing.Model
	cycle    *pricing.Cycle
	calendar *Calendar
	behavior *entity.Engine
	roster   []*entity.Entity
	mirrors  []*entity.Entity
	exec     *orderbook.Executor
	player   *player.Player
	news     *newsservice.NewsService

	totalMinutes float64
	speedLevel   int
	prevDay      int

	fundingAcc float64
	entityAcc  float64
	miningAcc  float64
}

// NewGame builds a fully seeded game: launch coins with backfilled
// history, the entity roster, the player account, and the news service.
func NewGame(cfg Config, log *zap.Logger) *Game {
	rng := rand.New(rand.NewSource(cfg.Seed))

	coins := market.LaunchCoins()
	pricing.GenerateHistory(coins, cfg.HistoryCandles, rng)

	state := market.NewMarketState()
	state.NextFundingMinute = startMinutes + fundingIntervalMinutes

	g := &Game{
		cfg:          cfg,
		log:          log,
		rng:          rng,
		coins:        coins,
		state:        state,
		model:        pricing.NewModel(rng),
		cycle:        pricing.NewCycle(rng),
		calendar:     NewCalendar(rng),
		behavior:     entity.NewEngine(rng),
		roster:       entity.GenerateRoster(rng),
		exec:         orderbook.NewExecutor(rng),
		player:       player.New(cfg.PlayerName, cfg.StartingCash, cfg.StartingBank),
		news:         newsservice.NewNewsService(cfg.NewsConfig),
		totalMinutes: startMinutes,
		speedLevel:   cfg.SpeedLevel,
		prevDay:      dayOf(startMinutes),
	}
	g.refreshMirrors()
	return g
}

// Close shuts down the news service.
func (g *Game) Close() {
	g.news.Close()
}

// Coins returns the live coin set. Read-only for callers.
func (g *Game) Coins() []*market.Coin { return g.coins }

// Coin looks a coin up by symbol, nil when unknown.
func (g *Game) Coin(symbol string) *market.Coin {
	for _, c := range g.coins {
		if c.Symbol == symbol {
			return c
		}
	}
	return nil
}

// State returns the macro market state.
func (g *Game) State() *market.MarketState { return g.state }

// Player returns the player account.
func (g *Game) Player() *player.Player { return g.player }

// News returns the news service for tape reads and event subscription.
func (g *Game) News() *newsservice.NewsService { return g.news }

// Entities returns the roster plus the player's derived whale mirrors.
func (g *Game) Entities() []*entity.Entity {
	out := make([]*entity.Entity, 0, len(g.roster)+len(g.mirrors))
	out = append(out, g.roster...)
	return append(out, g.mirrors...)
}

// Calendar returns the pending macro event schedule.
func (g *Game) Calendar() []CalendarEvent { return g.calendar.Upcoming() }

// TotalMinutes is the elapsed game time.
func (g *Game) TotalMinutes() float64 { return g.totalMinutes }

// ClockLabel formats current game time as "Day X HH:MM".
func (g *Game) ClockLabel() string { return market.FormatGameTime(g.totalMinutes) }

// SpeedLevel returns the current speed setting.
func (g *Game) SpeedLevel() int { return g.speedLevel }

// SetSpeedLevel clamps and applies a speed setting.
func (g *Game) SetSpeedLevel(level int) {
	if level < 0 {
		level = 0
	}
	if level > MaxSpeedLevel {
		level = MaxSpeedLevel
	}
	g.speedLevel = level
}

// SpeedMultiplier is the game-minutes-per-wall-second factor in effect.
func (g *Game) SpeedMultiplier() float64 {
	return SpeedLevels[g.speedLevel]
}

func (g *Game) commitPrice(coin *market.Coin, price float64) {
	coin.Price = price
	coin.MarketCap = price * coin.CirculatingSupply
}

func (g *Game) refreshMirrors() {
	var wallets []entity.ColdWalletBalance
	for _, w := range g.player.ColdWallets {
		wallets = append(wallets, entity.ColdWalletBalance{
			ID: w.ID, Name: w.Name, BTC: w.BTC, ETH: w.ETH, SOL: w.SOL,
		})
	}
	g.mirrors = entity.DeriveMirrors(g.player.Name, g.player.ExchangeBTC(), wallets)
}

func dayOf(totalMinutes float64) int {
	return int(totalMinutes/1440) + 1
}
