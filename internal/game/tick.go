package game

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/whalegame/whalegame/internal/futures"
	"github.com/whalegame/whalegame/internal/market"
	"github.com/whalegame/whalegame/internal/market/pricing"
	"github.com/whalegame/whalegame/internal/mining"
	"github.com/whalegame/whalegame/internal/news"
	"github.com/whalegame/whalegame/internal/player"
)

// AdvanceWall converts elapsed wall time at the current speed into game
// minutes and advances the simulation by it.
func (g *Game) AdvanceWall(elapsed time.Duration) {
	g.Advance(elapsed.Seconds() * g.SpeedMultiplier())
}

// Advance runs one simulation tick of deltaMinutes game time. The
// ordering is load-bearing: calendar and hunt biases are decided before
// the price step consumes them, and liquidations run against the prices
// the step just committed. Each periodic engine gates on its own
// accumulator and resets it to zero on firing, so an oversized delta
// fires each engine at most once.
func (g *Game) Advance(deltaMinutes float64) {
	if deltaMinutes <= 0 {
		return
	}

	g.totalMinutes += deltaMinutes
	g.fundingAcc += deltaMinutes
	g.entityAcc += deltaMinutes
	g.miningAcc += deltaMinutes

	day := dayOf(g.totalMinutes)

	g.applyCalendar(day)
	hunt := g.rollHunt(deltaMinutes)
	g.advanceCycle(deltaMinutes)

	g.model.Step(g.coins, g.state, g.totalMinutes, deltaMinutes, hunt, time.Now().UnixMilli())

	if g.fundingAcc >= fundingIntervalMinutes {
		g.settleFunding()
		g.fundingAcc = 0
		g.state.NextFundingMinute = g.totalMinutes + fundingIntervalMinutes
	}

	g.runMining(deltaMinutes)

	if g.entityAcc >= entityIntervalMinutes {
		g.runEntities(g.entityAcc)
		g.entityAcc = 0
	}

	g.sweepPositions()

	if day > g.prevDay {
		g.dailyRollover(day)
		g.prevDay = day
	}
}

func (g *Game) applyCalendar(day int) {
	for _, ev := range g.calendar.Due(day) {
		impact := news.ImpactValue(ev.Impact, ev.Direction)
		g.state.NewsSentimentBias += impact
		g.news.PublishFeed(news.FeedItem{
			Author:     "Economic Calendar",
			Handle:     "@EventBot",
			Content:    fmt.Sprintf("EVENT: %s. Market reacting %s.", ev.Title, ev.Direction),
			GameMinute: g.totalMinutes,
			Kind:       news.FeedNews,
		})
		g.log.Debug("calendar event applied",
			zap.String("title", ev.Title),
			zap.Float64("impact", impact))
	}
}

// rollHunt decides whether the market hunts the player's riskiest
// position this tick.
func (g *Game) rollHunt(deltaMinutes float64) *pricing.HuntTarget {
	book := g.player.Futures
	score := book.HazardScore(g.player.Cash, g.coins)
	chance := futures.HuntChance(score, deltaMinutes)
	if chance <= 0 || g.rng.Float64() >= chance {
		return nil
	}

	target := book.RiskiestPosition()
	if target == nil {
		return nil
	}

	dir := pricing.HuntUp
	headline := "Bear trap detected on %s: shorts trapped below lost support are fueling the squeeze."
	if target.Direction == futures.Long {
		dir = pricing.HuntDown
		headline = "Whale wall collapsing on %s: leveraged longs are getting flushed."
	}

	g.news.PublishFeed(news.FeedItem{
		Author:     "Market Maker",
		Handle:     "@WhaleHunter",
		Content:    fmt.Sprintf("⚡ "+headline, target.Symbol),
		GameMinute: g.totalMinutes,
		Likes:      666,
		Kind:       news.FeedAlert,
	})
	g.log.Info("liquidation hunt triggered",
		zap.String("symbol", target.Symbol),
		zap.Float64("hazard", score))
	return &pricing.HuntTarget{Symbol: target.Symbol, Direction: dir}
}

func (g *Game) advanceCycle(deltaMinutes float64) {
	transitioned, phase := g.cycle.Advance(g.state, deltaMinutes/1440)
	if !transitioned {
		return
	}

	sentiment := news.SentimentBearish
	if phase == market.PhaseAccumulation || phase == market.PhaseBullRun {
		sentiment = news.SentimentBullish
	}
	g.state.NewsSentimentBias += news.ImpactValue(news.ImpactHigh, sentiment)

	g.news.PublishFeed(news.FeedItem{
		Author:     "Macro Cycle Bot",
		Handle:     "@CycleWatch",
		Content:    fmt.Sprintf("CYCLE SHIFT: Entering %s phase.", phase),
		GameMinute: g.totalMinutes,
		Likes:      500,
		Comments:   100,
		Kind:       news.FeedNews,
	})
	g.log.Info("market cycle transition",
		zap.Stringer("phase", phase),
		zap.Float64("durationDays", g.state.PhaseTotalDays))
}

func (g *Game) settleFunding() {
	futures.UpdateFundingRates(g.coins, g.state.Phase, g.rng)
	cashDelta := g.player.Futures.SettleFunding(g.coins)
	g.player.Cash += cashDelta

	if math.Abs(cashDelta) > 10 {
		g.news.PublishFeed(news.FeedItem{
			Author:     "Funding System",
			Handle:     "@BitMexBot",
			Content:    fmt.Sprintf("Funding Paid/Received: $%.2f", cashDelta),
			GameMinute: g.totalMinutes,
			Kind:       news.FeedAlert,
		})
	}
}

func (g *Game) runMining(deltaMinutes float64) {
	p := g.player
	btc := g.Coin("BTC")
	btcPrice := 45000.0
	if btc != nil {
		btcPrice = btc.Price
	}

	p.MiningStats.NetworkDifficulty = mining.UpdateDifficulty(p.MiningStats.NetworkDifficulty, btcPrice)
	rep := mining.Rewards(p.Farms, p.MiningStats.NetworkDifficulty, btcPrice, deltaMinutes, g.rng)

	cost := rep.MaintenanceCost
	for _, f := range p.Farms {
		cost += mining.PowerCost(f, deltaMinutes)
	}
	p.Cash -= cost
	p.MiningStats.MineTokens += rep.MineTokens
	p.MiningStats.BTCMined24h += rep.BTCMined
	if rep.BTCMined > 0 {
		p.AddHolding("BTC", rep.BTCMined, 0)
	}

	if g.miningAcc >= miningIntervalMinutes {
		for _, hit := range mining.SimulateDisasters(p.Farms, g.rng) {
			g.news.PublishFeed(news.FeedItem{
				Author:     "Mining Alert",
				Handle:     "@SysAdmin",
				Content:    fmt.Sprintf("⚠️ %s at %s! Production stopped.", hit.Disaster.Type, hit.Name),
				GameMinute: g.totalMinutes,
				Kind:       news.FeedAlert,
			})
			g.log.Warn("mining disaster",
				zap.String("farm", hit.Name),
				zap.Stringer("type", hit.Disaster.Type))
		}
		g.miningAcc = 0
	}
}

func (g *Game) runEntities(timeFactor float64) {
	g.refreshMirrors()
	res := g.behavior.Simulate(g.Entities(), g.coins, timeFactor, g.totalMinutes)

	for _, item := range res.News {
		g.state.NewsSentimentBias += news.ImpactValue(item.Impact, item.Sentiment)
		g.news.PublishNews(item)
	}
	for _, post := range res.Feed {
		g.news.PublishFeed(post)
	}
	if res.VolumeAdd > 0 {
		if btc := g.Coin("BTC"); btc != nil {
			btc.Volume += res.VolumeAdd
		}
	}
}

// sweepPositions runs the liquidation and TP/SL pass and settles the
// outcomes into cash, the ledger, and the feed.
func (g *Game) sweepPositions() {
	p := g.player
	book := p.Futures
	if len(book.Positions()) == 0 {
		return
	}

	book.RefreshCrossLiquidation(p.Cash)
	res := book.CheckLiquidations(g.coins, p.Cash)
	p.Cash = res.Cash

	for _, pos := range res.Liquidated {
		p.RecordTransaction(player.Transaction{
			Type:       player.Liquidation,
			Symbol:     pos.Symbol,
			GameMinute: g.totalMinutes,
			Amount:     pos.Size,
			Price:      pos.LiquidationPrice,
			PnL:        -pos.Margin,
		})
		p.RecordClosedTrade(-pos.Margin)
		g.log.Info("position liquidated",
			zap.String("symbol", pos.Symbol),
			zap.Float64("size", pos.Size),
			zap.Float64("marginLost", pos.Margin))
	}
	if len(res.Liquidated) > 0 {
		g.news.PublishFeed(news.FeedItem{
			Author:     "Liquidation Bot",
			Handle:     "@RektCity",
			Content:    "💀 REKT! Positions liquidated.",
			GameMinute: g.totalMinutes,
			Likes:      999,
			Comments:   50,
			Kind:       news.FeedAlert,
		})
	}

	for _, pos := range res.Exited {
		exitPrice := pos.EntryPrice
		if coin := g.Coin(pos.Symbol); coin != nil {
			exitPrice = coin.Price
		}
		txnType := player.StopLossHit
		if pos.NetPnL > 0 {
			txnType = player.TakeProfitHit
		}
		p.Cash += pos.Margin + pos.NetPnL
		p.RecordTransaction(player.Transaction{
			Type:       txnType,
			Symbol:     pos.Symbol,
			GameMinute: g.totalMinutes,
			Amount:     pos.Size,
			Price:      exitPrice,
			PnL:        pos.NetPnL,
		})
		p.RecordClosedTrade(pos.NetPnL)
	}
	if len(res.Exited) > 0 {
		g.news.PublishFeed(news.FeedItem{
			Author:     "Trade Bot",
			Handle:     "@RiskManager",
			Content:    fmt.Sprintf("🎯 TP/SL Hit! %d position(s) closed.", len(res.Exited)),
			GameMinute: g.totalMinutes,
			Kind:       news.FeedAlert,
		})
	}
}

func (g *Game) dailyRollover(day int) {
	if item := news.GenerateRandom(g.rng, g.state.Phase, g.totalMinutes); item != nil {
		g.state.NewsSentimentBias += news.ImpactValue(item.Impact, item.Sentiment)
		g.news.PublishNews(*item)
	}
	g.player.MiningStats.BTCMined24h = 0
	g.log.Debug("day rolled over", zap.Int("day", day))
}
