package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/whalegame/whalegame/internal/futures"
	"github.com/whalegame/whalegame/internal/mining"
	"github.com/whalegame/whalegame/internal/news"
	"github.com/whalegame/whalegame/internal/orderbook"
	"github.com/whalegame/whalegame/internal/player"
)

// ErrUnknownSymbol rejects actions against coins not in the catalog.
var ErrUnknownSymbol = fmt.Errorf("game: unknown symbol")

// whaleBroadcastUSD is the notional above which a player trade gets
// called out on the social feed.
const whaleBroadcastUSD = 100000

// OpenPosition opens a leveraged position. The entry price is pushed
// against the player by the estimated impact of the full notional, and
// the market reprices to that entry immediately.
func (g *Game) OpenPosition(req futures.OpenRequest) (futures.OpenReport, error) {
	coin := g.Coin(req.Symbol)
	if coin == nil {
		return futures.OpenReport{}, ErrUnknownSymbol
	}

	size := req.Margin * req.Leverage
	impact := orderbook.EstimateImpact(req.Symbol, size, coin.Volume)
	if req.Direction == futures.Long {
		req.ExecutionPrice = coin.Price * (1 + impact)
	} else {
		req.ExecutionPrice = coin.Price * (1 - impact)
	}

	rep, err := g.player.Futures.Open(req, g.player.Cash)
	if err != nil {
		return futures.OpenReport{}, err
	}
	g.player.Cash = rep.Cash
	g.commitPrice(coin, req.ExecutionPrice)

	g.player.RecordTransaction(player.Transaction{
		Type:       player.FuturesOpen,
		Symbol:     req.Symbol,
		GameMinute: g.totalMinutes,
		Amount:     rep.Size,
		Price:      req.ExecutionPrice,
		Impact:     impact,
		Fee:        rep.Fee,
	})
	if rep.Realized != 0 {
		g.player.RecordClosedTrade(rep.Realized)
	}
	g.broadcastTrade(req.Symbol, "WENT "+req.Direction.String()+" ON", size)

	g.log.Info("position opened",
		zap.String("symbol", req.Symbol),
		zap.Stringer("kind", rep.Kind),
		zap.Float64("size", size),
		zap.Float64("entry", req.ExecutionPrice))
	return rep, nil
}

// ClosePosition closes the position at the current mark, with the close
// side's own impact pushed against the player.
func (g *Game) ClosePosition(id futures.PositionID) (futures.CloseReport, error) {
	pos := g.player.Futures.Find(id)
	if pos == nil {
		return futures.CloseReport{}, futures.ErrPositionNotFound
	}
	coin := g.Coin(pos.Symbol)
	if coin == nil {
		return futures.CloseReport{}, ErrUnknownSymbol
	}

	impact := orderbook.EstimateImpact(pos.Symbol, pos.Size, coin.Volume)
	closePrice := coin.Price * (1 - impact)
	if pos.Direction == futures.Short {
		closePrice = coin.Price * (1 + impact)
	}

	rep, err := g.player.Futures.Close(id, closePrice, g.player.Cash)
	if err != nil {
		return futures.CloseReport{}, err
	}
	g.player.Cash = rep.Cash
	g.commitPrice(coin, closePrice)

	g.player.RecordTransaction(player.Transaction{
		Type:       player.FuturesClose,
		Symbol:     pos.Symbol,
		GameMinute: g.totalMinutes,
		Amount:     rep.Position.Size,
		Price:      closePrice,
		PnL:        rep.NetPnL,
		Fee:        rep.Fee,
	})
	g.player.RecordClosedTrade(rep.NetPnL)

	g.log.Info("position closed",
		zap.String("symbol", pos.Symbol),
		zap.Float64("netPnl", rep.NetPnL))
	return rep, nil
}

// AddMargin tops up an isolated position from cash.
func (g *Game) AddMargin(id futures.PositionID, amount float64) error {
	cash, err := g.player.Futures.AddMargin(id, amount, g.player.Cash)
	if err != nil {
		return err
	}
	g.player.Cash = cash
	return nil
}

// BuySpot market-buys amountUSD worth of the coin.
func (g *Game) BuySpot(symbol string, amountUSD float64) (player.SpotReport, error) {
	coin := g.Coin(symbol)
	if coin == nil {
		return player.SpotReport{}, ErrUnknownSymbol
	}
	rep, err := g.player.BuySpot(coin, amountUSD, g.Entities(), g.exec, g.totalMinutes)
	if err != nil {
		return rep, err
	}
	g.broadcastTrade(symbol, "BOUGHT", amountUSD)
	return rep, nil
}

// SellSpot market-sells coin units.
func (g *Game) SellSpot(symbol string, amountCoin float64) (player.SpotReport, error) {
	coin := g.Coin(symbol)
	if coin == nil {
		return player.SpotReport{}, ErrUnknownSymbol
	}
	rep, err := g.player.SellSpot(coin, amountCoin, g.Entities(), g.exec, g.totalMinutes)
	if err != nil {
		return rep, err
	}
	g.broadcastTrade(symbol, "SOLD", rep.USDValue)
	return rep, nil
}

// broadcastTrade posts a whale-watcher callout when the player moves
// serious size.
func (g *Game) broadcastTrade(symbol, verb string, usd float64) {
	if usd < whaleBroadcastUSD {
		return
	}
	g.news.PublishFeed(news.FeedItem{
		Author:     "Whale Watcher",
		Handle:     "@WhaleAlert",
		Content:    fmt.Sprintf("🐋 %s %s $%.0f %s!", g.player.Name, verb, usd, symbol),
		GameMinute: g.totalMinutes,
		Likes:      420,
		Comments:   69,
		Kind:       news.FeedWhale,
	})
}

// farmCost is the flat price of breaking ground on a new site.
const farmCost = 5000

// Mining action errors.
var (
	ErrFarmNotFound = fmt.Errorf("game: farm not found")
	ErrUnknownRig   = fmt.Errorf("game: unknown rig model")
)

// CreateFarm buys a new mining site in the given location.
func (g *Game) CreateFarm(name, locationID string, mode mining.Mode, energy mining.EnergySource) (*mining.Farm, error) {
	if g.player.Cash < farmCost {
		return nil, player.ErrInsufficientCash
	}
	g.player.Cash -= farmCost

	f := &mining.Farm{
		ID:         fmt.Sprintf("farm-%d", len(g.player.Farms)+1),
		Name:       name,
		LocationID: mining.LocationByID(locationID).ID,
		Status:     mining.Active,
		Mode:       mode,
		Energy:     energy,
	}
	g.player.Farms = append(g.player.Farms, f)
	return f, nil
}

// BuyRig installs a catalog rig on the farm.
func (g *Game) BuyRig(farmID, model string) error {
	f := g.farm(farmID)
	if f == nil {
		return ErrFarmNotFound
	}
	for _, entry := range mining.RigCatalog() {
		if entry.Model != model {
			continue
		}
		if g.player.Cash < entry.Cost {
			return player.ErrInsufficientCash
		}
		g.player.Cash -= entry.Cost
		f.AddRig(mining.Rig{Model: entry.Model, Hashrate: entry.Hashrate, Power: entry.Power})
		return nil
	}
	return ErrUnknownRig
}

// RepairFarm pays off a farm's outstanding disaster and restarts it.
func (g *Game) RepairFarm(farmID string) error {
	f := g.farm(farmID)
	if f == nil {
		return ErrFarmNotFound
	}
	if g.player.Cash < f.Disaster.CostToFix {
		return player.ErrInsufficientCash
	}
	g.player.Cash -= mining.Repair(f)
	return nil
}

func (g *Game) farm(id string) *mining.Farm {
	for _, f := range g.player.Farms {
		if f.ID == id {
			return f
		}
	}
	return nil
}
