package futures

import "github.com/whalegame/whalegame/internal/market"

// CheckResult partitions the book after a liquidation/TP-SL sweep.
// Cash is the balance after cross-pool settlement but before TP/SL
// proceeds; the caller credits margin + netPnl per exited position.
type CheckResult struct {
	Active     []*Position
	Liquidated []*Position
	Exited     []*Position // TP or SL triggered
	Cash       float64
}

// CheckLiquidations sweeps every position against current prices.
// Cross positions share one risk pool: if cash plus their combined
// unrealized pnl falls to the combined maintenance requirement, every
// cross position liquidates at once. Isolated positions are checked
// against their own margin. TP/SL is evaluated only for survivors, so a
// position never exits and liquidates in the same sweep.
func (b *Book) CheckLiquidations(coins []*market.Coin, cash float64) CheckResult {
	bySymbol := make(map[string]*market.Coin, len(coins))
	for _, c := range coins {
		bySymbol[c.Symbol] = c
	}

	for _, pos := range b.positions {
		coin := bySymbol[pos.Symbol]
		if coin == nil {
			continue
		}
		pos.Refresh(coin.Price)
	}

	crossPnL, crossMaint := 0.0, 0.0
	crossCount := 0
	for _, pos := range b.positions {
		if pos.MarginType != Cross {
			continue
		}
		crossCount++
		crossPnL += pos.PnL
		crossMaint += pos.MaintenanceMargin()
	}
	crossLiquidated := crossCount > 0 && cash+crossPnL <= crossMaint

	res := CheckResult{Cash: cash}
	for _, pos := range b.positions {
		coin := bySymbol[pos.Symbol]
		if coin == nil {
			res.Active = append(res.Active, pos)
			continue
		}

		liquidated := false
		if pos.MarginType == Cross {
			liquidated = crossLiquidated
		} else {
			liquidated = pos.Margin+pos.PnL <= pos.MaintenanceMargin()
		}
		if liquidated {
			res.Liquidated = append(res.Liquidated, pos)
			continue
		}

		if hitExit(pos, coin.Price) {
			res.Exited = append(res.Exited, pos)
			continue
		}
		res.Active = append(res.Active, pos)
	}

	b.positions = res.Active
	return res
}

func hitExit(pos *Position, mark float64) bool {
	if pos.TakeProfit > 0 {
		if (pos.Direction == Long && mark >= pos.TakeProfit) || (pos.Direction == Short && mark <= pos.TakeProfit) {
			return true
		}
	}
	if pos.StopLoss > 0 {
		if (pos.Direction == Long && mark <= pos.StopLoss) || (pos.Direction == Short && mark >= pos.StopLoss) {
			return true
		}
	}
	return false
}
