package futures

import "math"

// Direction is the side of a leveraged position.
type Direction uint8

const (
	Long Direction = iota
	Short
)

func (d Direction) String() string {
	if d == Short {
		return "SHORT"
	}
	return "LONG"
}

// MarginType selects how a position's collateral is pooled.
type MarginType uint8

const (
	// Cross positions share the account's cash as one risk pool.
	Cross MarginType = iota
	// Isolated positions risk only their own committed margin.
	Isolated
)

func (m MarginType) String() string {
	if m == Isolated {
		return "ISOLATED"
	}
	return "CROSS"
}

// PositionID uniquely identifies an open position.
type PositionID int64

// MaintenanceRate is the maintenance margin requirement as a fraction of
// notional size.
const MaintenanceRate = 0.005

// Position is one open leveraged position. Size is notional USD
// (margin × leverage at open; leverage is re-derived as size/margin after
// a same-direction merge). PnL and NetPnL are refreshed against the
// current mark every tick.
type Position struct {
	ID         PositionID
	Symbol     string
	Direction  Direction
	MarginType MarginType
	Leverage   float64
	EntryPrice float64
	Margin     float64
	Size       float64

	LiquidationPrice float64

	PnL         float64 // unrealized, at the last refreshed mark
	RealizedPnL float64 // accumulated from partial closes
	TradingFees float64
	FundingFees float64 // accumulated LONG-signed funding
	NetPnL      float64 // RealizedPnL + PnL − TradingFees − FundingFees

	TakeProfit float64 // 0 means unset
	StopLoss   float64 // 0 means unset
}

// UnrealizedPnL returns the position's pnl at the given mark price.
func (p *Position) UnrealizedPnL(mark float64) float64 {
	if p.Direction == Long {
		return (mark - p.EntryPrice) * (p.Size / p.EntryPrice)
	}
	return (p.EntryPrice - mark) * (p.Size / p.EntryPrice)
}

// Refresh recomputes PnL and NetPnL against the given mark price.
func (p *Position) Refresh(mark float64) {
	p.PnL = p.UnrealizedPnL(mark)
	p.NetPnL = p.RealizedPnL + p.PnL - p.TradingFees - p.FundingFees
}

// MaintenanceMargin is the minimum equity the position must retain.
func (p *Position) MaintenanceMargin() float64 {
	return p.Size * MaintenanceRate
}

// LiquidationPrice computes the price at which a position is force-closed.
// For isolated margin only the position's own margin backs it; for cross
// margin, collateral is the total cross equity at evaluation time and the
// result must be recomputed whenever cash or sibling positions change.
func LiquidationPrice(entry, leverage float64, dir Direction, marginType MarginType, size, collateral float64) float64 {
	var liq float64
	if marginType == Cross {
		if collateral <= 0 {
			// Pool already exhausted: a long liquidates where it
			// stands, a short has no finite price above it.
			if dir == Long {
				return entry
			}
			return 0
		}
		availableForLoss := collateral - size*MaintenanceRate
		lossRatio := availableForLoss / size
		if dir == Long {
			liq = entry * (1 - lossRatio)
		} else {
			liq = entry * (1 + lossRatio)
		}
	} else {
		if dir == Long {
			liq = entry * (1 - 1/leverage + MaintenanceRate)
		} else {
			liq = entry * (1 + 1/leverage - MaintenanceRate)
		}
	}
	return math.Max(0, liq)
}
