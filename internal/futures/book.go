package futures

import (
	"errors"
	"sync/atomic"

	"github.com/whalegame/whalegame/internal/market"
)

var (
	ErrInvalidMargin    = errors.New("futures: margin must be positive")
	ErrInvalidLeverage  = errors.New("futures: leverage must be at least 1")
	ErrInsufficientCash = errors.New("futures: insufficient cash")
	ErrLeverageTooHigh  = errors.New("futures: leverage exceeds tier cap for notional")
	ErrPositionNotFound = errors.New("futures: position not found")
	ErrNotIsolated      = errors.New("futures: margin can only be added to isolated positions")
)

// Book holds the account's open positions. All cash movement is returned
// to the caller rather than held here: the account's cash balance lives
// with the player, the Book only tracks position state.
type Book struct {
	positions []*Position
	nextID    atomic.Int64
}

// NewBook returns an empty position book.
func NewBook() *Book {
	return &Book{}
}

// Positions returns the live position slice. Callers must not retain it
// across Book mutations.
func (b *Book) Positions() []*Position {
	return b.positions
}

// Find returns the position with the given id, or nil.
func (b *Book) Find(id PositionID) *Position {
	for _, p := range b.positions {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// OpenRequest describes a position entry. ExecutionPrice is the
// impact-adjusted mark the caller obtained from the execution engine; the
// Book never walks a book itself.
type OpenRequest struct {
	Symbol         string
	Direction      Direction
	MarginType     MarginType
	Margin         float64
	Leverage       float64
	ExecutionPrice float64
	TakeProfit     float64
	StopLoss       float64
}

// OpenKind classifies what an Open call actually did to the book.
type OpenKind uint8

const (
	OpenedNew OpenKind = iota
	Merged
	Reduced
	ClosedOut
	Flipped
)

func (k OpenKind) String() string {
	switch k {
	case OpenedNew:
		return "OPENED"
	case Merged:
		return "MERGED"
	case Reduced:
		return "REDUCED"
	case ClosedOut:
		return "CLOSED"
	default:
		return "FLIPPED"
	}
}

// OpenReport describes the outcome of an Open call.
type OpenReport struct {
	Kind     OpenKind
	Position *Position // nil when Kind is ClosedOut
	Size     float64   // notional of the incoming order
	Fee      float64
	Realized float64 // pnl realized by a reduce/close/flip
	Cash     float64 // updated cash balance
}

// Open enters a position with the given margin and leverage. A new
// isolated position always stands alone; a cross order against an
// existing cross position on the same symbol merges (same direction),
// reduces or closes (smaller opposite), or flips (larger opposite).
// The taker fee on the full incoming notional is always paid from cash.
func (b *Book) Open(req OpenRequest, cash float64) (OpenReport, error) {
	if req.Margin <= 0 {
		return OpenReport{}, ErrInvalidMargin
	}
	if req.Leverage < 1 {
		return OpenReport{}, ErrInvalidLeverage
	}

	size := req.Margin * req.Leverage
	fee := size * market.TakerFeeRate
	if cash < req.Margin+fee {
		return OpenReport{}, ErrInsufficientCash
	}
	if req.Leverage > market.MaxLeverageFor(req.Symbol, size) {
		return OpenReport{}, ErrLeverageTooHigh
	}

	if req.MarginType == Isolated {
		cash -= req.Margin + fee
		pos := b.newPosition(req, size, fee, 0)
		b.positions = append(b.positions, pos)
		return OpenReport{Kind: OpenedNew, Position: pos, Size: size, Fee: fee, Cash: cash}, nil
	}

	// Cross: fee is always paid upfront from the wallet.
	cash -= fee

	existing := b.findCross(req.Symbol)
	if existing == nil {
		cash -= req.Margin
		pos := b.newPosition(req, size, fee, cash)
		b.positions = append(b.positions, pos)
		return OpenReport{Kind: OpenedNew, Position: pos, Size: size, Fee: fee, Cash: cash}, nil
	}

	if existing.Direction == req.Direction {
		// Same-direction merge: size-weighted entry, summed margin,
		// leverage re-derived from the result.
		totalSize := existing.Size + size
		existing.EntryPrice = (existing.EntryPrice*existing.Size + req.ExecutionPrice*size) / totalSize
		existing.Size = totalSize
		existing.Margin += req.Margin
		existing.Leverage = totalSize / existing.Margin
		existing.TradingFees += fee
		cash -= req.Margin
		existing.LiquidationPrice = LiquidationPrice(existing.EntryPrice, existing.Leverage, existing.Direction, Cross, existing.Size, cash)
		return OpenReport{Kind: Merged, Position: existing, Size: size, Fee: fee, Cash: cash}, nil
	}

	// Opposite direction against an existing cross position.
	if size <= existing.Size {
		closeRatio := size / existing.Size
		closeMargin := existing.Margin * closeRatio
		pnl := pnlAt(existing.Direction, existing.EntryPrice, req.ExecutionPrice, size)
		cash += closeMargin + pnl

		if size == existing.Size {
			b.remove(existing.ID)
			return OpenReport{Kind: ClosedOut, Size: size, Fee: fee, Realized: pnl, Cash: cash}, nil
		}
		existing.Size -= size
		existing.Margin -= closeMargin
		existing.RealizedPnL += pnl
		existing.TradingFees += fee
		return OpenReport{Kind: Reduced, Position: existing, Size: size, Fee: fee, Realized: pnl, Cash: cash}, nil
	}

	// Flip: realize the old position in full, open the remainder fresh.
	pnl := pnlAt(existing.Direction, existing.EntryPrice, req.ExecutionPrice, existing.Size)
	cash += existing.Margin + pnl

	remainingSize := size - existing.Size
	remainingMargin := (remainingSize / size) * req.Margin
	cash -= remainingMargin

	existing.Direction = req.Direction
	existing.Size = remainingSize
	existing.EntryPrice = req.ExecutionPrice
	existing.Margin = remainingMargin
	existing.Leverage = req.Leverage
	existing.RealizedPnL += pnl
	existing.TradingFees += fee
	existing.FundingFees = 0
	existing.LiquidationPrice = LiquidationPrice(req.ExecutionPrice, req.Leverage, req.Direction, Cross, remainingSize, cash)
	return OpenReport{Kind: Flipped, Position: existing, Size: remainingSize, Fee: fee, Realized: pnl, Cash: cash}, nil
}

// CloseReport describes a full manual close.
type CloseReport struct {
	Position *Position
	Price    float64
	Fee      float64
	PnL      float64 // gross pnl realized at the close price
	NetPnL   float64 // pnl net of all fees accrued over the position's life
	Returned float64 // margin + pnl − close fee, credited to cash
	Cash     float64
}

// Close fully closes the position at the given impact-adjusted mark,
// returning margin plus pnl minus the taker close fee to cash.
func (b *Book) Close(id PositionID, closePrice, cash float64) (CloseReport, error) {
	pos := b.Find(id)
	if pos == nil {
		return CloseReport{}, ErrPositionNotFound
	}

	fee := pos.Size * market.TakerFeeRate
	pnl := pos.UnrealizedPnL(closePrice)
	net := pnl - pos.TradingFees - fee - pos.FundingFees
	returned := pos.Margin + pnl - fee

	b.remove(id)
	return CloseReport{
		Position: pos,
		Price:    closePrice,
		Fee:      fee,
		PnL:      pnl,
		NetPnL:   net,
		Returned: returned,
		Cash:     cash + returned,
	}, nil
}

// AddMargin moves extra cash into an isolated position's collateral and
// recomputes its liquidation price from the enlarged margin.
func (b *Book) AddMargin(id PositionID, amount, cash float64) (float64, error) {
	if amount <= 0 || cash < amount {
		return cash, ErrInsufficientCash
	}
	pos := b.Find(id)
	if pos == nil {
		return cash, ErrPositionNotFound
	}
	if pos.MarginType != Isolated {
		return cash, ErrNotIsolated
	}

	pos.Margin += amount
	liqDist := (pos.Margin/pos.Size - MaintenanceRate) * pos.EntryPrice
	if pos.Direction == Long {
		pos.LiquidationPrice = pos.EntryPrice - liqDist
	} else {
		pos.LiquidationPrice = pos.EntryPrice + liqDist
	}
	return cash - amount, nil
}

// RefreshCrossLiquidation recomputes every cross position's liquidation
// price from the current cash balance. Cross liquidation prices depend on
// shared equity and go stale whenever cash or sibling positions move.
func (b *Book) RefreshCrossLiquidation(cash float64) {
	for _, p := range b.positions {
		if p.MarginType != Cross {
			continue
		}
		p.LiquidationPrice = LiquidationPrice(p.EntryPrice, p.Leverage, p.Direction, Cross, p.Size, cash)
	}
}

func (b *Book) newPosition(req OpenRequest, size, fee, crossCollateral float64) *Position {
	return &Position{
		ID:               PositionID(b.nextID.Add(1)),
		Symbol:           req.Symbol,
		Direction:        req.Direction,
		MarginType:       req.MarginType,
		Leverage:         req.Leverage,
		EntryPrice:       req.ExecutionPrice,
		Margin:           req.Margin,
		Size:             size,
		LiquidationPrice: LiquidationPrice(req.ExecutionPrice, req.Leverage, req.Direction, req.MarginType, size, crossCollateral),
		TradingFees:      fee,
		NetPnL:           -fee,
		TakeProfit:       req.TakeProfit,
		StopLoss:         req.StopLoss,
	}
}

func (b *Book) findCross(symbol string) *Position {
	for _, p := range b.positions {
		if p.Symbol == symbol && p.MarginType == Cross {
			return p
		}
	}
	return nil
}

func (b *Book) remove(id PositionID) {
	for i, p := range b.positions {
		if p.ID == id {
			b.positions = append(b.positions[:i], b.positions[i+1:]...)
			return
		}
	}
}

func pnlAt(dir Direction, entry, mark, size float64) float64 {
	if dir == Long {
		return (mark - entry) * (size / entry)
	}
	return (entry - mark) * (size / entry)
}
