package orderbook

// Side represents the order side: buy or sell.
type Side uint8

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Source tags who placed a synthetic resting level.
type Source uint8

const (
	SourceMarketMaker Source = iota
	SourceWhale
	SourcePlayer
)

func (s Source) String() string {
	switch s {
	case SourceMarketMaker:
		return "MARKET_MAKER"
	case SourceWhale:
		return "WHALE"
	case SourcePlayer:
		return "PLAYER"
	default:
		return "UNKNOWN"
	}
}

// Level is one resting price level. Size is in coin units.
type Level struct {
	Price  float64
	Size   float64
	Source Source
}

// Book is an ephemeral synthetic depth snapshot, regenerated fresh for
// every execution call and never persisted. Bids are sorted descending by
// price, asks ascending.
type Book struct {
	Bids []Level
	Asks []Level
}

// ExecutionResult reports how a market order filled.
type ExecutionResult struct {
	// VWAPPrice is the volume-weighted average fill price.
	VWAPPrice float64
	// FinalPrice is the market price after the cushioned impact is applied.
	FinalPrice float64
	// FilledSize always equals the requested size; the synthetic tail fill
	// guarantees full execution.
	FilledSize float64
	// SlippagePct is |vwap - mid| / mid * 100.
	SlippagePct float64
	// Impact is the signed cushioned price-change fraction applied to the
	// market price (negative for sells).
	Impact float64
	// FilledLevels lists the consumed levels, for display or debugging.
	FilledLevels []Level
}
