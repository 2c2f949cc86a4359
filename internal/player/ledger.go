package player

// TransactionType classifies a ledger entry.
type TransactionType uint8

const (
	SpotBuy TransactionType = iota
	SpotSell
	FuturesOpen
	FuturesClose
	Liquidation
	TakeProfitHit
	StopLossHit
)

func (t TransactionType) String() string {
	switch t {
	case SpotBuy:
		return "SPOT_BUY"
	case SpotSell:
		return "SPOT_SELL"
	case FuturesOpen:
		return "FUTURES_OPEN"
	case FuturesClose:
		return "FUTURES_CLOSE"
	case Liquidation:
		return "LIQUIDATION"
	case TakeProfitHit:
		return "TP_HIT"
	case StopLossHit:
		return "SL_HIT"
	default:
		return "UNKNOWN"
	}
}

// Transaction is one immutable ledger entry. Amount is coin units for
// spot entries and notional USD for futures entries.
type Transaction struct {
	ID         int64
	Type       TransactionType
	Symbol     string
	GameMinute float64
	Amount     float64
	Price      float64
	PnL        float64
	SlippagePct float64
	Impact      float64
	Fee         float64
}

// RecordTransaction appends a futures-side entry from the game loop.
func (p *Player) RecordTransaction(txn Transaction) {
	p.appendTxn(txn)
}

func (p *Player) appendTxn(txn Transaction) {
	p.nextTxnID++
	txn.ID = p.nextTxnID
	p.Transactions = append(p.Transactions, txn)
}
