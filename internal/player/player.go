// Package player holds the player's account: cash, bank, spot portfolio,
// leveraged positions, cold wallets, mining farms, and the transaction
// ledger. The spot path runs through the execution engine so player
// orders eat the synthetic book like any other flow.
package player

import (
	"github.com/whalegame/whalegame/internal/futures"
	"github.com/whalegame/whalegame/internal/mining"
)

// Holding is one spot portfolio line.
type Holding struct {
	Symbol      string
	Amount      float64
	AvgBuyPrice float64
}

// ColdWallet is off-exchange storage. Balances here count toward the
// player's whale mirror but cannot be traded until moved back.
type ColdWallet struct {
	ID   string
	Name string
	BTC  float64
	ETH  float64
	SOL  float64
}

// TradeStats aggregates closed-trade outcomes.
type TradeStats struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	NetPnL        float64
}

// MiningStats tracks the player's mining operation as a whole.
type MiningStats struct {
	NetworkDifficulty float64
	MineTokens        float64
	BTCMined24h       float64
}

// Player is the full account state. Mutated only from the game loop.
type Player struct {
	Name string

	Cash        float64
	BankBalance float64
	TaxDue      float64

	Portfolio    []Holding
	Futures      *futures.Book
	Transactions []Transaction
	TradeStats   TradeStats

	ColdWallets []ColdWallet
	Farms       []*mining.Farm
	MiningStats MiningStats

	nextTxnID int64
}

// New creates a player with the given starting balances.
func New(name string, cash, bank float64) *Player {
	return &Player{
		Name:        name,
		Cash:        cash,
		BankBalance: bank,
		Futures:     futures.NewBook(),
		MiningStats: MiningStats{NetworkDifficulty: 1},
	}
}

// Holding returns the portfolio line for a symbol, or nil.
func (p *Player) Holding(symbol string) *Holding {
	for i := range p.Portfolio {
		if p.Portfolio[i].Symbol == symbol {
			return &p.Portfolio[i]
		}
	}
	return nil
}

// HoldingAmount returns the spot amount held of a symbol.
func (p *Player) HoldingAmount(symbol string) float64 {
	if h := p.Holding(symbol); h != nil {
		return h.Amount
	}
	return 0
}

// ExchangeBTC is the player's tradeable BTC, the number the whale mirror
// threshold is checked against.
func (p *Player) ExchangeBTC() float64 {
	return p.HoldingAmount("BTC")
}

const withdrawTaxRate = 0.10

// Deposit moves funds from the bank to the exchange wallet.
func (p *Player) Deposit(amount float64) error {
	if amount <= 0 || amount > p.BankBalance {
		return ErrInvalidAmount
	}
	p.BankBalance -= amount
	p.Cash += amount
	return nil
}

// Withdraw moves funds back to the bank and accrues withdrawal tax.
func (p *Player) Withdraw(amount float64) error {
	if amount <= 0 || amount > p.Cash {
		return ErrInvalidAmount
	}
	p.Cash -= amount
	p.BankBalance += amount
	p.TaxDue += amount * withdrawTaxRate
	return nil
}

// CreateColdWallet adds an empty named wallet and returns it.
func (p *Player) CreateColdWallet(id, name string) *ColdWallet {
	p.ColdWallets = append(p.ColdWallets, ColdWallet{ID: id, Name: name})
	return &p.ColdWallets[len(p.ColdWallets)-1]
}

const dustThreshold = 1e-6

// TransferToCold moves spot holdings into a cold wallet.
func (p *Player) TransferToCold(walletID, symbol string, amount float64) error {
	h := p.Holding(symbol)
	if amount <= 0 || h == nil || h.Amount < amount {
		return ErrInvalidAmount
	}

	var w *ColdWallet
	for i := range p.ColdWallets {
		if p.ColdWallets[i].ID == walletID {
			w = &p.ColdWallets[i]
		}
	}
	if w == nil {
		return ErrWalletNotFound
	}

	switch symbol {
	case "BTC":
		w.BTC += amount
	case "ETH":
		w.ETH += amount
	case "SOL":
		w.SOL += amount
	default:
		return ErrInvalidAmount
	}
	h.Amount -= amount
	p.pruneDust()
	return nil
}

// AddHolding credits spot units (mining payouts, cold-wallet returns).
// A zero-cost credit leaves the average buy price untouched.
func (p *Player) AddHolding(symbol string, amount, price float64) {
	if amount <= 0 {
		return
	}
	h := p.Holding(symbol)
	if h == nil {
		p.Portfolio = append(p.Portfolio, Holding{Symbol: symbol, Amount: amount, AvgBuyPrice: price})
		return
	}
	if price > 0 {
		total := h.Amount + amount
		h.AvgBuyPrice = (h.AvgBuyPrice*h.Amount + price*amount) / total
	}
	h.Amount += amount
}

// RecordClosedTrade folds one settled futures outcome into the stats.
func (p *Player) RecordClosedTrade(netPnl float64) {
	p.TradeStats.TotalTrades++
	if netPnl > 0 {
		p.TradeStats.WinningTrades++
	} else {
		p.TradeStats.LosingTrades++
	}
	p.TradeStats.NetPnL += netPnl
}

func (p *Player) pruneDust() {
	kept := p.Portfolio[:0]
	for _, h := range p.Portfolio {
		if h.Amount > dustThreshold {
			kept = append(kept, h)
		}
	}
	p.Portfolio = kept
}
