package player

import (
	"math"
	"math/rand"
	"testing"

	"github.com/whalegame/whalegame/internal/market"
	"github.com/whalegame/whalegame/internal/orderbook"
)

func deepCoin() *market.Coin {
	// A deep, liquid test asset: tiny orders fill at effectively mid.
	return &market.Coin{
		ID: "testcoin", Symbol: "TST", Name: "Test", Price: 100,
		Volume: 1e12, CirculatingSupply: 1e9, Tag: market.TagBTC,
	}
}

func TestBuySpotEndToEnd(t *testing.T) {
	p := New("trader", 10000, 0)
	exec := orderbook.NewExecutor(rand.New(rand.NewSource(1)))
	coin := deepCoin()

	rep, err := p.BuySpot(coin, 1000, nil, exec, 0)
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	units := p.HoldingAmount("TST")
	if math.Abs(units-10) > 0.2 {
		t.Errorf("$1000 at $100 should hold ~10 units, got %f", units)
	}
	wantCash := 10000 - 1000 - rep.Fee
	if math.Abs(p.Cash-wantCash) > 1e-9 {
		t.Errorf("cash should be 9000 minus fee, got %f", p.Cash)
	}
	if len(p.Transactions) != 1 || p.Transactions[0].Type != SpotBuy {
		t.Fatalf("expected one SPOT_BUY record, got %+v", p.Transactions)
	}
	if p.Transactions[0].Type.String() != "SPOT_BUY" {
		t.Errorf("transaction type label: %s", p.Transactions[0].Type)
	}
	if coin.Price <= 100 {
		t.Error("buy impact should nudge the market price up")
	}
}

func TestBuySpotValidation(t *testing.T) {
	p := New("trader", 100, 0)
	exec := orderbook.NewExecutor(rand.New(rand.NewSource(2)))
	coin := deepCoin()

	if _, err := p.BuySpot(coin, -5, nil, exec, 0); err != ErrInvalidAmount {
		t.Errorf("negative amount: got %v", err)
	}
	if _, err := p.BuySpot(coin, 5000, nil, exec, 0); err != ErrInsufficientCash {
		t.Errorf("overdraft: got %v", err)
	}
	if len(p.Transactions) != 0 {
		t.Error("failed trades must not hit the ledger")
	}
}

func TestSellSpotRoundTrip(t *testing.T) {
	p := New("trader", 10000, 0)
	exec := orderbook.NewExecutor(rand.New(rand.NewSource(3)))
	coin := deepCoin()

	if _, err := p.BuySpot(coin, 1000, nil, exec, 0); err != nil {
		t.Fatalf("buy: %v", err)
	}
	held := p.HoldingAmount("TST")

	rep, err := p.SellSpot(coin, held, nil, exec, 15)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if p.HoldingAmount("TST") != 0 {
		t.Error("full sell should sweep the holding")
	}
	// Round trip through a deep book costs fees plus a sliver of spread.
	if p.Cash < 9900 || p.Cash > 10000+1 {
		t.Errorf("round-trip cash out of band: %f", p.Cash)
	}
	if rep.USDValue <= 0 {
		t.Error("sell must realize value")
	}
	if p.Transactions[1].Type != SpotSell {
		t.Errorf("expected SPOT_SELL, got %s", p.Transactions[1].Type)
	}
}

func TestSellSpotValidation(t *testing.T) {
	p := New("trader", 1000, 0)
	exec := orderbook.NewExecutor(rand.New(rand.NewSource(4)))
	coin := deepCoin()

	if _, err := p.SellSpot(coin, 5, nil, exec, 0); err != ErrInsufficientCoins {
		t.Errorf("selling unheld coins: got %v", err)
	}
}

func TestDepositWithdrawTax(t *testing.T) {
	p := New("trader", 0, 5000)
	if err := p.Deposit(2000); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if p.Cash != 2000 || p.BankBalance != 3000 {
		t.Fatalf("deposit balances wrong: cash=%f bank=%f", p.Cash, p.BankBalance)
	}
	if err := p.Withdraw(1000); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if p.TaxDue != 100 {
		t.Errorf("10%% withdrawal tax expected, got %f", p.TaxDue)
	}
	if err := p.Deposit(99999); err != ErrInvalidAmount {
		t.Errorf("over-deposit: got %v", err)
	}
}

func TestColdWalletTransfer(t *testing.T) {
	p := New("trader", 10000, 0)
	p.AddHolding("BTC", 2, 45000)
	p.CreateColdWallet("w1", "Vault")

	if err := p.TransferToCold("w1", "BTC", 1.5); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if p.ColdWallets[0].BTC != 1.5 {
		t.Errorf("cold wallet should hold 1.5 BTC, got %f", p.ColdWallets[0].BTC)
	}
	if p.HoldingAmount("BTC") != 0.5 {
		t.Errorf("exchange should retain 0.5 BTC, got %f", p.HoldingAmount("BTC"))
	}
	if err := p.TransferToCold("w1", "BTC", 10); err != ErrInvalidAmount {
		t.Errorf("overdraw transfer: got %v", err)
	}
	if err := p.TransferToCold("nope", "BTC", 0.1); err != ErrWalletNotFound {
		t.Errorf("missing wallet: got %v", err)
	}
}

func TestAddHoldingAveragesCost(t *testing.T) {
	p := New("trader", 0, 0)
	p.AddHolding("BTC", 1, 40000)
	p.AddHolding("BTC", 1, 50000)
	h := p.Holding("BTC")
	if h.AvgBuyPrice != 45000 {
		t.Errorf("expected averaged entry 45000, got %f", h.AvgBuyPrice)
	}

	// Mining payouts credit at zero cost without skewing the average.
	p.AddHolding("BTC", 0.5, 0)
	if h.AvgBuyPrice != 45000 {
		t.Errorf("zero-cost credit must not move the average, got %f", h.AvgBuyPrice)
	}
	if h.Amount != 2.5 {
		t.Errorf("expected 2.5 BTC, got %f", h.Amount)
	}
}

func TestRecordClosedTrade(t *testing.T) {
	p := New("trader", 0, 0)
	p.RecordClosedTrade(150)
	p.RecordClosedTrade(-50)
	s := p.TradeStats
	if s.TotalTrades != 2 || s.WinningTrades != 1 || s.LosingTrades != 1 {
		t.Fatalf("trade stats wrong: %+v", s)
	}
	if s.NetPnL != 100 {
		t.Errorf("net pnl should sum to 100, got %f", s.NetPnL)
	}
}
