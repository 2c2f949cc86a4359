package futures

import (
	"math"
	"testing"

	"github.com/whalegame/whalegame/internal/market"
)

func approx(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %g, want %g", what, got, want)
	}
}

func TestOpenIsolatedDeductsMarginAndFee(t *testing.T) {
	b := NewBook()
	rep, err := b.Open(OpenRequest{
		Symbol: "BTC", Direction: Long, MarginType: Isolated,
		Margin: 1000, Leverage: 10, ExecutionPrice: 45000,
	}, 10000)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if rep.Kind != OpenedNew {
		t.Fatalf("expected OPENED, got %s", rep.Kind)
	}
	wantFee := 10000 * market.TakerFeeRate
	approx(t, rep.Fee, wantFee, 1e-9, "fee")
	approx(t, rep.Cash, 10000-1000-wantFee, 1e-9, "cash after open")
	approx(t, rep.Position.Size, 10000, 1e-9, "size")
	approx(t, rep.Position.NetPnL, -wantFee, 1e-9, "initial net pnl")
}

func TestOpenValidation(t *testing.T) {
	b := NewBook()
	if _, err := b.Open(OpenRequest{Symbol: "BTC", Margin: 0, Leverage: 10, ExecutionPrice: 45000}, 10000); err != ErrInvalidMargin {
		t.Errorf("zero margin: got %v", err)
	}
	if _, err := b.Open(OpenRequest{Symbol: "BTC", Margin: 100, Leverage: 0.5, ExecutionPrice: 45000}, 10000); err != ErrInvalidLeverage {
		t.Errorf("sub-1 leverage: got %v", err)
	}
	if _, err := b.Open(OpenRequest{Symbol: "BTC", Margin: 5000, Leverage: 10, ExecutionPrice: 45000}, 100); err != ErrInsufficientCash {
		t.Errorf("poor account: got %v", err)
	}
	if _, err := b.Open(OpenRequest{Symbol: "DOGE", Margin: 100, Leverage: 1000, ExecutionPrice: 0.12}, 1e9); err != ErrLeverageTooHigh {
		t.Errorf("leverage over tier cap: got %v", err)
	}
}

func TestIsolatedLiquidationPrice(t *testing.T) {
	// 10x long from 45000: liq = 45000 * (1 - 0.1 + 0.005) = 40725
	liq := LiquidationPrice(45000, 10, Long, Isolated, 10000, 0)
	approx(t, liq, 40725, 1e-9, "isolated long liq")

	short := LiquidationPrice(45000, 10, Short, Isolated, 10000, 0)
	approx(t, short, 45000*(1+0.1-0.005), 1e-9, "isolated short liq")
}

func TestCrossLiquidationPriceUsesEquity(t *testing.T) {
	// collateral 1000 against size 10000: lossRatio = (1000-50)/10000
	liq := LiquidationPrice(45000, 10, Long, Cross, 10000, 1000)
	approx(t, liq, 45000*(1-0.095), 1e-9, "cross long liq")
}

func TestCrossMergeWeightedEntry(t *testing.T) {
	b := NewBook()
	cash := 100000.0

	rep, err := b.Open(OpenRequest{Symbol: "BTC", Direction: Long, MarginType: Cross,
		Margin: 100, Leverage: 10, ExecutionPrice: 45000}, cash)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	rep2, err := b.Open(OpenRequest{Symbol: "BTC", Direction: Long, MarginType: Cross,
		Margin: 100, Leverage: 20, ExecutionPrice: 46000}, rep.Cash)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if rep2.Kind != Merged {
		t.Fatalf("expected MERGED, got %s", rep2.Kind)
	}

	pos := rep2.Position
	approx(t, pos.Size, 3000, 1e-9, "merged size")
	approx(t, pos.Margin, 200, 1e-9, "merged margin")
	approx(t, pos.Leverage, 15, 1e-9, "re-derived leverage")
	wantEntry := (45000.0*1000 + 46000.0*2000) / 3000
	approx(t, pos.EntryPrice, wantEntry, 1e-6, "weighted entry")
	if len(b.Positions()) != 1 {
		t.Fatalf("merge must not add a second position")
	}
}

func TestCrossOppositeReducesThenFlips(t *testing.T) {
	b := NewBook()
	rep, err := b.Open(OpenRequest{Symbol: "BTC", Direction: Long, MarginType: Cross,
		Margin: 1000, Leverage: 10, ExecutionPrice: 45000}, 100000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// Opposite short of 4000 notional reduces the 10000 long.
	rep2, err := b.Open(OpenRequest{Symbol: "BTC", Direction: Short, MarginType: Cross,
		Margin: 400, Leverage: 10, ExecutionPrice: 46000}, rep.Cash)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if rep2.Kind != Reduced {
		t.Fatalf("expected REDUCED, got %s", rep2.Kind)
	}
	pos := rep2.Position
	approx(t, pos.Size, 6000, 1e-9, "reduced size")
	approx(t, pos.Margin, 600, 1e-9, "reduced margin")
	// realized: (46000-45000) * 4000/45000
	approx(t, rep2.Realized, 1000*4000/45000.0, 1e-6, "realized on reduce")
	if pos.Direction != Long {
		t.Error("reduce must keep direction")
	}

	// Opposite short of 12000 notional flips the remaining 6000 long.
	rep3, err := b.Open(OpenRequest{Symbol: "BTC", Direction: Short, MarginType: Cross,
		Margin: 1200, Leverage: 10, ExecutionPrice: 46000}, rep2.Cash)
	if err != nil {
		t.Fatalf("flip: %v", err)
	}
	if rep3.Kind != Flipped {
		t.Fatalf("expected FLIPPED, got %s", rep3.Kind)
	}
	flipped := rep3.Position
	if flipped.Direction != Short {
		t.Error("flip must reverse direction")
	}
	approx(t, flipped.Size, 6000, 1e-9, "flipped remainder size")
	approx(t, flipped.EntryPrice, 46000, 1e-9, "flipped entry at mark")
	if flipped.FundingFees != 0 {
		t.Error("flip must reset funding fees")
	}
	if len(b.Positions()) != 1 {
		t.Fatal("flip must reuse the slot, not add a position")
	}
}

func TestCloseReturnsMarginPlusPnlMinusFee(t *testing.T) {
	b := NewBook()
	rep, err := b.Open(OpenRequest{Symbol: "BTC", Direction: Long, MarginType: Isolated,
		Margin: 1000, Leverage: 10, ExecutionPrice: 45000}, 10000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	closeRep, err := b.Close(rep.Position.ID, 46000, rep.Cash)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	wantPnl := (46000 - 45000.0) * 10000 / 45000
	approx(t, closeRep.PnL, wantPnl, 1e-6, "close pnl")
	wantFee := 10000 * market.TakerFeeRate
	approx(t, closeRep.Returned, 1000+wantPnl-wantFee, 1e-6, "returned cash")
	if len(b.Positions()) != 0 {
		t.Fatal("close must remove the position")
	}
	if _, err := b.Close(rep.Position.ID, 46000, closeRep.Cash); err != ErrPositionNotFound {
		t.Errorf("double close: got %v", err)
	}
}

func TestAddMarginRecomputesLiquidation(t *testing.T) {
	b := NewBook()
	rep, err := b.Open(OpenRequest{Symbol: "BTC", Direction: Long, MarginType: Isolated,
		Margin: 1000, Leverage: 10, ExecutionPrice: 45000}, 10000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	pos := rep.Position
	before := pos.LiquidationPrice

	cash, err := b.AddMargin(pos.ID, 500, rep.Cash)
	if err != nil {
		t.Fatalf("add margin: %v", err)
	}
	approx(t, cash, rep.Cash-500, 1e-9, "cash after add margin")
	if pos.LiquidationPrice >= before {
		t.Errorf("extra margin must lower a long's liq price: %f -> %f", before, pos.LiquidationPrice)
	}
	// liqDist = (1500/10000 - 0.005) * 45000
	approx(t, pos.LiquidationPrice, 45000-(0.15-0.005)*45000, 1e-6, "recomputed liq")

	crossRep, err := b.Open(OpenRequest{Symbol: "ETH", Direction: Long, MarginType: Cross,
		Margin: 100, Leverage: 5, ExecutionPrice: 2400}, cash)
	if err != nil {
		t.Fatalf("cross open: %v", err)
	}
	if _, err := b.AddMargin(crossRep.Position.ID, 50, crossRep.Cash); err != ErrNotIsolated {
		t.Errorf("add margin to cross: got %v", err)
	}
}
