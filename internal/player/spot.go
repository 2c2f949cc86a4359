package player

import (
	"errors"

	"github.com/whalegame/whalegame/internal/entity"
	"github.com/whalegame/whalegame/internal/market"
	"github.com/whalegame/whalegame/internal/orderbook"
)

var (
	ErrInvalidAmount      = errors.New("player: invalid amount")
	ErrInsufficientCash   = errors.New("player: insufficient cash")
	ErrInsufficientCoins  = errors.New("player: insufficient holdings")
	ErrWalletNotFound     = errors.New("player: cold wallet not found")
)

// SpotReport is what a spot trade actually did: the fill, the fee, and
// the cushioned price the market moved to.
type SpotReport struct {
	Execution orderbook.ExecutionResult
	Fee       float64
	USDValue  float64
}

// BuySpot market-buys amountUSD worth of the coin through the execution
// engine. The fill walks the synthetic book, the taker fee comes off
// cash on top of the notional, and the coin's market price shifts by the
// cushioned impact.
func (p *Player) BuySpot(coin *market.Coin, amountUSD float64, entities []*entity.Entity, exec *orderbook.Executor, gameMinute float64) (SpotReport, error) {
	if amountUSD <= 0 {
		return SpotReport{}, ErrInvalidAmount
	}
	fee := amountUSD * market.TakerFeeRate
	if amountUSD+fee > p.Cash {
		return SpotReport{}, ErrInsufficientCash
	}

	size := amountUSD / coin.Price
	res := exec.Execute(coin, orderbook.SideBuy, size, entities)

	p.Cash -= amountUSD + fee
	p.AddHolding(coin.Symbol, res.FilledSize, res.VWAPPrice)
	commitPrice(coin, res.FinalPrice)

	p.appendTxn(Transaction{
		Type: SpotBuy, Symbol: coin.Symbol, GameMinute: gameMinute,
		Amount: res.FilledSize, Price: res.VWAPPrice,
		SlippagePct: res.SlippagePct, Impact: res.Impact, Fee: fee,
	})
	return SpotReport{Execution: res, Fee: fee, USDValue: amountUSD}, nil
}

// SellSpot market-sells coin units. Proceeds are the vwap fill minus the
// taker fee; dust positions are swept from the portfolio afterwards.
func (p *Player) SellSpot(coin *market.Coin, amountCoin float64, entities []*entity.Entity, exec *orderbook.Executor, gameMinute float64) (SpotReport, error) {
	if amountCoin <= 0 {
		return SpotReport{}, ErrInvalidAmount
	}
	h := p.Holding(coin.Symbol)
	if h == nil || h.Amount < amountCoin {
		return SpotReport{}, ErrInsufficientCoins
	}

	res := exec.Execute(coin, orderbook.SideSell, amountCoin, entities)
	realized := amountCoin * res.VWAPPrice
	fee := realized * market.TakerFeeRate

	p.Cash += realized - fee
	h.Amount -= amountCoin
	p.pruneDust()
	commitPrice(coin, res.FinalPrice)

	p.appendTxn(Transaction{
		Type: SpotSell, Symbol: coin.Symbol, GameMinute: gameMinute,
		Amount: amountCoin, Price: res.VWAPPrice,
		SlippagePct: res.SlippagePct, Impact: res.Impact, Fee: fee,
	})
	return SpotReport{Execution: res, Fee: fee, USDValue: realized}, nil
}

func commitPrice(coin *market.Coin, price float64) {
	coin.Price = price
	coin.MarketCap = price * coin.CirculatingSupply
}
