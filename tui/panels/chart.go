package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/whalegame/whalegame/internal/analysis"
	"github.com/whalegame/whalegame/internal/market"
	"github.com/whalegame/whalegame/tui/styles"
)

// ChartPanel renders the selected coin's candles at a switchable
// timeframe, with a technical analysis strip underneath.
type ChartPanel struct {
	coin      *market.Coin
	timeframe market.TimeFrame
	report    analysis.Report

	focused bool
	width   int
	height  int
}

// NewChartPanel creates an empty chart panel at the base timeframe.
func NewChartPanel() *ChartPanel {
	return &ChartPanel{timeframe: market.TF15m}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel. Keys 1-4 switch timeframe.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}
	switch key.String() {
	case "1":
		p.timeframe = market.TF15m
	case "2":
		p.timeframe = market.TF1H
	case "3":
		p.timeframe = market.TF4H
	case "4":
		p.timeframe = market.TF1D
	}
	return p, nil
}

// View renders the panel.
func (p *ChartPanel) View() string {
	name := "No coin selected"
	if p.coin != nil {
		name = fmt.Sprintf("%s [%s]", p.coin.Symbol, p.timeframe)
	}

	var content strings.Builder
	if p.coin == nil || len(p.coin.History) == 0 {
		content.WriteString(styles.MutedStyle.Render("No candles yet..."))
	} else {
		candles := market.ResampleCandles(p.coin.History, p.timeframe)
		content.WriteString(p.renderChart(p.width-4, p.height-8, candles))
		content.WriteString("\n")
		content.WriteString(p.renderAnalysis())
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📉 Chart - "+name, p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *ChartPanel) renderChart(width, height int, candles []market.Candle) string {
	if len(candles) == 0 {
		return ""
	}

	// Reserve space for the price axis.
	chartWidth := width - 11
	if chartWidth < 10 {
		chartWidth = 10
	}
	if height < 5 {
		height = 5
	}

	// Two columns per candle: bar plus gap.
	toShow := chartWidth / 2
	if toShow < 1 {
		toShow = 1
	}
	if toShow > len(candles) {
		toShow = len(candles)
	}
	display := candles[len(candles)-toShow:]

	minPrice := display[0].Low
	maxPrice := display[0].High
	for _, c := range display {
		if c.Low < minPrice {
			minPrice = c.Low
		}
		if c.High > maxPrice {
			maxPrice = c.High
		}
	}
	priceRange := maxPrice - minPrice
	if priceRange <= 0 {
		priceRange = maxPrice * 0.01
		if priceRange <= 0 {
			priceRange = 1
		}
	}
	minPrice -= priceRange * 0.1
	maxPrice += priceRange * 0.1

	var out strings.Builder
	for row := 0; row < height; row++ {
		price := rowPrice(row, minPrice, maxPrice, height)
		out.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("%9s │", styles.FormatPrice(price))))

		for _, c := range display {
			ch := candleChar(c, price, (maxPrice-minPrice)/float64(height*2))
			style := styles.CandleUpStyle
			if c.Close < c.Open {
				style = styles.CandleDownStyle
			}
			out.WriteString(style.Render(string(ch)))
			out.WriteString(" ")
		}
		out.WriteString("\n")
	}

	out.WriteString(styles.ChartAxisStyle.Render("──────────┴"))
	for range display {
		out.WriteString(styles.ChartAxisStyle.Render("──"))
	}
	if len(display) > 0 {
		out.WriteString("\n")
		first := display[0].Time
		last := display[len(display)-1].Time
		gap := chartWidth - len(first) - len(last)
		if gap < 1 {
			gap = 1
		}
		out.WriteString(styles.ChartLabelStyle.Render(
			"           " + first + strings.Repeat(" ", gap) + last))
	}
	return out.String()
}

func (p *ChartPanel) renderAnalysis() string {
	r := p.report
	signal := styles.MutedStyle.Render(r.Signal.String())
	switch r.Signal {
	case analysis.StrongBuy, analysis.Buy:
		signal = styles.LongStyle.Render(r.Signal.String())
	case analysis.StrongSell, analysis.Sell:
		signal = styles.ShortStyle.Render(r.Signal.String())
	}
	return styles.ChartLabelStyle.Render(fmt.Sprintf(
		"RSI %.1f │ MACD %+.2f │ F&G %.0f │ ", r.RSI, r.MACD.Histogram, r.FearGreed)) + signal
}

// candleChar picks the glyph for one candle at one price row: a thick
// bar through the body, a thin line through the wick.
func candleChar(c market.Candle, price, tolerance float64) rune {
	bodyTop, bodyBottom := c.Open, c.Close
	if c.Close > c.Open {
		bodyTop, bodyBottom = c.Close, c.Open
	}
	switch {
	case price <= bodyTop+tolerance && price >= bodyBottom-tolerance:
		return '┃'
	case price <= c.High+tolerance && price > bodyTop:
		return '│'
	case price >= c.Low-tolerance && price < bodyBottom:
		return '│'
	default:
		return ' '
	}
}

func rowPrice(row int, minPrice, maxPrice float64, height int) float64 {
	if height <= 1 {
		return minPrice
	}
	ratio := float64(row) / float64(height-1)
	return maxPrice - ratio*(maxPrice-minPrice)
}

// SetFocus sets the focus state of the panel.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetCoin switches the charted coin.
func (p *ChartPanel) SetCoin(coin *market.Coin) {
	p.coin = coin
}

// SetReport updates the analysis strip.
func (p *ChartPanel) SetReport(r analysis.Report) {
	p.report = r
}

// Coin returns the charted coin, nil when unset.
func (p *ChartPanel) Coin() *market.Coin {
	return p.coin
}
