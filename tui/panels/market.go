package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/whalegame/whalegame/internal/market"
	"github.com/whalegame/whalegame/tui/styles"
)

// MarketPanel displays the live coin table: price, 24h change, funding
// rate and volume per coin.
type MarketPanel struct {
	coins         []*market.Coin
	selectedIndex int
	focused       bool
	width         int
	height        int
}

// NewMarketPanel creates a market panel over the live coin set.
func NewMarketPanel(coins []*market.Coin) *MarketPanel {
	return &MarketPanel{coins: coins}
}

// Init initializes the panel.
func (p *MarketPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *MarketPanel) Update(msg tea.Msg) (*MarketPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selectedIndex > 0 {
				p.selectedIndex--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selectedIndex < len(p.coins)-1 {
				p.selectedIndex++
			}
		}
	}
	return p, nil
}

// View renders the panel.
func (p *MarketPanel) View() string {
	var content strings.Builder

	header := fmt.Sprintf("%-6s %12s %9s %9s %9s",
		"Coin", "Price", "24h", "Funding", "Volume")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	for i, c := range p.coins {
		pct, pctStyle := styles.FormatPct(c.Change24h)
		funding := fmt.Sprintf("%+.4f%%", c.CurrentFundingRate*100)
		fundingStyle := styles.MutedStyle
		if c.FundingExtremeDuration > 0 {
			fundingStyle = styles.AlertStyle
		}

		row := fmt.Sprintf("%-6s %12s %s %s %9s",
			c.Symbol,
			styles.FormatPrice(c.Price),
			pctStyle.Render(fmt.Sprintf("%9s", pct)),
			fundingStyle.Render(fmt.Sprintf("%9s", funding)),
			styles.FormatUSD(c.Volume))

		if i == p.selectedIndex && p.focused {
			row = styles.SelectedRowStyle.Render(row)
		}
		content.WriteString(row)
		if i < len(p.coins)-1 {
			content.WriteString("\n")
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📈 Market", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *MarketPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *MarketPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SelectedCoin returns the currently highlighted coin.
func (p *MarketPanel) SelectedCoin() *market.Coin {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.coins) {
		return p.coins[p.selectedIndex]
	}
	return nil
}

// CoinSelectedMsg is sent when the market selection changes.
type CoinSelectedMsg struct {
	Coin *market.Coin
}
