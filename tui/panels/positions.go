package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/whalegame/whalegame/internal/futures"
	"github.com/whalegame/whalegame/internal/player"
	"github.com/whalegame/whalegame/tui/styles"
)

// PositionsPanel lists open leveraged positions and spot holdings, with
// an account summary line on top.
type PositionsPanel struct {
	positions []*futures.Position
	holdings  []player.Holding
	cash      float64
	equity    float64

	selectedIndex int
	focused       bool
	width         int
	height        int
}

// NewPositionsPanel creates an empty positions panel.
func NewPositionsPanel() *PositionsPanel {
	return &PositionsPanel{}
}

// Init initializes the panel.
func (p *PositionsPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel. Enter closes the selected
// position, m tops up its margin by a tenth of cash.
func (p *PositionsPanel) Update(msg tea.Msg) (*PositionsPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if p.selectedIndex > 0 {
			p.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if p.selectedIndex < len(p.positions)-1 {
			p.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if pos := p.Selected(); pos != nil {
			id := pos.ID
			return p, func() tea.Msg { return ClosePositionMsg{ID: id} }
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("m"))):
		if pos := p.Selected(); pos != nil && pos.MarginType == futures.Isolated {
			id := pos.ID
			amount := p.cash * 0.1
			return p, func() tea.Msg { return AddMarginMsg{ID: id, Amount: amount} }
		}
	}
	return p, nil
}

// View renders the panel.
func (p *PositionsPanel) View() string {
	var content strings.Builder

	summary := fmt.Sprintf("Cash %s │ Equity %s",
		styles.FormatUSD(p.cash), styles.FormatUSD(p.equity))
	content.WriteString(styles.HeaderStyle.Render(summary))
	content.WriteString("\n\n")

	if len(p.positions) == 0 {
		content.WriteString(styles.MutedStyle.Render("No open positions"))
	} else {
		header := fmt.Sprintf("%-5s %-5s %4s %-4s %11s %11s %10s",
			"Coin", "Side", "Lev", "Type", "Entry", "Liq", "PnL")
		content.WriteString(styles.HeaderStyle.Render(header))
		content.WriteString("\n")

		for i, pos := range p.positions {
			side := styles.LongStyle.Render("LONG ")
			if pos.Direction == futures.Short {
				side = styles.ShortStyle.Render("SHORT")
			}
			marginType := "X"
			if pos.MarginType == futures.Isolated {
				marginType = "ISO"
			}
			pnlStyle := styles.PriceUpStyle
			if pos.NetPnL < 0 {
				pnlStyle = styles.PriceDownStyle
			}

			row := fmt.Sprintf("%-5s %s %3.0fx %-4s %11s %11s %s",
				pos.Symbol, side, pos.Leverage, marginType,
				styles.FormatPrice(pos.EntryPrice),
				styles.FormatPrice(pos.LiquidationPrice),
				pnlStyle.Render(fmt.Sprintf("%10s", styles.FormatUSD(pos.NetPnL))))

			if i == p.selectedIndex && p.focused {
				row = styles.SelectedRowStyle.Render(row)
			}
			content.WriteString(row)
			content.WriteString("\n")
		}
	}

	if len(p.holdings) > 0 {
		content.WriteString("\n")
		content.WriteString(styles.HeaderStyle.Render("Spot"))
		content.WriteString("\n")
		for _, h := range p.holdings {
			content.WriteString(fmt.Sprintf("%-5s %.6f @ %s\n",
				h.Symbol, h.Amount, styles.FormatPrice(h.AvgBuyPrice)))
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("💼 Account", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *PositionsPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *PositionsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetAccount refreshes the panel's account snapshot.
func (p *PositionsPanel) SetAccount(positions []*futures.Position, holdings []player.Holding, cash, equity float64) {
	p.positions = positions
	p.holdings = holdings
	p.cash = cash
	p.equity = equity
	if p.selectedIndex >= len(positions) {
		p.selectedIndex = len(positions) - 1
	}
	if p.selectedIndex < 0 {
		p.selectedIndex = 0
	}
}

// Selected returns the highlighted position, nil when none.
func (p *PositionsPanel) Selected() *futures.Position {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.positions) {
		return p.positions[p.selectedIndex]
	}
	return nil
}

// ClosePositionMsg requests closing a position at market.
type ClosePositionMsg struct {
	ID futures.PositionID
}

// AddMarginMsg requests topping up an isolated position.
type AddMarginMsg struct {
	ID     futures.PositionID
	Amount float64
}
