package panels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/whalegame/whalegame/internal/futures"
	"github.com/whalegame/whalegame/internal/market"
	"github.com/whalegame/whalegame/tui/styles"
)

// TradeField is the currently focused input field.
type TradeField int

const (
	FieldMode TradeField = iota
	FieldSide
	FieldMarginType
	FieldAmount
	FieldLeverage
	FieldTakeProfit
	FieldStopLoss
	FieldSubmit
	fieldCount
)

// TradeMode selects the order surface.
type TradeMode int

const (
	ModeFutures TradeMode = iota
	ModeSpotBuy
	ModeSpotSell
)

func (m TradeMode) String() string {
	switch m {
	case ModeSpotBuy:
		return "SPOT BUY"
	case ModeSpotSell:
		return "SPOT SELL"
	default:
		return "FUTURES"
	}
}

// TradePanel is the order entry form for futures and spot orders on the
// selected coin.
type TradePanel struct {
	coin *market.Coin

	mode       TradeMode
	side       futures.Direction
	marginType futures.MarginType

	amountInput   textinput.Model
	leverageInput textinput.Model
	tpInput       textinput.Model
	slInput       textinput.Model

	currentField TradeField
	focused      bool
	width        int
	height       int
}

// NewTradePanel creates the order entry form.
func NewTradePanel() *TradePanel {
	amount := textinput.New()
	amount.Placeholder = "Margin USD"
	amount.Width = 12
	amount.CharLimit = 12

	leverage := textinput.New()
	leverage.Placeholder = "Leverage"
	leverage.Width = 8
	leverage.CharLimit = 4

	tp := textinput.New()
	tp.Placeholder = "TP (optional)"
	tp.Width = 12
	tp.CharLimit = 12

	sl := textinput.New()
	sl.Placeholder = "SL (optional)"
	sl.Width = 12
	sl.CharLimit = 12

	return &TradePanel{
		mode:          ModeFutures,
		side:          futures.Long,
		marginType:    futures.Isolated,
		amountInput:   amount,
		leverageInput: leverage,
		tpInput:       tp,
		slInput:       sl,
		currentField:  FieldAmount,
	}
}

// Init initializes the panel.
func (p *TradePanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the panel.
func (p *TradePanel) Update(msg tea.Msg) (*TradePanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, p.updateInputs(msg)
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down"))):
		p.moveField(1)
		return p, nil
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up"))):
		p.moveField(-1)
		return p, nil
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "right"))):
		p.toggleField()
		return p, nil
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if p.currentField == FieldSubmit {
			return p, p.submit()
		}
		p.moveField(1)
		return p, nil
	}

	return p, p.updateInputs(msg)
}

func (p *TradePanel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch p.currentField {
	case FieldAmount:
		p.amountInput, cmd = p.amountInput.Update(msg)
	case FieldLeverage:
		p.leverageInput, cmd = p.leverageInput.Update(msg)
	case FieldTakeProfit:
		p.tpInput, cmd = p.tpInput.Update(msg)
	case FieldStopLoss:
		p.slInput, cmd = p.slInput.Update(msg)
	}
	return cmd
}

func (p *TradePanel) moveField(delta int) {
	for {
		p.currentField = TradeField((int(p.currentField) + delta + int(fieldCount)) % int(fieldCount))
		if p.fieldEnabled(p.currentField) {
			break
		}
	}
	p.syncFocus()
}

// Spot orders have no side toggle, margin type, leverage or exits.
func (p *TradePanel) fieldEnabled(f TradeField) bool {
	if p.mode == ModeFutures {
		return true
	}
	switch f {
	case FieldSide, FieldMarginType, FieldLeverage, FieldTakeProfit, FieldStopLoss:
		return false
	}
	return true
}

func (p *TradePanel) toggleField() {
	switch p.currentField {
	case FieldMode:
		p.mode = (p.mode + 1) % 3
		if !p.fieldEnabled(p.currentField) {
			p.currentField = FieldMode
		}
	case FieldSide:
		if p.side == futures.Long {
			p.side = futures.Short
		} else {
			p.side = futures.Long
		}
	case FieldMarginType:
		if p.marginType == futures.Cross {
			p.marginType = futures.Isolated
		} else {
			p.marginType = futures.Cross
		}
	}
}

func (p *TradePanel) syncFocus() {
	p.amountInput.Blur()
	p.leverageInput.Blur()
	p.tpInput.Blur()
	p.slInput.Blur()
	switch p.currentField {
	case FieldAmount:
		p.amountInput.Focus()
	case FieldLeverage:
		p.leverageInput.Focus()
	case FieldTakeProfit:
		p.tpInput.Focus()
	case FieldStopLoss:
		p.slInput.Focus()
	}
}

func (p *TradePanel) submit() tea.Cmd {
	if p.coin == nil {
		return nil
	}
	symbol := p.coin.Symbol

	amount, err := strconv.ParseFloat(strings.TrimSpace(p.amountInput.Value()), 64)
	if err != nil || amount <= 0 {
		return statusCmd("invalid amount")
	}

	if p.mode == ModeSpotBuy {
		return func() tea.Msg { return SpotOrderMsg{Symbol: symbol, Buy: true, Amount: amount} }
	}
	if p.mode == ModeSpotSell {
		return func() tea.Msg { return SpotOrderMsg{Symbol: symbol, Buy: false, Amount: amount} }
	}

	leverage, err := strconv.ParseFloat(strings.TrimSpace(p.leverageInput.Value()), 64)
	if err != nil || leverage < 1 {
		return statusCmd("invalid leverage")
	}
	tp, _ := strconv.ParseFloat(strings.TrimSpace(p.tpInput.Value()), 64)
	sl, _ := strconv.ParseFloat(strings.TrimSpace(p.slInput.Value()), 64)

	req := futures.OpenRequest{
		Symbol:     symbol,
		Direction:  p.side,
		MarginType: p.marginType,
		Margin:     amount,
		Leverage:   leverage,
		TakeProfit: tp,
		StopLoss:   sl,
	}
	return func() tea.Msg { return OpenOrderMsg{Request: req} }
}

// View renders the panel.
func (p *TradePanel) View() string {
	symbol := "-"
	if p.coin != nil {
		symbol = p.coin.Symbol
	}

	var content strings.Builder
	content.WriteString(p.renderToggle(FieldMode, "Mode", p.mode.String()))
	if p.mode == ModeFutures {
		content.WriteString("  ")
		content.WriteString(p.renderToggle(FieldSide, "Side", p.side.String()))
		content.WriteString("  ")
		content.WriteString(p.renderToggle(FieldMarginType, "Margin", p.marginType.String()))
	}
	content.WriteString("\n\n")

	amountLabel := "Margin"
	if p.mode == ModeSpotBuy {
		amountLabel = "USD"
	} else if p.mode == ModeSpotSell {
		amountLabel = symbol
	}
	content.WriteString(styles.LabelStyle.Render(amountLabel+": ") + p.amountInput.View())
	if p.mode == ModeFutures {
		content.WriteString("  " + styles.LabelStyle.Render("Lev: ") + p.leverageInput.View())
		content.WriteString("\n")
		content.WriteString(styles.LabelStyle.Render("TP: ") + p.tpInput.View())
		content.WriteString("  " + styles.LabelStyle.Render("SL: ") + p.slInput.View())
	}
	content.WriteString("\n\n")

	submit := styles.ToggleOffStyle.Render("[ Submit ]")
	if p.currentField == FieldSubmit {
		submit = styles.ToggleOnStyle.Render("[ Submit ]")
	}
	content.WriteString(submit)

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("⚡ Trade - %s", symbol), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *TradePanel) renderToggle(f TradeField, label, value string) string {
	style := styles.ToggleOffStyle
	if p.currentField == f {
		style = styles.ToggleOnStyle
	}
	return styles.LabelStyle.Render(label+": ") + style.Render("< "+value+" >")
}

// SetFocus sets the focus state of the panel.
func (p *TradePanel) SetFocus(focused bool) {
	p.focused = focused
	if !focused {
		p.amountInput.Blur()
		p.leverageInput.Blur()
		p.tpInput.Blur()
		p.slInput.Blur()
		return
	}
	p.syncFocus()
}

// SetSize sets the panel dimensions.
func (p *TradePanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetCoin switches the coin the form trades.
func (p *TradePanel) SetCoin(coin *market.Coin) {
	p.coin = coin
}

func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: msg} }
}

// OpenOrderMsg requests a leveraged open.
type OpenOrderMsg struct {
	Request futures.OpenRequest
}

// SpotOrderMsg requests a spot market order. Amount is USD for buys,
// coin units for sells.
type SpotOrderMsg struct {
	Symbol string
	Buy    bool
	Amount float64
}

// StatusMsg surfaces a transient message on the status bar.
type StatusMsg struct {
	Text string
}
