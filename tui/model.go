// Package tui is the terminal front end: five panels over one Game,
// driven by a wall-clock tick that advances the simulation at the
// current speed setting.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/whalegame/whalegame/internal/analysis"
	"github.com/whalegame/whalegame/internal/game"
	"github.com/whalegame/whalegame/tui/panels"
	"github.com/whalegame/whalegame/tui/styles"
)

// PanelFocus identifies which panel has keyboard focus.
type PanelFocus int

const (
	FocusMarket PanelFocus = iota
	FocusChart
	FocusPositions
	FocusFeed
	FocusTrade
	focusCount
)

const tickInterval = 100 * time.Millisecond

// Model is the root TUI model.
type Model struct {
	game *game.Game

	marketPanel    *panels.MarketPanel
	chartPanel     *panels.ChartPanel
	positionsPanel *panels.PositionsPanel
	feedPanel      *panels.FeedPanel
	tradePanel     *panels.TradePanel

	focusedPanel PanelFocus
	pausedFrom   int
	lastTick     time.Time

	width  int
	height int

	statusMsg string
	ready     bool
}

// NewModel builds the TUI over a seeded game.
func NewModel(g *game.Game) *Model {
	m := &Model{
		game:           g,
		marketPanel:    panels.NewMarketPanel(g.Coins()),
		chartPanel:     panels.NewChartPanel(),
		positionsPanel: panels.NewPositionsPanel(),
		feedPanel:      panels.NewFeedPanel(),
		tradePanel:     panels.NewTradePanel(),
		focusedPanel:   FocusMarket,
		lastTick:       time.Now(),
	}
	if coins := g.Coins(); len(coins) > 0 {
		m.chartPanel.SetCoin(coins[0])
		m.tradePanel.SetCoin(coins[0])
	}
	m.setFocus(FocusMarket)
	m.refresh()
	return m
}

// Init starts the simulation tick and the news listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.marketPanel.Init(),
		m.chartPanel.Init(),
		m.positionsPanel.Init(),
		m.feedPanel.Init(),
		m.tradePanel.Init(),
		m.tick(),
		m.listenNews(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tickMsg:
		now := time.Now()
		m.game.AdvanceWall(now.Sub(m.lastTick))
		m.lastTick = now
		m.refresh()
		cmds = append(cmds, m.tick())

	case panels.NewsUpdateMsg:
		m.feedPanel.AddEvent(msg.Item, msg.Feed)
		cmds = append(cmds, m.listenNews())

	case panels.OpenOrderMsg:
		if rep, err := m.game.OpenPosition(msg.Request); err != nil {
			m.statusMsg = "❌ " + err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("✓ %s %s %s", rep.Kind, msg.Request.Symbol,
				styles.FormatUSD(msg.Request.Margin*msg.Request.Leverage))
		}
		m.refresh()

	case panels.SpotOrderMsg:
		m.statusMsg = m.runSpotOrder(msg)
		m.refresh()

	case panels.ClosePositionMsg:
		if rep, err := m.game.ClosePosition(msg.ID); err != nil {
			m.statusMsg = "❌ " + err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("✓ Closed, net %s", styles.FormatUSD(rep.NetPnL))
		}
		m.refresh()

	case panels.AddMarginMsg:
		if err := m.game.AddMargin(msg.ID, msg.Amount); err != nil {
			m.statusMsg = "❌ " + err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("✓ Added %s margin", styles.FormatUSD(msg.Amount))
		}
		m.refresh()

	case panels.StatusMsg:
		m.statusMsg = msg.Text
	}

	m.updateFocusedPanel(msg, &cmds)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// Text inputs swallow most keys; only intercept controls that can
	// never be typed into a field.
	switch msg.String() {
	case "ctrl+c":
		m.game.Close()
		return tea.Quit, true
	case "q":
		if m.focusedPanel != FocusTrade {
			m.game.Close()
			return tea.Quit, true
		}
	case "tab":
		m.setFocus((m.focusedPanel + 1) % focusCount)
		return nil, true
	case "shift+tab":
		m.setFocus((m.focusedPanel + focusCount - 1) % focusCount)
		return nil, true
	case "f1":
		m.setFocus(FocusMarket)
		return nil, true
	case "f2":
		m.setFocus(FocusChart)
		return nil, true
	case "f3":
		m.setFocus(FocusPositions)
		return nil, true
	case "f4":
		m.setFocus(FocusFeed)
		return nil, true
	case "f5":
		m.setFocus(FocusTrade)
		return nil, true
	case "+", "=":
		m.game.SetSpeedLevel(m.game.SpeedLevel() + 1)
		return nil, true
	case "-":
		m.game.SetSpeedLevel(m.game.SpeedLevel() - 1)
		return nil, true
	case " ":
		if m.focusedPanel != FocusTrade {
			m.togglePause()
			return nil, true
		}
	}
	return nil, false
}

func (m *Model) togglePause() {
	if m.game.SpeedLevel() == 0 {
		if m.pausedFrom == 0 {
			m.pausedFrom = 1
		}
		m.game.SetSpeedLevel(m.pausedFrom)
		return
	}
	m.pausedFrom = m.game.SpeedLevel()
	m.game.SetSpeedLevel(0)
}

func (m *Model) setFocus(panel PanelFocus) {
	m.focusedPanel = panel
	m.marketPanel.SetFocus(panel == FocusMarket)
	m.chartPanel.SetFocus(panel == FocusChart)
	m.positionsPanel.SetFocus(panel == FocusPositions)
	m.feedPanel.SetFocus(panel == FocusFeed)
	m.tradePanel.SetFocus(panel == FocusTrade)
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd
	switch m.focusedPanel {
	case FocusMarket:
		m.marketPanel, cmd = m.marketPanel.Update(msg)
		if sel := m.marketPanel.SelectedCoin(); sel != nil && sel != m.chartPanel.Coin() {
			m.chartPanel.SetCoin(sel)
			m.tradePanel.SetCoin(sel)
			m.chartPanel.SetReport(analysis.Analyze(sel))
		}
	case FocusChart:
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	case FocusPositions:
		m.positionsPanel, cmd = m.positionsPanel.Update(msg)
	case FocusFeed:
		m.feedPanel, cmd = m.feedPanel.Update(msg)
	case FocusTrade:
		m.tradePanel, cmd = m.tradePanel.Update(msg)
	}
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

// refresh re-derives every panel's snapshot from game state.
func (m *Model) refresh() {
	p := m.game.Player()

	equity := p.Cash
	for _, pos := range p.Futures.Positions() {
		equity += pos.Margin + pos.PnL
	}
	for _, h := range p.Portfolio {
		if coin := m.game.Coin(h.Symbol); coin != nil {
			equity += h.Amount * coin.Price
		}
	}
	m.positionsPanel.SetAccount(p.Futures.Positions(), p.Portfolio, p.Cash, equity)

	if coin := m.chartPanel.Coin(); coin != nil {
		m.chartPanel.SetReport(analysis.Analyze(coin))
	}
	m.feedPanel.SetTapes(m.game.News().LatestNews(50), m.game.News().LatestFeed(50))
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Booting exchange..."
	}

	m.marketPanel.SetFocus(m.focusedPanel == FocusMarket)
	m.chartPanel.SetFocus(m.focusedPanel == FocusChart)
	m.positionsPanel.SetFocus(m.focusedPanel == FocusPositions)
	m.feedPanel.SetFocus(m.focusedPanel == FocusFeed)
	m.tradePanel.SetFocus(m.focusedPanel == FocusTrade)

	// ┌──────────────┬──────────────────────────────┐
	// │   Market     │            Chart             │
	// ├──────────────┼───────────────┬──────────────┤
	// │   Account    │     Feed      │    Trade     │
	// └──────────────┴───────────────┴──────────────┘
	leftWidth := m.width * 2 / 5
	rightWidth := m.width - leftWidth

	topHeight := (m.height - 2) / 2
	bottomHeight := m.height - topHeight - 2

	m.marketPanel.SetSize(leftWidth, topHeight)
	m.chartPanel.SetSize(rightWidth, topHeight)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.marketPanel.View(), m.chartPanel.View())

	feedWidth := (m.width - leftWidth) / 2
	tradeWidth := m.width - leftWidth - feedWidth
	m.positionsPanel.SetSize(leftWidth, bottomHeight)
	m.feedPanel.SetSize(feedWidth, bottomHeight)
	m.tradePanel.SetSize(tradeWidth, bottomHeight)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.positionsPanel.View(), m.feedPanel.View(), m.tradePanel.View())

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow, m.renderStatusBar())
}

func (m *Model) renderStatusBar() string {
	speed := fmt.Sprintf("%.0fx", m.game.SpeedMultiplier())
	if m.game.SpeedLevel() == 0 {
		speed = "PAUSED"
	}

	left := fmt.Sprintf("%s │ Speed %s │ Cash %s",
		m.game.ClockLabel(), speed, styles.FormatUSD(m.game.Player().Cash))

	help := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.StatusBarKeyStyle.Render("F1-F5")+styles.StatusBarDescStyle.Render(" panels"),
		" │ ",
		styles.StatusBarKeyStyle.Render("+/-")+styles.StatusBarDescStyle.Render(" speed"),
		" │ ",
		styles.StatusBarKeyStyle.Render("space")+styles.StatusBarDescStyle.Render(" pause"),
		" │ ",
		styles.StatusBarKeyStyle.Render("q")+styles.StatusBarDescStyle.Render(" quit"),
	)

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}
	return styles.StatusBarStyle.Width(m.width).Render(left + " │ " + help + status)
}

func (m *Model) runSpotOrder(msg panels.SpotOrderMsg) string {
	if msg.Buy {
		rep, err := m.game.BuySpot(msg.Symbol, msg.Amount)
		if err != nil {
			return "❌ " + err.Error()
		}
		return fmt.Sprintf("✓ Bought %.6f %s @ %s",
			rep.Execution.FilledSize, msg.Symbol, styles.FormatPrice(rep.Execution.VWAPPrice))
	}
	rep, err := m.game.SellSpot(msg.Symbol, msg.Amount)
	if err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("✓ Sold for %s", styles.FormatUSD(rep.USDValue))
}

// tickMsg drives the simulation clock.
type tickMsg struct{}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *Model) listenNews() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.game.News().Events()
		if !ok {
			return nil
		}
		return panels.NewsUpdateMsg{Item: ev.Item, Feed: ev.Feed}
	}
}
