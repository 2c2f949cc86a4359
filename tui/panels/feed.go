package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/whalegame/whalegame/internal/market"
	"github.com/whalegame/whalegame/internal/news"
	"github.com/whalegame/whalegame/tui/styles"
)

// FeedTab selects which tape the feed panel shows.
type FeedTab uint8

const (
	TabFeed FeedTab = iota
	TabNews
)

// FeedPanel shows the social feed and the news tape, toggled with t.
type FeedPanel struct {
	tab      FeedTab
	feed     []news.FeedItem
	items    []news.Item
	maxItems int

	scrollOffset int
	focused      bool
	width        int
	height       int
}

// NewFeedPanel creates an empty feed panel.
func NewFeedPanel() *FeedPanel {
	return &FeedPanel{maxItems: 50}
}

// Init initializes the panel.
func (p *FeedPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *FeedPanel) Update(msg tea.Msg) (*FeedPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("t"))):
		if p.tab == TabFeed {
			p.tab = TabNews
		} else {
			p.tab = TabFeed
		}
		p.scrollOffset = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if p.scrollOffset > 0 {
			p.scrollOffset--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		p.scrollOffset++
	}
	return p, nil
}

// View renders the panel.
func (p *FeedPanel) View() string {
	var content strings.Builder

	visible := p.height - 5
	if visible < 1 {
		visible = 1
	}

	if p.tab == TabFeed {
		content.WriteString(p.renderFeed(visible))
	} else {
		content.WriteString(p.renderNews(visible))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	label := "🐦 Feed"
	if p.tab == TabNews {
		label = "📰 News"
	}
	title := styles.RenderTitle(label+" (t to switch)", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *FeedPanel) renderFeed(visible int) string {
	if len(p.feed) == 0 {
		return styles.MutedStyle.Render("Nothing posted yet")
	}

	// Newest last; show the tail unless scrolled up.
	start := len(p.feed) - visible - p.scrollOffset
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(p.feed) {
		end = len(p.feed)
	}

	var out strings.Builder
	for i := start; i < end; i++ {
		item := p.feed[i]
		author := styles.HeaderStyle.Render(item.Author)
		if item.Kind == news.FeedAlert {
			author = styles.AlertStyle.Render(item.Author)
		}
		clock := styles.TimeStyle.Render(market.FormatGameTime(item.GameMinute))
		text := truncate(item.Content, p.width-6)
		out.WriteString(fmt.Sprintf("%s %s\n  %s\n", author, clock, text))
	}
	return out.String()
}

func (p *FeedPanel) renderNews(visible int) string {
	if len(p.items) == 0 {
		return styles.MutedStyle.Render("No news yet")
	}

	start := len(p.items) - visible/2 - p.scrollOffset
	if start < 0 {
		start = 0
	}

	var out strings.Builder
	for i := start; i < len(p.items); i++ {
		item := p.items[i]
		headlineStyle := styles.RowStyle
		if item.Impact == news.ImpactHigh {
			headlineStyle = styles.HighImpactStyle
		}
		clock := styles.TimeStyle.Render(market.FormatGameTime(item.GameMinute))
		out.WriteString(fmt.Sprintf("%s %s\n", clock, headlineStyle.Render(truncate(item.Title, p.width-14))))
	}
	return out.String()
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// SetFocus sets the focus state of the panel.
func (p *FeedPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *FeedPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetTapes replaces both tapes from the news service.
func (p *FeedPanel) SetTapes(items []news.Item, feed []news.FeedItem) {
	p.items = items
	p.feed = feed
}

// AddEvent folds one live news event into the tapes.
func (p *FeedPanel) AddEvent(item *news.Item, post *news.FeedItem) {
	if item != nil {
		p.items = append(p.items, *item)
		if len(p.items) > p.maxItems {
			p.items = p.items[len(p.items)-p.maxItems:]
		}
	}
	if post != nil {
		p.feed = append(p.feed, *post)
		if len(p.feed) > p.maxItems {
			p.feed = p.feed[len(p.feed)-p.maxItems:]
		}
	}
}

// NewsUpdateMsg carries one live event from the news service.
type NewsUpdateMsg struct {
	Item *news.Item
	Feed *news.FeedItem
}
