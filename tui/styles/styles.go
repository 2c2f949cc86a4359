package styles

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#F59E0B") // Amber, the exchange accent
	LongColor    = lipgloss.Color("#10B981") // Green
	ShortColor   = lipgloss.Color("#EF4444") // Red
	NeutralColor = lipgloss.Color("#6B7280") // Gray

	BackgroundColor  = lipgloss.Color("#111827")
	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#F59E0B")

	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")

	AlertColor = lipgloss.Color("#F97316") // Orange for liquidation alerts
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("#374151"))
)

// Text styles
var (
	LongStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(LongColor)

	ShortStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ShortColor)

	PriceUpStyle = lipgloss.NewStyle().
			Foreground(LongColor)

	PriceDownStyle = lipgloss.NewStyle().
			Foreground(ShortColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	TimeStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	AlertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AlertColor)

	HighImpactStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Input styles
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	ToggleOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(lipgloss.Color("#374151"))

	ToggleOffStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)
)

// Chart styles
var (
	CandleUpStyle = lipgloss.NewStyle().
			Foreground(LongColor)

	CandleDownStyle = lipgloss.NewStyle().
			Foreground(ShortColor)

	ChartAxisStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ChartLabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// RenderTitle renders a panel title bar.
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// FormatUSD renders a dollar amount with K/M/B abbreviation for large
// values and sensible precision for small ones.
func FormatUSD(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	case abs >= 1:
		return fmt.Sprintf("$%.2f", v)
	default:
		return fmt.Sprintf("$%.5f", v)
	}
}

// FormatPrice renders a coin price with precision scaled to magnitude.
func FormatPrice(v float64) string {
	switch {
	case v >= 1000:
		return fmt.Sprintf("%.1f", v)
	case v >= 1:
		return fmt.Sprintf("%.3f", v)
	default:
		return fmt.Sprintf("%.6f", v)
	}
}

// FormatPct renders a signed percentage and returns the style matching
// its sign.
func FormatPct(v float64) (string, lipgloss.Style) {
	s := fmt.Sprintf("%+.2f%%", v)
	if v < 0 {
		return s, PriceDownStyle
	}
	return s, PriceUpStyle
}
