package ui

import "github.com/charmbracelet/lipgloss"

// lorefind's palette: parchment, ink and a little arcane violet.
var (
	// Primary colors
	Parchment = lipgloss.Color("#E8D8B0")
	Amber     = lipgloss.Color("#FFBF00")
	Violet    = lipgloss.Color("#9B5DE5")
	Teal      = lipgloss.Color("#2EC4B6")
	Crimson   = lipgloss.Color("#E0115F")
	Sapphire  = lipgloss.Color("#0F52BA")
	Dim       = lipgloss.Color("#666666")
	Bright    = lipgloss.Color("#FFFFFF")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Violet)

	Success = lipgloss.NewStyle().
		Foreground(Teal)

	Error = lipgloss.NewStyle().
		Foreground(Crimson)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Info = lipgloss.NewStyle().
		Foreground(Sapphire)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	// Component styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)

	Highlight = lipgloss.NewStyle().
			Foreground(Parchment).
			Bold(true)
)

// Icon constants.
const (
	IconBook   = "📖 "
	IconScroll = "📜 "
	IconSearch = "🔎 "
	IconWarn   = "⚠️ "
	IconError  = "✗ "
	IconOk     = "✓ "
	IconArrow  = "→"
	IconDot    = "·"
)
