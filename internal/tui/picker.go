package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rnwolfe/lorefind/internal/fuzzy"
	"github.com/rnwolfe/lorefind/internal/ui"
)

// Item is the interface that list items must implement for the picker.
type Item interface {
	// FilterValue returns the string used for fuzzy matching.
	FilterValue() string
	// Title returns the main display text.
	Title() string
	// Description returns optional secondary text (can be empty).
	Description() string
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithTitle sets the heading displayed above the picker.
func WithTitle(title string) PickerOption {
	return func(p *Picker) { p.title = title }
}

// WithPrompt sets the search prompt character(s).
func WithPrompt(prompt string) PickerOption {
	return func(p *Picker) { p.prompt = prompt }
}

// WithHeight sets the maximum visible items (0 = auto).
func WithHeight(h int) PickerOption {
	return func(p *Picker) { p.height = h }
}

// WithThreshold sets the match threshold passed to the fuzzy matcher.
func WithThreshold(t float64) PickerOption {
	return func(p *Picker) { p.threshold = t }
}

// WithQuery pre-fills the search box.
func WithQuery(q string) PickerOption {
	return func(p *Picker) { p.query = q }
}

// Picker is a fuzzy-search list selector built on Bubbletea.
// Use Run() for the common case, or create a Picker and drive it manually.
type Picker struct {
	title     string
	prompt    string
	height    int
	threshold float64

	items    []Item
	matcher  *fuzzy.Matcher
	filtered []scored
	query    string
	cursor   int
	offset   int // viewport scroll offset
	chosen   Item
	canceled bool

	termWidth  int
	termHeight int
}

type scored struct {
	item  Item
	score float64
}

// NewPicker creates a Picker with the given items and options.
func NewPicker(items []Item, opts ...PickerOption) *Picker {
	p := &Picker{
		prompt:     "> ",
		height:     10,
		threshold:  fuzzy.DefaultThreshold,
		items:      items,
		termWidth:  80,
		termHeight: 24,
	}
	for _, opt := range opts {
		opt(p)
	}

	values := make([]string, len(items))
	for i, item := range items {
		values[i] = item.FilterValue()
	}
	p.matcher = fuzzy.New(fuzzy.Strings(values), fuzzy.WithThreshold(p.threshold))
	p.applyFilter()
	return p
}

// Run is the convenience entry point: show a picker and return the selected item.
// Returns nil and no error if the user canceled.
func Run(items []Item, opts ...PickerOption) (Item, error) {
	p := NewPicker(items, opts...)
	prog := tea.NewProgram(p, tea.WithAltScreen())
	m, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	result := m.(*Picker)
	if result.canceled {
		return nil, nil
	}
	return result.chosen, nil
}

// IsTTY returns true when stdin is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// --- Bubbletea model implementation ---

func (p *Picker) Init() tea.Cmd {
	return nil
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.termWidth = msg.Width
		p.termHeight = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.canceled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.filtered) > 0 {
				p.chosen = p.filtered[p.cursor].item
			}
			return p, tea.Quit

		case tea.KeyUp, tea.KeyCtrlP:
			if p.cursor > 0 {
				p.cursor--
				if p.cursor < p.offset {
					p.offset = p.cursor
				}
			}
			return p, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if p.cursor < len(p.filtered)-1 {
				p.cursor++
				vis := p.visibleHeight()
				if p.cursor >= p.offset+vis {
					p.offset = p.cursor - vis + 1
				}
			}
			return p, nil

		case tea.KeyBackspace:
			if r := []rune(p.query); len(r) > 0 {
				p.query = string(r[:len(r)-1])
				p.applyFilter()
			}
			return p, nil

		case tea.KeyCtrlU:
			p.query = ""
			p.applyFilter()
			return p, nil

		case tea.KeyRunes, tea.KeySpace:
			p.query += string(msg.Runes)
			if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
				p.query += " "
			}
			p.applyFilter()
			return p, nil
		}
	}
	return p, nil
}

func (p *Picker) View() string {
	var b strings.Builder

	if p.title != "" {
		b.WriteString("  " + ui.Title.Render(p.title) + "\n\n")
	}

	cursor := lipgloss.NewStyle().Foreground(ui.Violet).Bold(true).Render(p.prompt)
	b.WriteString("  " + cursor + p.query + blinkCursor() + "\n\n")

	vis := p.visibleHeight()
	end := min(p.offset+vis, len(p.filtered))

	if len(p.filtered) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matches") + "\n")
	} else {
		for i := p.offset; i < end; i++ {
			b.WriteString(p.renderItem(p.filtered[i], i == p.cursor) + "\n")
		}
	}

	b.WriteString("\n")
	status := ui.Muted.Render(fmt.Sprintf("  %d/%d", len(p.filtered), len(p.items)))
	help := ui.Muted.Render(" · ↑↓ navigate · enter select · esc cancel")
	b.WriteString(status + help + "\n")

	return b.String()
}

// --- internal helpers ---

func (p *Picker) visibleHeight() int {
	h := p.height
	if h <= 0 || h > p.termHeight-6 {
		h = p.termHeight - 6
	}
	if h < 3 {
		h = 3
	}
	return h
}

// applyFilter re-runs the search. An empty query lists every item.
func (p *Picker) applyFilter() {
	p.filtered = p.filtered[:0]
	if p.query == "" {
		for _, item := range p.items {
			p.filtered = append(p.filtered, scored{item: item})
		}
	} else {
		for _, m := range p.matcher.Search(p.query) {
			p.filtered = append(p.filtered, scored{item: p.items[m.Index], score: m.Score})
		}
	}
	p.cursor = 0
	p.offset = 0
}

func (p *Picker) renderItem(s scored, selected bool) string {
	pointer := "  "
	titleStyle := lipgloss.NewStyle()

	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		titleStyle = ui.Highlight
	}

	title := titleStyle.Render(s.item.Title())
	desc := s.item.Description()
	if desc != "" {
		room := p.termWidth - lipgloss.Width(title) - 8
		desc = "  " + ui.Muted.Render(ui.Truncate(desc, room))
	}

	line := "  " + pointer + title + desc
	if p.query != "" {
		line += "  " + ui.Muted.Render(fmt.Sprintf("%.2f", s.score))
	}
	return line
}

func blinkCursor() string {
	return lipgloss.NewStyle().Foreground(ui.Violet).Render("▎")
}
