package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Name selects a colour scheme.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// Parse accepts "dark" or "light", case-insensitively.
func Parse(raw string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(raw))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return "", fmt.Errorf("unknown theme %q", raw)
}

// Toggle returns the other scheme.
func (n Name) Toggle() Name {
	if n == Light {
		return Dark
	}
	return Light
}

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	CurrentMark           *lipgloss.Style
	Error                 *lipgloss.Style
	Warning               *lipgloss.Style
	Info                  *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style

	Card         *lipgloss.Style
	SelectedCard *lipgloss.Style
	Word         *lipgloss.Style
	POS          *lipgloss.Style
	Meaning      *lipgloss.Style
	Pron         *lipgloss.Style

	DetailTitle *lipgloss.Style
	DetailBody  *lipgloss.Style
	DetailLabel *lipgloss.Style

	Question       *lipgloss.Style
	Progress       *lipgloss.Style
	Choice         *lipgloss.Style
	SelectedChoice *lipgloss.Style
	Correct        *lipgloss.Style
	Wrong          *lipgloss.Style
	Score          *lipgloss.Style
}

// palette holds the 256-colour codes one scheme is drawn with.
type palette struct {
	accent   lipgloss.Color
	text     lipgloss.Color
	strong   lipgloss.Color
	body     lipgloss.Color
	subtle   lipgloss.Color
	muted    lipgloss.Color
	surface  lipgloss.Color
	good     lipgloss.Color
	bad      lipgloss.Color
	warn     lipgloss.Color
	pos      lipgloss.Color
	pron     lipgloss.Color
	cursorFg lipgloss.Color
}

var darkPalette = palette{
	accent:   "33",
	text:     "249",
	strong:   "255",
	body:     "250",
	subtle:   "245",
	muted:    "241",
	surface:  "238",
	good:     "34",
	bad:      "196",
	warn:     "214",
	pos:      "172",
	pron:     "109",
	cursorFg: "0",
}

var lightPalette = palette{
	accent:   "25",
	text:     "238",
	strong:   "232",
	body:     "236",
	subtle:   "240",
	muted:    "244",
	surface:  "254",
	good:     "28",
	bad:      "160",
	warn:     "130",
	pos:      "94",
	pron:     "30",
	cursorFg: "255",
}

func build(p palette) Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	card := func(border lipgloss.Color) *lipgloss.Style {
		return ptr(lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1))
	}
	return Styles{
		Loading:               ptr(fg(p.accent).Italic(true)),
		Item:                  ptr(fg(p.text)),
		ItemIndicator:         ptr(fg(p.surface)),
		SelectedItemIndicator: ptr(fg(p.accent).Background(p.surface)),
		SelectedItem:          ptr(fg(p.strong).Background(p.surface).Bold(true)),
		CurrentMark:           ptr(fg(p.good).Bold(true)),
		Error:                 ptr(fg(p.bad).Bold(true)),
		Warning:               ptr(fg(p.warn)),
		Info:                  ptr(fg(p.text)),
		Header:                ptr(fg(p.subtle).Bold(true)),
		Footer:                ptr(fg(p.muted)),
		Filter:                ptr(fg(p.text)),
		FilterPrompt:          ptr(fg(p.good).Bold(true)),
		FilterPlaceholder:     ptr(fg(p.muted)),
		Cursor:                ptr(fg(p.cursorFg).Background(p.accent).Blink(true)),

		Card:         card(p.surface),
		SelectedCard: card(p.accent),
		Word:         ptr(fg(p.strong).Bold(true)),
		POS:          ptr(fg(p.pos).Italic(true)),
		Meaning:      ptr(fg(p.body)),
		Pron:         ptr(fg(p.pron)),

		DetailTitle: ptr(fg(p.subtle).Bold(true)),
		DetailBody:  ptr(fg(p.body)),
		DetailLabel: ptr(fg(p.muted)),

		Question:       ptr(fg(p.strong).Bold(true)),
		Progress:       ptr(fg(p.subtle)),
		Choice:         ptr(fg(p.text)),
		SelectedChoice: ptr(fg(p.strong).Background(p.surface)),
		Correct:        ptr(fg(p.good).Bold(true)),
		Wrong:          ptr(fg(p.bad).Bold(true)),
		Score:          ptr(fg(p.accent).Bold(true)),
	}
}

var (
	darkStyles  = build(darkPalette)
	lightStyles = build(lightPalette)
)

// Default exposes the dark style set.
func Default() *Styles {
	return &darkStyles
}

// For returns the style set for n. Unknown names get the dark set.
func For(n Name) *Styles {
	if n == Light {
		return &lightStyles
	}
	return &darkStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
