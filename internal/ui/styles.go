package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kmacinski/vdiff/internal/config"
	"github.com/kmacinski/vdiff/internal/diff"
)

// Styles holds all the lipgloss styles for the application
type Styles struct {
	// Diff line styles by kind
	Lines    map[diff.Kind]lipgloss.Style
	Selected lipgloss.Style

	// Scrollbar
	Track lipgloss.Style
	Thumb lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusBarItem lipgloss.Style

	// Modal
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	// General
	Muted lipgloss.Style
	Bold  lipgloss.Style
	Error lipgloss.Style
}

// NewStyles creates a new Styles instance with the given colors
func NewStyles(c Colors) Styles {
	lines := make(map[diff.Kind]lipgloss.Style, len(c.Kinds))
	for k, p := range c.Kinds {
		lines[k] = lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)
	}
	lines[diff.KindFileHeader] = lines[diff.KindFileHeader].Bold(true)

	return Styles{
		Lines: lines,
		Selected: lipgloss.NewStyle().
			Background(c.Selection),

		Track: lipgloss.NewStyle().
			Foreground(c.Track),
		Thumb: lipgloss.NewStyle().
			Foreground(c.Thumb),

		StatusBar: lipgloss.NewStyle().
			Background(c.StatusBg).
			Foreground(c.StatusFg),
		StatusBarItem: lipgloss.NewStyle().
			Background(c.StatusBg).
			Foreground(c.StatusFg).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Thumb).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Kinds[diff.KindFileHeader].Fg).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),
		Bold: lipgloss.NewStyle().
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(c.Kinds[diff.KindDeletion].Fg).
			Bold(true),
	}
}

// Line returns the style of a line kind.
func (s Styles) Line(k diff.Kind) lipgloss.Style {
	if st, ok := s.Lines[k]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// FromTheme resolves a theme and builds its styles.
func FromTheme(t config.ThemeConfig) (Styles, error) {
	resolved, err := t.Resolved()
	if err != nil {
		return Styles{}, err
	}
	return NewStyles(NewColors(resolved)), nil
}

// DefaultStyles returns styles with the default color palette
var DefaultStyles = NewStyles(DefaultColors)
