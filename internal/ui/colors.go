package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kmacinski/vdiff/internal/config"
	"github.com/kmacinski/vdiff/internal/diff"
)

// Pair is the background/foreground color of one line kind
type Pair struct {
	Bg lipgloss.TerminalColor
	Fg lipgloss.TerminalColor
}

// Colors defines the color palette for the application
type Colors struct {
	Kinds     map[diff.Kind]Pair
	Track     lipgloss.TerminalColor
	Thumb     lipgloss.TerminalColor
	Selection lipgloss.TerminalColor
	StatusBg  lipgloss.TerminalColor
	StatusFg  lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
}

// color maps an empty string to the terminal default.
func color(s string) lipgloss.TerminalColor {
	if s == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(s)
}

func pair(kc config.KindColors) Pair {
	return Pair{Bg: color(kc.Bg), Fg: color(kc.Fg)}
}

// NewColors builds a palette from a resolved theme
func NewColors(t config.ThemeConfig) Colors {
	return Colors{
		Kinds: map[diff.Kind]Pair{
			diff.KindFileHeader:    pair(t.File),
			diff.KindHunkSeparator: pair(t.Hunk),
			diff.KindAddition:      pair(t.Add),
			diff.KindDeletion:      pair(t.Del),
			diff.KindContext:       pair(t.Context),
		},
		Track:     color(t.Track),
		Thumb:     color(t.Thumb),
		Selection: color(t.Selection),
		StatusBg:  color(t.StatusBar.Bg),
		StatusFg:  color(t.StatusBar.Fg),
		Muted:     color(t.Muted),
	}
}

// DefaultColors returns the default color palette
var DefaultColors = NewColors(config.Presets["dark"])
