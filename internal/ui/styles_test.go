package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/kmacinski/vdiff/internal/config"
	"github.com/kmacinski/vdiff/internal/diff"
)

func TestNewColors_EveryKindHasAPair(t *testing.T) {
	c := NewColors(config.Presets["light"])

	for _, k := range diff.Kinds {
		_, ok := c.Kinds[k]
		require.True(t, ok, "kind %s has no colors", k)
	}
	require.Equal(t, lipgloss.Color("#e6ffed"), c.Kinds[diff.KindAddition].Bg)
	require.Equal(t, lipgloss.Color("#ffeef0"), c.Kinds[diff.KindDeletion].Bg)
}

func TestNewColors_EmptyIsNoColor(t *testing.T) {
	c := NewColors(config.Presets["dark"])

	require.Equal(t, lipgloss.NoColor{}, c.Kinds[diff.KindContext].Bg)
}

func TestFromTheme(t *testing.T) {
	s, err := FromTheme(config.ThemeConfig{Preset: "light", Add: config.KindColors{Fg: "#112233"}})
	require.NoError(t, err)

	require.Equal(t, lipgloss.Color("#112233"), s.Line(diff.KindAddition).GetForeground())
	require.True(t, s.Line(diff.KindFileHeader).GetBold())

	_, err = FromTheme(config.ThemeConfig{Preset: "nope"})
	require.Error(t, err)
}

func TestStyles_LineUnknownKind(t *testing.T) {
	require.NotPanics(t, func() {
		_ = DefaultStyles.Line(diff.Kind(99)).Render("x")
	})
}
