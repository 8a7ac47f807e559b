package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kmacinski/vdiff/internal/config"
)

func TestCompute_Default(t *testing.T) {
	g := Compute(config.Defaults().Layout, 80, 24)

	require.Equal(t, image.Rect(0, 0, 80, 24), g.Screen)
	require.Equal(t, image.Rect(0, 0, 1, 23), g.Scroll)
	require.Equal(t, image.Rect(2, 0, 80, 23), g.List)
	require.Equal(t, image.Rect(3, 0, 79, 23), g.Text)
	require.Equal(t, image.Rect(0, 23, 80, 24), g.Status)
}

func TestCompute_NoStatusBar(t *testing.T) {
	cfg := config.Defaults().Layout
	cfg.StatusBar = false

	g := Compute(cfg, 80, 24)

	require.True(t, g.Status.Empty())
	require.Equal(t, 24, g.Text.Dy())
}

func TestCompute_Degenerate(t *testing.T) {
	g := Compute(config.Defaults().Layout, 0, 0)

	require.True(t, g.Text.Empty())
	require.True(t, g.Scroll.Empty())
}

func TestManager_Resize(t *testing.T) {
	m := NewManager(config.Defaults().Layout)

	g := m.Resize(100, 30)

	require.Equal(t, g, m.Current())
	require.Equal(t, image.Rect(0, 0, 100, 30), g.Screen)

	g = m.Resize(-4, 10)
	require.True(t, g.Screen.Empty())
}

func TestProperty_AreasStayOnScreen(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := config.LayoutConfig{
			ScrollWidth: rapid.IntRange(0, 5).Draw(rt, "scrollWidth"),
			ScrollGap:   rapid.IntRange(0, 5).Draw(rt, "gap"),
			Margin:      rapid.IntRange(0, 10).Draw(rt, "margin"),
			StatusBar:   rapid.Bool().Draw(rt, "status"),
		}
		g := Compute(cfg, rapid.IntRange(-5, 300).Draw(rt, "w"), rapid.IntRange(-5, 100).Draw(rt, "h"))

		for _, r := range []image.Rectangle{g.Scroll, g.List, g.Text, g.Status} {
			require.GreaterOrEqual(rt, r.Dx(), 0)
			require.GreaterOrEqual(rt, r.Dy(), 0)
			require.True(rt, r.In(g.Screen), "%v not in %v", r, g.Screen)
		}
		require.True(rt, g.Text.In(g.List))
	})
}
