package layout

import (
	"image"

	"github.com/kmacinski/vdiff/internal/config"
)

// Geometry holds the screen areas of the viewer.
//
//	+--+-+------------------------+
//	|tr|g| m |     text       | m |
//	|ac|a|   |                |   |
//	|k |p|   |                |   |
//	+--+-+------------------------+
//	| status bar                  |
//	+-----------------------------+
type Geometry struct {
	Screen image.Rectangle
	Scroll image.Rectangle // scrollbar track
	List   image.Rectangle // everything right of the track and gap
	Text   image.Rectangle // List inset by the horizontal margin
	Status image.Rectangle // empty when the status bar is off
}

// Manager computes the geometry for the current terminal size
type Manager struct {
	cfg     config.LayoutConfig
	current Geometry
}

// NewManager creates a new layout manager
func NewManager(cfg config.LayoutConfig) *Manager {
	return &Manager{cfg: cfg}
}

// Resize updates the layout dimensions
func (m *Manager) Resize(width, height int) Geometry {
	m.current = Compute(m.cfg, width, height)
	return m.current
}

// Current returns the last computed geometry
func (m *Manager) Current() Geometry {
	return m.current
}

// Compute splits a width x height screen into the viewer's areas. Degenerate
// sizes yield empty rectangles, never negative ones.
func Compute(cfg config.LayoutConfig, width, height int) Geometry {
	screen := image.Rect(0, 0, max(0, width), max(0, height))

	body := screen
	var status image.Rectangle
	if cfg.StatusBar && screen.Dy() > 1 {
		body.Max.Y--
		status = image.Rect(screen.Min.X, body.Max.Y, screen.Max.X, screen.Max.Y)
	}

	scroll := body
	scroll.Max.X = min(body.Max.X, body.Min.X+cfg.ScrollWidth)

	list := body
	list.Min.X = min(body.Max.X, scroll.Max.X+cfg.ScrollGap)

	text := list
	text.Min.X = min(list.Max.X, list.Min.X+cfg.Margin)
	text.Max.X = max(text.Min.X, list.Max.X-cfg.Margin)

	return Geometry{
		Screen: screen,
		Scroll: scroll,
		List:   list,
		Text:   text,
		Status: status,
	}
}
