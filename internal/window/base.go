package window

import "github.com/kmacinski/vdiff/internal/ui"

// Base provides common functionality for windows
type Base struct {
	name   string
	styles ui.Styles
}

// NewBase creates a new base window
func NewBase(name string, styles ui.Styles) Base {
	return Base{
		name:   name,
		styles: styles,
	}
}

// Name returns the window name
func (b *Base) Name() string {
	return b.name
}

// Styles returns the window styles
func (b *Base) Styles() ui.Styles {
	return b.styles
}

// SetStyles replaces the window styles, e.g. after a theme reload
func (b *Base) SetStyles(styles ui.Styles) {
	b.styles = styles
}
