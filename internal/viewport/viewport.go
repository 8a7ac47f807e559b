// Package viewport holds the scroll and pan state over a parsed diff and maps
// pointer positions to lines. All units are abstract: cells in a terminal,
// pixels in a graphical host.
package viewport

import (
	"image"

	"github.com/kmacinski/vdiff/internal/diff"
)

// Metrics describes how text is measured by the host.
type Metrics struct {
	LineHeight    int // height of one row
	SpaceWidth    int // width of one column
	EllipsisWidth int // width of the truncation marker
	TextMargin    int // horizontal inset of text inside the text area
}

// CellMetrics returns metrics for a character-cell terminal.
func CellMetrics(margin int) Metrics {
	return Metrics{
		LineHeight:    1,
		SpaceWidth:    1,
		EllipsisWidth: diff.DisplayWidth(Ellipsis),
		TextMargin:    margin,
	}
}

// Ellipsis marks a line cut at the right edge.
const Ellipsis = "..."

// Row is a visible line paired with its absolute index.
type Row struct {
	Index int
	Line  diff.Line
}

// Viewport owns the vertical offset and horizontal pan over a document.
// It is not safe for concurrent use; the event loop is its only owner.
type Viewport struct {
	doc     *diff.Document
	metrics Metrics

	text       image.Rectangle
	lineHeight int
	rows       int

	offset int
	pan    int
}

// New returns a viewport over doc. Layout must be called before it shows anything.
func New(doc *diff.Document, m Metrics) *Viewport {
	if m.LineHeight <= 0 {
		m.LineHeight = 1
	}
	if m.SpaceWidth <= 0 {
		m.SpaceWidth = 1
	}
	return &Viewport{doc: doc, metrics: m, lineHeight: m.LineHeight}
}

// Document returns the document being viewed.
func (v *Viewport) Document() *diff.Document {
	return v.doc
}

// LineCount returns the number of lines in the document.
func (v *Viewport) LineCount() int {
	return v.doc.Len()
}

// Offset returns the index of the first visible line.
func (v *Viewport) Offset() int {
	return v.offset
}

// Pan returns the horizontal pan offset.
func (v *Viewport) Pan() int {
	return v.pan
}

// VisibleRows returns how many lines fit in the text area.
func (v *Viewport) VisibleRows() int {
	return v.rows
}

// Layout recomputes the visible rows for a new text area and re-clamps
// both offsets. Call it on every resize before drawing.
func (v *Viewport) Layout(text image.Rectangle, lineHeight int) {
	v.text = text.Canon()
	if lineHeight > 0 {
		v.lineHeight = lineHeight
	}
	v.rows = max(0, v.text.Dy()/v.lineHeight)
	v.clampOffset()
	v.clampPan()
}

// maxOffset is the largest first-line index. One past a full last page is
// allowed, so the final page may be partial.
func (v *Viewport) maxOffset() int {
	return max(0, v.LineCount()-max(v.rows, 1)+1)
}

func (v *Viewport) clampOffset() {
	v.offset = max(0, min(v.offset, v.maxOffset()))
}

// ScrollBy moves the first visible line by delta. Scrolling up at the top or
// down once the last line is on screen does nothing.
func (v *Viewport) ScrollBy(delta int) {
	if delta < 0 && v.offset <= 0 {
		return
	}
	if delta > 0 && v.offset+v.rows > v.LineCount() {
		return
	}
	switch {
	case delta > 0 && v.offset > v.maxOffset()-delta:
		v.offset = v.maxOffset()
	case delta < 0 && v.offset < -delta:
		v.offset = 0
	default:
		v.offset += delta
	}
	v.clampOffset()
}

// ScrollToTop jumps to the first line.
func (v *Viewport) ScrollToTop() {
	if v.offset <= 0 {
		return
	}
	v.offset = 0
}

// ScrollToBottom jumps to the last page.
func (v *Viewport) ScrollToBottom() {
	if v.offset+v.rows > v.LineCount() {
		return
	}
	v.offset = v.maxOffset()
}

// PageUp scrolls up by one page.
func (v *Viewport) PageUp() {
	v.ScrollBy(-max(1, v.rows))
}

// PageDown scrolls down by one page.
func (v *Viewport) PageDown() {
	v.ScrollBy(max(1, v.rows))
}

// JumpTo sets the first visible line directly, clamped to the valid range.
func (v *Viewport) JumpTo(offset int) {
	v.offset = offset
	v.clampOffset()
}

// AtTop reports whether the first line is visible.
func (v *Viewport) AtTop() bool {
	return v.offset == 0
}

// AtBottom reports whether further downward scrolling is a no-op.
func (v *Viewport) AtBottom() bool {
	return v.offset+v.rows > v.LineCount() || v.offset >= v.maxOffset()
}

// MaxPan is the largest pan that still leaves the widest line reachable.
// It is zero when every line fits.
func (v *Viewport) MaxPan() int {
	m := v.metrics
	width := m.TextMargin + v.doc.MaxLineLength()*m.SpaceWidth + 2*m.EllipsisWidth
	return max(0, width-v.text.Dx())
}

func (v *Viewport) clampPan() {
	maxPan := v.MaxPan()
	if maxPan <= 0 {
		v.pan = 0
		return
	}
	v.pan = max(0, min(v.pan, maxPan))
}

// PanBy shifts the text horizontally by a number of columns.
func (v *Viewport) PanBy(columns int) {
	v.pan += columns * v.metrics.SpaceWidth
	v.clampPan()
}

// PanColumns returns the pan offset in whole columns.
func (v *Viewport) PanColumns() int {
	return v.pan / v.metrics.SpaceWidth
}

// LineIndexAtPoint resolves a pointer position to an absolute line index.
// It reports false outside the text area or past the last line.
func (v *Viewport) LineIndexAtPoint(p image.Point) (int, bool) {
	if !p.In(v.text) {
		return 0, false
	}
	n := (p.Y - v.text.Min.Y) / v.lineHeight
	if n >= v.rows {
		return 0, false
	}
	if v.offset+n >= v.LineCount() {
		return 0, false
	}
	return v.offset + n, true
}

// RowRect returns the rectangle of the i-th visible row.
func (v *Viewport) RowRect(i int) image.Rectangle {
	top := v.text.Min.Y + i*v.lineHeight
	return image.Rect(v.text.Min.X, top, v.text.Max.X, top+v.lineHeight)
}

// VisibleSlice returns the lines the renderer must draw, top to bottom.
func (v *Viewport) VisibleSlice() []Row {
	n := min(v.rows, v.LineCount()-v.offset)
	if n <= 0 {
		return nil
	}
	lines := v.doc.Slice(v.offset, v.offset+n)
	rows := make([]Row, n)
	for i, line := range lines {
		rows[i] = Row{Index: v.offset + i, Line: line}
	}
	return rows
}
