package window

import (
	"image"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/kmacinski/vdiff/internal/diff"
	"github.com/kmacinski/vdiff/internal/layout"
	"github.com/kmacinski/vdiff/internal/ui"
	"github.com/kmacinski/vdiff/internal/viewport"
)

const (
	trackChar = "│"
	thumbChar = "█"
)

// NoSelection is the selected index when no line is selected
const NoSelection = -1

// DiffView draws the visible part of a diff next to its scrollbar.
// Scrolling state lives in the viewport; DiffView only paints it.
type DiffView struct {
	Base
	vp       *viewport.Viewport
	geom     layout.Geometry
	selected int
}

// NewDiffView creates a new diff view window
func NewDiffView(styles ui.Styles, vp *viewport.Viewport) *DiffView {
	return &DiffView{
		Base:     NewBase("diffview", styles),
		vp:       vp,
		selected: NoSelection,
	}
}

// Viewport returns the viewport being drawn
func (d *DiffView) Viewport() *viewport.Viewport {
	return d.vp
}

// SetGeometry updates the screen areas and lays the viewport out in the
// text area.
func (d *DiffView) SetGeometry(g layout.Geometry) {
	d.geom = g
	d.vp.Layout(g.Text, 1)
}

// Select marks line index as selected. Out of range indexes clear the
// selection.
func (d *DiffView) Select(index int) {
	if index < 0 || index >= d.vp.LineCount() {
		d.selected = NoSelection
		return
	}
	d.selected = index
}

// Selected returns the selected line index
func (d *DiffView) Selected() (int, bool) {
	return d.selected, d.selected != NoSelection
}

// SelectedLine returns the selected line
func (d *DiffView) SelectedLine() (diff.Line, bool) {
	if d.selected == NoSelection {
		return diff.Line{}, false
	}
	return d.vp.Document().Line(d.selected), true
}

// View renders height rows of track, gap and list. The geometry set with
// SetGeometry decides where each part goes.
func (d *DiffView) View(width, height int) string {
	g := d.geom
	if width <= 0 || height <= 0 || g.List.Empty() {
		return ""
	}

	rows := make(map[int]viewport.Row)
	for i, row := range d.vp.VisibleSlice() {
		rows[d.vp.RowRect(i).Min.Y] = row
	}
	thumb := d.vp.Thumb(g.Scroll)
	gap := strings.Repeat(" ", max(0, g.List.Min.X-g.Scroll.Max.X))
	blank := strings.Repeat(" ", g.List.Dx())

	n := min(height, g.List.Dy())
	lines := make([]string, 0, n)
	for y := g.List.Min.Y; y < g.List.Min.Y+n; y++ {
		var b strings.Builder
		b.WriteString(d.trackCell(y, thumb))
		b.WriteString(gap)
		if row, ok := rows[y]; ok {
			b.WriteString(d.renderRow(row))
		} else {
			b.WriteString(blank)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func (d *DiffView) trackCell(y int, thumb image.Rectangle) string {
	w := d.geom.Scroll.Dx()
	if w == 0 {
		return ""
	}
	if y >= thumb.Min.Y && y < thumb.Max.Y {
		return d.styles.Thumb.Render(strings.Repeat(thumbChar, w))
	}
	return d.styles.Track.Render(strings.Repeat(trackChar, w))
}

func (d *DiffView) renderRow(row viewport.Row) string {
	g := d.geom
	text := Clip(row.Line.Text, d.vp.PanColumns(), g.Text.Dx())

	left := strings.Repeat(" ", g.Text.Min.X-g.List.Min.X)
	right := strings.Repeat(" ", g.List.Max.X-g.Text.Max.X)

	style := d.styles.Line(row.Line.Kind)
	if row.Index == d.selected {
		style = d.styles.Selected.Inherit(style)
	}
	return style.Render(left + text + right)
}

// Clip expands tabs, drops the first pan columns and fits the rest into
// exactly width columns, marking a cut line with an ellipsis.
func Clip(text string, pan, width int) string {
	if width <= 0 {
		return ""
	}
	s := diff.ExpandTabs(text)
	if pan > 0 {
		s = runewidth.TruncateLeft(s, pan, "")
	}

	if runewidth.StringWidth(s) > width {
		if width <= runewidth.StringWidth(viewport.Ellipsis) {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = truncate.StringWithTail(s, uint(width), viewport.Ellipsis)
		}
	}
	return runewidth.FillRight(s, width)
}
