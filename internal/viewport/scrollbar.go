package viewport

import "image"

// TrackButton selects what a click in the scrollbar track does.
type TrackButton int

const (
	// TrackUp scrolls up by the clicked row's distance from the track top.
	TrackUp TrackButton = iota
	// TrackDown scrolls down by the clicked row's distance from the track top.
	TrackDown
	// TrackJump moves to the position proportional to the click.
	TrackJump
)

// Thumb returns the thumb rectangle inside track. Its height is proportional
// to the visible fraction and its top to the offset. A thumb is at least one
// unit tall while any row is visible and has zero height when none is. An
// empty document fills the whole track.
func (v *Viewport) Thumb(track image.Rectangle) image.Rectangle {
	track = track.Canon()
	n := v.LineCount()
	if n == 0 {
		return track
	}
	if track.Empty() {
		return track
	}
	if v.rows == 0 {
		return image.Rect(track.Min.X, track.Min.Y, track.Max.X, track.Min.Y)
	}
	h := max(1, track.Dy()*min(v.rows, n)/n)
	y := min(track.Dy()*v.offset/n, track.Dy()-h)
	return image.Rect(track.Min.X, track.Min.Y+y, track.Max.X, track.Min.Y+y+h)
}

// ClickTrack scrolls in response to a click at vertical position y in track.
// Relative clicks saturate at the document bounds. Clicks outside the track
// are ignored.
func (v *Viewport) ClickTrack(button TrackButton, track image.Rectangle, y int) {
	track = track.Canon()
	if y < track.Min.Y || y >= track.Max.Y {
		return
	}
	switch button {
	case TrackUp:
		v.ScrollBy(-(y - track.Min.Y) / v.lineHeight)
	case TrackDown:
		v.ScrollBy((y - track.Min.Y) / v.lineHeight)
	case TrackJump:
		if track.Dy() == 0 {
			return
		}
		v.JumpTo((y - track.Min.Y) * v.LineCount() / track.Dy())
	}
}
