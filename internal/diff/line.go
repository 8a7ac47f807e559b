package diff

import (
	"fmt"
	"iter"
)

// DevNull is the path diff tools print for the missing side of an added or deleted file.
const DevNull = "/dev/null"

// UnknownLine marks a source line that could not be recovered from a malformed hunk header.
const UnknownLine = -1

// Source locates a diff line in the new version of a file.
type Source struct {
	File string
	Line int
}

// Valid reports whether the location can be handed to an editor.
func (s Source) Valid() bool {
	return s.File != "" && s.File != DevNull && s.Line > 0
}

func (s Source) String() string {
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Line is one parsed diff line.
type Line struct {
	Kind Kind
	Text string
	// Source is nil for file headers and hunk separators.
	Source *Source
}

// Target returns the jump target of the line, if it has a usable one.
func (l Line) Target() (Source, bool) {
	if l.Source == nil || !l.Source.Valid() {
		return Source{}, false
	}
	return *l.Source, true
}

// Document is the parsed diff. It is immutable once returned by a Parser.
type Document struct {
	lines         []Line
	maxLineLength int
}

// Len returns the number of lines.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.lines)
}

// Empty reports whether there is nothing to show.
func (d *Document) Empty() bool {
	return d.Len() == 0
}

// Line returns the line at index i. It panics if i is out of range.
func (d *Document) Line(i int) Line {
	return d.lines[i]
}

// Slice returns a copy of lines [from, to).
func (d *Document) Slice(from, to int) []Line {
	out := make([]Line, to-from)
	copy(out, d.lines[from:to])
	return out
}

// All iterates over the lines with their absolute index.
func (d *Document) All() iter.Seq2[int, Line] {
	return func(yield func(int, Line) bool) {
		for i := 0; i < d.Len(); i++ {
			if !yield(i, d.lines[i]) {
				return
			}
		}
	}
}

// MaxLineLength returns the widest line's display width in columns.
func (d *Document) MaxLineLength() int {
	if d == nil {
		return 0
	}
	return d.maxLineLength
}

// Stats counts added and deleted lines.
func (d *Document) Stats() (added, removed int) {
	for _, l := range d.All() {
		switch l.Kind {
		case KindAddition:
			added++
		case KindDeletion:
			removed++
		}
	}
	return added, removed
}
