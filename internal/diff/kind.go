package diff

import "strings"

// Kind is the semantic role of a diff line.
type Kind int

const (
	KindFileHeader Kind = iota
	KindHunkSeparator
	KindAddition
	KindDeletion
	KindContext
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{KindFileHeader, KindHunkSeparator, KindAddition, KindDeletion, KindContext}

func (k Kind) String() string {
	switch k {
	case KindFileHeader:
		return "file"
	case KindHunkSeparator:
		return "hunk"
	case KindAddition:
		return "add"
	case KindDeletion:
		return "del"
	case KindContext:
		return "context"
	default:
		return "unknown"
	}
}

// HasSource reports whether lines of this kind carry a source location.
func (k Kind) HasSource() bool {
	return k == KindAddition || k == KindDeletion || k == KindContext
}

// Classify maps a raw line (without its newline) to a Kind. First match wins.
// A "---" line only counts as a header when something follows the marker;
// a bare "---" or "--- " is plain context.
func Classify(text string) Kind {
	switch {
	case strings.HasPrefix(text, "+++"):
		return KindFileHeader
	case strings.HasPrefix(text, "---"):
		if len(text) > 4 {
			return KindFileHeader
		}
		return KindContext
	case strings.HasPrefix(text, "@@"):
		return KindHunkSeparator
	case strings.HasPrefix(text, "+"):
		return KindAddition
	case strings.HasPrefix(text, "-"):
		return KindDeletion
	default:
		return KindContext
	}
}
