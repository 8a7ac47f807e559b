package diff

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TabWidth is the number of columns a tab expands to.
const TabWidth = 4

// ExpandTabs replaces every tab with TabWidth spaces.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))
}

// DisplayWidth returns the number of terminal columns text occupies once tabs are expanded.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(ExpandTabs(text))
}
