package window

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/kmacinski/vdiff/internal/keys"
	"github.com/kmacinski/vdiff/internal/ui"
)

// Help displays keybinding help
type Help struct {
	Base
	bindings []key.Binding
}

// NewHelp creates a new help window
func NewHelp(styles ui.Styles) *Help {
	return &Help{
		Base:     NewBase("help", styles),
		bindings: keys.HelpBindings(),
	}
}

// View renders the help content
func (h *Help) View(width, height int) string {
	contentWidth := width - 2 // border; Width includes padding

	if contentWidth < 8 || height < 6 {
		return ""
	}

	var lines []string
	lines = append(lines, h.styles.ModalTitle.Render("Keybindings"))

	keyStyle := h.styles.Bold.Width(10)
	for _, b := range h.bindings {
		hb := b.Help()
		lines = append(lines, fmt.Sprintf("%s %s", keyStyle.Render(hb.Key), hb.Desc))
	}

	lines = append(lines, "")
	lines = append(lines, "Mouse: wheel scrolls, left click selects, right click opens")
	lines = append(lines, "Scrollbar: left up, right down, middle jumps")
	lines = append(lines, "")
	lines = append(lines, h.styles.Muted.Render("Press ? or Esc to close"))

	return h.styles.Modal.
		Width(contentWidth).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}
