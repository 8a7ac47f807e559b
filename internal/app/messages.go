package app

import (
	"github.com/kmacinski/vdiff/internal/diff"
	"github.com/kmacinski/vdiff/internal/ui"
)

// JumpedMsg is sent when an editor jump finished
type JumpedMsg struct {
	Target diff.Source
	Err    error
}

// YankedMsg is sent when a location was copied to the clipboard
type YankedMsg struct {
	Text string
	Err  error
}

// ThemeChangedMsg is sent when the config file changed and the theme was
// reloaded
type ThemeChangedMsg struct {
	Styles ui.Styles
	Err    error
}

// ErrorMsg reports a background failure in the status bar
type ErrorMsg struct {
	Err error
}
