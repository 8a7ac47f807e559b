// Package editor opens a source location in an external editor. The viewer
// only ever calls a Jumper; it never manages editor processes itself.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kmacinski/vdiff/internal/config"
)

// ErrNoEditor is returned when no editor could be determined.
var ErrNoEditor = errors.New("no editor configured")

// Jumper opens file at line.
type Jumper interface {
	Jump(ctx context.Context, file string, line int) error
}

// JumperFunc adapts a function to Jumper.
type JumperFunc func(ctx context.Context, file string, line int) error

// Jump calls f.
func (f JumperFunc) Jump(ctx context.Context, file string, line int) error {
	return f(ctx, file, line)
}

// Suspender is implemented by jumpers whose editor needs the terminal. The
// host suspends its UI and runs the returned command in the foreground.
type Suspender interface {
	Cmd(file string, line int) *exec.Cmd
}

// Expand substitutes {file} and {line} in an argv template.
func Expand(template []string, file string, line int) []string {
	r := strings.NewReplacer("{file}", file, "{line}", strconv.Itoa(line))
	out := make([]string, len(template))
	for i, arg := range template {
		out[i] = r.Replace(arg)
	}
	return out
}

// Command starts an argv template detached and does not wait for it.
type Command struct {
	Template []string
}

// Jump starts the command and reaps it in the background.
func (c Command) Jump(ctx context.Context, file string, line int) error {
	if len(c.Template) == 0 {
		return ErrNoEditor
	}
	argv := Expand(c.Template, file, line)
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", argv[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Terminal runs a terminal editor as "editor +line file".
type Terminal struct {
	Editor string
}

// Cmd builds the editor invocation. The editor string may carry arguments.
func (t Terminal) Cmd(file string, line int) *exec.Cmd {
	fields := strings.Fields(t.Editor)
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	args := append(fields[1:], "+"+strconv.Itoa(line), file)
	return exec.Command(fields[0], args...)
}

// Jump runs the editor attached to the current terminal and waits for it.
// Hosts that own the terminal should use Cmd through Suspender instead.
func (t Terminal) Jump(ctx context.Context, file string, line int) error {
	cmd := t.Cmd(file, line)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	return cmd.Run()
}

// TerminalEditor returns $VISUAL, then $EDITOR, then vi.
func TerminalEditor(getenv func(string) string) string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v := getenv(name); v != "" {
			return v
		}
	}
	return "vi"
}

// Resolve picks a Jumper for cfg. In auto mode a surrounding Neovim wins,
// then a configured command, then the terminal editor.
func Resolve(cfg config.EditorConfig, getenv func(string) string) (Jumper, error) {
	socket := cfg.NvimSocket
	if socket == "" {
		socket = getenv("NVIM")
	}

	switch cfg.Mode {
	case config.EditorNvim:
		if socket == "" {
			return nil, fmt.Errorf("editor mode nvim: %w: set editor.nvim_socket or $NVIM", ErrNoEditor)
		}
		return Nvim{Addr: socket}, nil
	case config.EditorCommand:
		if len(cfg.Command) == 0 {
			return nil, fmt.Errorf("editor mode command: %w", ErrNoEditor)
		}
		return Command{Template: cfg.Command}, nil
	case config.EditorTerminal:
		return Terminal{Editor: TerminalEditor(getenv)}, nil
	case "", config.EditorAuto:
		switch {
		case socket != "":
			return Nvim{Addr: socket}, nil
		case len(cfg.Command) > 0:
			return Command{Template: cfg.Command}, nil
		default:
			return Terminal{Editor: TerminalEditor(getenv)}, nil
		}
	default:
		return nil, fmt.Errorf("unknown editor mode %q", cfg.Mode)
	}
}

// Describe names a jumper for the status bar and logs.
func Describe(j Jumper) string {
	switch j := j.(type) {
	case Nvim:
		return "nvim " + j.Addr
	case Command:
		if len(j.Template) > 0 {
			return j.Template[0]
		}
		return "command"
	case Terminal:
		return j.Editor
	default:
		return "editor"
	}
}
