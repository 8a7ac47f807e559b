package editor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmacinski/vdiff/internal/config"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestExpand(t *testing.T) {
	got := Expand([]string{"code", "--goto", "{file}:{line}"}, "src/a.go", 42)

	require.Equal(t, []string{"code", "--goto", "src/a.go:42"}, got)
}

func TestTerminal_Cmd(t *testing.T) {
	cmd := Terminal{Editor: "nvim -u NONE"}.Cmd("main.go", 7)

	require.Equal(t, []string{"nvim", "-u", "NONE", "+7", "main.go"}, cmd.Args)
}

func TestTerminal_CmdDefaultsToVi(t *testing.T) {
	cmd := Terminal{}.Cmd("main.go", 1)

	require.Equal(t, []string{"vi", "+1", "main.go"}, cmd.Args)
}

func TestTerminalEditor(t *testing.T) {
	require.Equal(t, "hx", TerminalEditor(env(map[string]string{"VISUAL": "hx", "EDITOR": "nano"})))
	require.Equal(t, "nano", TerminalEditor(env(map[string]string{"EDITOR": "nano"})))
	require.Equal(t, "vi", TerminalEditor(env(nil)))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.EditorConfig
		env  map[string]string
		want Jumper
	}{
		{"auto prefers nvim", config.EditorConfig{Mode: config.EditorAuto, Command: []string{"code"}}, map[string]string{"NVIM": "/tmp/nvim.sock"}, Nvim{Addr: "/tmp/nvim.sock"}},
		{"auto falls back to command", config.EditorConfig{Mode: config.EditorAuto, Command: []string{"code"}}, nil, Command{Template: []string{"code"}}},
		{"auto falls back to terminal", config.EditorConfig{}, map[string]string{"EDITOR": "nano"}, Terminal{Editor: "nano"}},
		{"configured socket", config.EditorConfig{Mode: config.EditorNvim, NvimSocket: "127.0.0.1:6666"}, nil, Nvim{Addr: "127.0.0.1:6666"}},
		{"terminal mode ignores nvim", config.EditorConfig{Mode: config.EditorTerminal}, map[string]string{"NVIM": "/x", "EDITOR": "vim"}, Terminal{Editor: "vim"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.cfg, env(tt.env))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	_, err := Resolve(config.EditorConfig{Mode: config.EditorNvim}, env(nil))
	require.ErrorIs(t, err, ErrNoEditor)

	_, err = Resolve(config.EditorConfig{Mode: config.EditorCommand}, env(nil))
	require.ErrorIs(t, err, ErrNoEditor)

	_, err = Resolve(config.EditorConfig{Mode: "ed"}, env(nil))
	require.Error(t, err)
}

func TestCommand_Jump(t *testing.T) {
	require.NoError(t, Command{Template: []string{"true", "{file}", "{line}"}}.Jump(context.Background(), "a.go", 3))

	err := Command{Template: []string{"vdiff-no-such-editor-binary"}}.Jump(context.Background(), "a.go", 3)
	require.Error(t, err)

	require.ErrorIs(t, Command{}.Jump(context.Background(), "a.go", 3), ErrNoEditor)
}

func TestNvim_JumpUnreachable(t *testing.T) {
	n := Nvim{Addr: filepath.Join(t.TempDir(), "missing.sock")}

	err := n.Jump(context.Background(), "a.go", 1)

	require.Error(t, err)
	require.Contains(t, err.Error(), "connecting to nvim")
}

func TestJumperFunc(t *testing.T) {
	var gotFile string
	var gotLine int
	j := JumperFunc(func(_ context.Context, file string, line int) error {
		gotFile, gotLine = file, line
		return errors.New("offline")
	})

	err := j.Jump(context.Background(), "x.c", 9)

	require.EqualError(t, err, "offline")
	require.Equal(t, "x.c", gotFile)
	require.Equal(t, 9, gotLine)
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "nvim /s", Describe(Nvim{Addr: "/s"}))
	require.Equal(t, "code", Describe(Command{Template: []string{"code", "-g"}}))
	require.Equal(t, "vim", Describe(Terminal{Editor: "vim"}))
	require.Equal(t, "editor", Describe(JumperFunc(nil)))
}
