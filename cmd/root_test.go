package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/kmacinski/vdiff/internal/config"
	"github.com/kmacinski/vdiff/internal/diff"
	"github.com/kmacinski/vdiff/internal/git"
)

// execute runs the command tree with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mouse: true\n"), 0o644))
	return path
}

func TestRoot_EmptyStdinPrintsNoDiff(t *testing.T) {
	_, stderr, err := execute(t, "", "--config", emptyConfig(t), "-")

	require.NoError(t, err)
	require.Equal(t, "no diff\n", stderr)
}

func TestRoot_IdenticalFilesPrintNoDiff(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("same\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same\n"), 0o644))

	_, stderr, err := execute(t, "", "--config", emptyConfig(t), a, b)

	require.NoError(t, err)
	require.Equal(t, "no diff\n", stderr)
}

func TestRoot_MissingFileFails(t *testing.T) {
	_, _, err := execute(t, "", "--config", emptyConfig(t), filepath.Join(t.TempDir(), "nope.diff"))

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRoot_TooManyFiles(t *testing.T) {
	_, _, err := execute(t, "", "a", "b", "c")

	require.Error(t, err)
	require.Contains(t, err.Error(), "at most two files")
}

func TestRoot_InvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  preset: neon\n"), 0o644))

	_, _, err := execute(t, "", "--config", path, "-")

	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vdiff", "config.yaml")

	stdout, _, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)
	require.Equal(t, "wrote "+path+"\n", stdout)

	cfg, err := config.Load(config.NewViper(path))
	require.NoError(t, err)
	require.Equal(t, config.Defaults().Scroll, cfg.Scroll)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(written), "preset: auto")
	require.NotContains(t, string(written), "fg:")

	_, _, err = execute(t, "", "config", "init", path)
	require.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scroll:\n  wheel_lines: 4\n"), 0o644))

	stdout, _, err := execute(t, "", "config", "show", "--config", path)

	require.NoError(t, err)
	require.Contains(t, stdout, "# "+path)
	require.Contains(t, stdout, "wheel_lines: 4")
	require.Contains(t, stdout, "pan_columns: 8")
}

func TestGitRequest(t *testing.T) {
	require.Equal(t, git.DiffRequest{Mode: git.DiffModeWorking}, gitRequest(options{}, nil))
	require.Equal(t, git.DiffModeStaged, gitRequest(options{staged: true}, nil).Mode)
	require.Equal(t, git.DiffModeBranch, gitRequest(options{branch: true}, nil).Mode)

	req := gitRequest(options{base: "develop"}, []string{"--", "x.go"})
	require.Equal(t, git.DiffRequest{Mode: git.DiffModeBranch, Base: "develop", Args: []string{"--", "x.go"}}, req)
}

// parseFlags prepares cmd the way cobra does before RunE.
func parseFlags(t *testing.T, args ...string) (*cobra.Command, []string) {
	t.Helper()
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, cmd.Flags().Args()
}

func TestPrepare_StripsPrefixForExistingFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	text := "--- a/main.go\n+++ b/main.go\n@@ -1 +1,2 @@\n package main\n+func main() {}\n"

	cmd, args := parseFlags(t, "--root", root)
	cmd.SetIn(strings.NewReader(text))
	cfg := config.Defaults()
	cfg.Root = root

	s, err := prepare(context.Background(), cmd, args, cfg, options{})
	require.NoError(t, err)
	require.Equal(t, "stdin", s.name)
	require.Equal(t, root, s.root)

	target, ok := s.doc.Line(4).Target()
	require.True(t, ok)
	require.Equal(t, diff.Source{File: "main.go", Line: 2}, target)
}

func TestPrepare_SplitsGitArgs(t *testing.T) {
	cmd, args := parseFlags(t, "--staged", "--", "--stat", "x.go")

	files, gitArgs := splitArgs(cmd, args)

	require.Empty(t, files)
	require.Equal(t, []string{"--stat", "x.go"}, gitArgs)
}
