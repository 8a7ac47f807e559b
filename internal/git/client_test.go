package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func gitInit(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q", "-b", "main"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
		{"config", "commit.gpgsign", "false"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	return dir
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func TestDiffMode_String(t *testing.T) {
	require.Equal(t, "working", DiffModeWorking.String())
	require.Equal(t, "staged", DiffModeStaged.String())
	require.Equal(t, "branch", DiffModeBranch.String())
	require.Equal(t, "unknown", DiffMode(9).String())
}

func TestDiffArgs(t *testing.T) {
	c := NewClient("")
	ctx := context.Background()

	args, err := c.diffArgs(ctx, DiffRequest{Mode: DiffModeWorking, Args: []string{"--", "main.go"}})
	require.NoError(t, err)
	require.Equal(t, []string{"diff", "--no-color", "--no-ext-diff", "--", "main.go"}, args)

	args, err = c.diffArgs(ctx, DiffRequest{Mode: DiffModeStaged})
	require.NoError(t, err)
	require.Equal(t, []string{"diff", "--no-color", "--no-ext-diff", "--cached"}, args)

	args, err = c.diffArgs(ctx, DiffRequest{Mode: DiffModeBranch, Base: "develop"})
	require.NoError(t, err)
	require.Equal(t, []string{"diff", "--no-color", "--no-ext-diff", "develop"}, args)

	_, err = c.diffArgs(ctx, DiffRequest{Mode: DiffMode(7)})
	require.Error(t, err)
}

func TestGitClient_Diff(t *testing.T) {
	dir := gitInit(t)
	ctx := context.Background()
	file := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(file, []byte("one\ntwo\n"), 0o644))
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "-q", "-m", "init")

	c := NewClient(dir)
	require.True(t, c.IsRepo(ctx))

	top, err := c.TopLevel(ctx)
	require.NoError(t, err)
	wantTop, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotTop, err := filepath.EvalSymlinks(top)
	require.NoError(t, err)
	require.Equal(t, wantTop, gotTop)

	out, err := c.Diff(ctx, DiffRequest{})
	require.NoError(t, err)
	require.Empty(t, out)

	require.NoError(t, os.WriteFile(file, []byte("one\n2\n"), 0o644))
	out, err = c.Diff(ctx, DiffRequest{})
	require.NoError(t, err)
	require.Contains(t, string(out), "+++ b/hello.txt")
	require.Contains(t, string(out), "-two")
	require.Contains(t, string(out), "+2")

	gitRun(t, dir, "add", ".")
	out, err = c.Diff(ctx, DiffRequest{Mode: DiffModeStaged})
	require.NoError(t, err)
	require.Contains(t, string(out), "+2")

	base, err := c.BaseBranch(ctx)
	require.NoError(t, err)
	require.Equal(t, "main", base)

	out, err = c.Diff(ctx, DiffRequest{Mode: DiffModeBranch})
	require.NoError(t, err)
	require.Contains(t, string(out), "+2")
}

func TestGitClient_NotRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	c := NewClient(t.TempDir())

	require.False(t, c.IsRepo(context.Background()))
	_, err := c.Diff(context.Background(), DiffRequest{})
	require.ErrorIs(t, err, ErrNotRepo)
}
