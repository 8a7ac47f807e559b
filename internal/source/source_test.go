package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmacinski/vdiff/internal/diff"
	"github.com/kmacinski/vdiff/internal/git"
)

type fakeGit struct {
	out  string
	err  error
	top  string
	reqs []git.DiffRequest
}

func (f *fakeGit) IsRepo(context.Context) bool                { return f.err == nil }
func (f *fakeGit) TopLevel(context.Context) (string, error)   { return f.top, nil }
func (f *fakeGit) BaseBranch(context.Context) (string, error) { return "main", nil }
func (f *fakeGit) Diff(_ context.Context, req git.DiffRequest) ([]byte, error) {
	f.reqs = append(f.reqs, req)
	return []byte(f.out), f.err
}

func readAll(t *testing.T, in Input) string {
	t.Helper()
	data, err := io.ReadAll(in.Data)
	require.NoError(t, err)
	return string(data)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Stdin(t *testing.T) {
	l := Loader{Stdin: strings.NewReader("+x\n"), StdinIsTerminal: func() bool { return false }}

	in, err := l.Load(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "stdin", in.Name)
	require.Equal(t, "+x\n", readAll(t, in))

	l.Stdin = strings.NewReader("-y\n")
	in, err = l.Load(context.Background(), []string{"-"})
	require.NoError(t, err)
	require.Equal(t, "-y\n", readAll(t, in))
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "change.diff", "@@ -1 +1 @@\n")

	in, err := Loader{}.Load(context.Background(), []string{path})
	require.NoError(t, err)
	require.Equal(t, path, in.Name)
	require.Equal(t, "@@ -1 +1 @@\n", readAll(t, in))

	_, err = Loader{}.Load(context.Background(), []string{path + ".missing"})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PairProducesParseableDiff(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.txt", "a\nb\nc\n")
	newPath := writeFile(t, dir, "new.txt", "a\nB\nc\n")

	in, err := Loader{}.Load(context.Background(), []string{oldPath, newPath})
	require.NoError(t, err)

	doc, err := diff.Parse(in.Data, diff.WithProbe(nil))
	require.NoError(t, err)

	added, removed := doc.Stats()
	require.Equal(t, 1, added)
	require.Equal(t, 1, removed)

	var addition diff.Line
	for _, line := range doc.All() {
		if line.Kind == diff.KindAddition {
			addition = line
		}
	}
	require.Equal(t, "+B", addition.Text)
	target, ok := addition.Target()
	require.True(t, ok)
	require.Equal(t, "b/"+newPath, target.File)
	require.Equal(t, 2, target.Line)
}

func TestCompare_IdenticalFilesAreEmpty(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "same\n")
	b := writeFile(t, dir, "b.txt", "same\n")

	text, err := Compare(a, b)
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestLoad_TooManyArgs(t *testing.T) {
	_, err := Loader{}.Load(context.Background(), []string{"a", "b", "c"})
	require.ErrorIs(t, err, ErrTooManyArgs)
}

func TestLoad_GitWhenStdinIsTerminal(t *testing.T) {
	g := &fakeGit{out: "+++ b/x\n", top: "/repo"}
	l := Loader{
		StdinIsTerminal: func() bool { return true },
		Git:             g,
		GitRequest:      git.DiffRequest{Mode: git.DiffModeStaged, Args: []string{"--", "x"}},
	}

	in, err := l.Load(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "git diff (staged)", in.Name)
	require.Equal(t, "/repo", in.Root)
	require.Equal(t, "+++ b/x\n", readAll(t, in))
	require.Equal(t, []git.DiffRequest{l.GitRequest}, g.reqs)
}

func TestLoad_GitErrors(t *testing.T) {
	l := Loader{StdinIsTerminal: func() bool { return true }}
	_, err := l.Load(context.Background(), nil)
	require.Error(t, err)

	l.Git = &fakeGit{err: git.ErrNotRepo}
	_, err = l.Load(context.Background(), nil)
	require.True(t, errors.Is(err, git.ErrNotRepo))
}
