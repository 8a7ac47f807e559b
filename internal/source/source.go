// Package source decides where the diff text comes from: a file, stdin,
// a pair of files diffed in process, or git.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-udiff"

	"github.com/kmacinski/vdiff/internal/git"
	"github.com/kmacinski/vdiff/internal/log"
)

// Stdin is the file argument that means standard input.
const Stdin = "-"

// ErrTooManyArgs is returned for more than two positional arguments.
var ErrTooManyArgs = errors.New("expected at most two files")

// Input is raw diff text and where it came from.
type Input struct {
	// Name labels the input in the status bar.
	Name string
	// Root, when set, is the directory relative source paths resolve against.
	Root string
	Data io.Reader
}

// Loader turns command line arguments into an Input.
type Loader struct {
	Stdin io.Reader
	// StdinIsTerminal reports whether stdin is interactive. When it is and no
	// files are named, the diff comes from git.
	StdinIsTerminal func() bool
	Git             git.Client
	GitRequest      git.DiffRequest
}

// Load picks the input for args: none reads stdin or runs git, one names
// a diff file (or "-"), two name an old and a new file to compare.
func (l Loader) Load(ctx context.Context, args []string) (Input, error) {
	switch len(args) {
	case 0:
		if l.StdinIsTerminal != nil && l.StdinIsTerminal() {
			return l.loadGit(ctx)
		}
		return Input{Name: "stdin", Data: l.Stdin}, nil
	case 1:
		if args[0] == Stdin {
			return Input{Name: "stdin", Data: l.Stdin}, nil
		}
		return loadFile(args[0])
	case 2:
		return loadPair(args[0], args[1])
	default:
		return Input{}, fmt.Errorf("%w, got %d", ErrTooManyArgs, len(args))
	}
}

func loadFile(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("reading diff file: %w", err)
	}
	log.Debug(log.CatSource, "loaded diff file", "path", path, "bytes", len(data))
	return Input{Name: path, Data: bytes.NewReader(data)}, nil
}

func loadPair(oldPath, newPath string) (Input, error) {
	text, err := Compare(oldPath, newPath)
	if err != nil {
		return Input{}, err
	}
	return Input{Name: oldPath + " → " + newPath, Data: bytes.NewBufferString(text)}, nil
}

// Compare returns a unified diff of two files labelled a/OLD and b/NEW.
// Identical files produce an empty diff.
func Compare(oldPath, newPath string) (string, error) {
	before, err := os.ReadFile(oldPath)
	if err != nil {
		return "", fmt.Errorf("reading old file: %w", err)
	}
	after, err := os.ReadFile(newPath)
	if err != nil {
		return "", fmt.Errorf("reading new file: %w", err)
	}
	text := udiff.Unified("a/"+oldPath, "b/"+newPath, string(before), string(after))
	log.Debug(log.CatSource, "compared files", "old", oldPath, "new", newPath, "bytes", len(text))
	return text, nil
}

func (l Loader) loadGit(ctx context.Context) (Input, error) {
	if l.Git == nil {
		return Input{}, errors.New("stdin is a terminal and no diff file was given")
	}
	out, err := l.Git.Diff(ctx, l.GitRequest)
	if err != nil {
		return Input{}, fmt.Errorf("running git diff: %w", err)
	}
	input := Input{Name: "git diff (" + l.GitRequest.Mode.String() + ")", Data: bytes.NewReader(out)}
	if top, err := l.Git.TopLevel(ctx); err == nil {
		input.Root = top
	} else {
		log.ErrorErr(log.CatSource, "resolving repository root", err)
	}
	return input, nil
}
