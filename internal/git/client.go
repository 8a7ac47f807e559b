package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kmacinski/vdiff/internal/log"
)

// ErrNotRepo is returned when git is asked for a diff outside a repository.
var ErrNotRepo = errors.New("not a git repository")

// GitClient implements Client using the git CLI.
type GitClient struct {
	// Dir is the working directory for git; empty means the process cwd.
	Dir string
}

// NewClient creates a git client rooted at dir.
func NewClient(dir string) *GitClient {
	return &GitClient{Dir: dir}
}

func (c *GitClient) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

// IsRepo returns true if Dir is inside a git work tree.
func (c *GitClient) IsRepo(ctx context.Context) bool {
	out, err := c.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// TopLevel returns the absolute path of the work tree root.
func (c *GitClient) TopLevel(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// BaseBranch returns init.defaultBranch when it exists, then main or master,
// then their origin counterparts.
func (c *GitClient) BaseBranch(ctx context.Context) (string, error) {
	if out, err := c.run(ctx, "config", "init.defaultBranch"); err == nil {
		branch := strings.TrimSpace(string(out))
		if branch != "" && c.branchExists(ctx, branch) {
			return branch, nil
		}
	}

	for _, name := range []string{"main", "master", "origin/main", "origin/master"} {
		if c.branchExists(ctx, name) {
			return name, nil
		}
	}

	return "", errors.New("could not detect base branch")
}

func (c *GitClient) branchExists(ctx context.Context, name string) bool {
	_, err := c.run(ctx, "rev-parse", "--verify", "--quiet", name)
	return err == nil
}

// Diff runs git diff for req. Color and external diff drivers are disabled
// so the output is plain unified diff text.
func (c *GitClient) Diff(ctx context.Context, req DiffRequest) ([]byte, error) {
	if !c.IsRepo(ctx) {
		return nil, ErrNotRepo
	}

	args, err := c.diffArgs(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatSource, "running git", "args", strings.Join(args, " "))

	return c.run(ctx, args...)
}

func (c *GitClient) diffArgs(ctx context.Context, req DiffRequest) ([]string, error) {
	args := []string{"diff", "--no-color", "--no-ext-diff"}

	switch req.Mode {
	case DiffModeWorking:
	case DiffModeStaged:
		args = append(args, "--cached")
	case DiffModeBranch:
		base := req.Base
		if base == "" {
			detected, err := c.BaseBranch(ctx)
			if err != nil {
				return nil, err
			}
			base = detected
		}
		// base rather than base...HEAD so uncommitted changes are included
		args = append(args, base)
	default:
		return nil, fmt.Errorf("unknown diff mode %d", req.Mode)
	}

	return append(args, req.Args...), nil
}
