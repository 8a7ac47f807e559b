// Package git runs the git CLI to produce diffs for the viewer.
package git

import "context"

// DiffMode selects what git diff compares.
type DiffMode int

const (
	DiffModeWorking DiffMode = iota // Unstaged changes
	DiffModeStaged                  // Index vs HEAD
	DiffModeBranch                  // Working tree vs base branch
)

func (m DiffMode) String() string {
	switch m {
	case DiffModeWorking:
		return "working"
	case DiffModeStaged:
		return "staged"
	case DiffModeBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// DiffRequest describes one git diff invocation.
type DiffRequest struct {
	Mode DiffMode
	// Base overrides base branch detection in DiffModeBranch.
	Base string
	// Args are passed through after the mode arguments (paths, flags).
	Args []string
}

// Client defines the git operations the viewer needs.
type Client interface {
	// IsRepo reports whether the working directory is inside a repository.
	IsRepo(ctx context.Context) bool

	// TopLevel returns the repository root. Paths in git diff output are
	// relative to it.
	TopLevel(ctx context.Context) (string, error)

	// BaseBranch returns the configured or detected base branch.
	BaseBranch(ctx context.Context) (string, error)

	// Diff returns unified diff output for req.
	Diff(ctx context.Context, req DiffRequest) ([]byte, error)
}
