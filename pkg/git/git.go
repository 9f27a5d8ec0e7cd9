// Package git wraps the git binary behind a narrow capability interface.
// dotstore only ever needs clone, fast-forward pull, and a local commit;
// everything else (merge UI, locking, history) belongs to git itself.
package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotstore/pkg/errors"
	"github.com/arthur-debert/dotstore/pkg/logging"
)

// Client is the version-control capability dotstore consumes
type Client interface {
	// Clone clones remoteURL into dir
	Clone(ctx context.Context, remoteURL, dir string) error

	// Pull fast-forwards the working copy at dir from its remote
	Pull(ctx context.Context, dir string) error

	// Commit stages relPaths (relative to dir) and records a local commit.
	// Push is deliberately not part of the interface: publishing is a
	// separate, manual decision.
	Commit(ctx context.Context, dir string, relPaths []string, message string) error
}

// CLI is the Client implementation that shells out to the git binary
type CLI struct {
	executor CommandExecutor
}

// New creates a Client backed by the system git binary
func New() *CLI {
	return &CLI{executor: NewExecExecutor()}
}

// NewWithExecutor creates a Client with a custom executor, for tests
func NewWithExecutor(executor CommandExecutor) *CLI {
	return &CLI{executor: executor}
}

// Clone implements Client.Clone
func (c *CLI) Clone(ctx context.Context, remoteURL, dir string) error {
	logger := logging.GetLogger("git")
	logger.Debug().Str("remote", remoteURL).Str("dir", dir).Msg("Cloning repository")

	cmd := exec.CommandContext(ctx, "git", "clone", remoteURL, dir)
	if _, err := c.executor.ExecuteWithOutput(cmd); err != nil {
		return errors.Wrapf(err, errors.ErrRemoteUnreachable,
			"failed to clone %s", remoteURL)
	}
	return nil
}

// Pull implements Client.Pull. Only fast-forward pulls are attempted; a
// pull that would need a merge surfaces as MERGE_CONFLICT with git's own
// message intact.
func (c *CLI) Pull(ctx context.Context, dir string) error {
	logger := logging.GetLogger("git")
	logger.Debug().Str("dir", dir).Msg("Pulling repository")

	cmd := exec.CommandContext(ctx, "git", "-C", dir, "pull", "--ff-only")
	if _, err := c.executor.ExecuteWithOutput(cmd); err != nil {
		if isMergeFailure(err) {
			return errors.Wrap(err, errors.ErrMergeConflict,
				"pull cannot fast-forward")
		}
		return errors.Wrapf(err, errors.ErrRemoteUnreachable,
			"failed to pull %s", dir)
	}
	return nil
}

// Commit implements Client.Commit
func (c *CLI) Commit(ctx context.Context, dir string, relPaths []string, message string) error {
	logger := logging.GetLogger("git")
	logger.Debug().Str("dir", dir).Strs("paths", relPaths).Msg("Committing entries")

	addArgs := append([]string{"-C", dir, "add", "--"}, relPaths...)
	if _, err := c.executor.ExecuteWithOutput(exec.CommandContext(ctx, "git", addArgs...)); err != nil {
		return errors.Wrap(err, errors.ErrGitCommand, "failed to stage entries")
	}

	commitCmd := exec.CommandContext(ctx, "git", "-C", dir, "commit", "-m", message)
	if _, err := c.executor.ExecuteWithOutput(commitCmd); err != nil {
		return errors.Wrap(err, errors.ErrGitCommand, "failed to commit entries")
	}
	return nil
}

// mergeFailureMarkers are the stderr fragments git emits when a pull
// cannot fast-forward, across the git versions in common use
var mergeFailureMarkers = []string{
	"not possible to fast-forward",
	"divergent branches",
	"would be overwritten by merge",
	"automatic merge failed",
	"conflict",
}

func isMergeFailure(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range mergeFailureMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
