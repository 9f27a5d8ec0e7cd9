package git

import (
	"bytes"
	"os/exec"

	"github.com/arthur-debert/dotstore/pkg/errors"
)

// CommandExecutor runs external commands. It exists so git behavior can be
// tested without a git binary or a network.
type CommandExecutor interface {
	// ExecuteWithOutput runs a command and returns its combined stdout,
	// with stderr folded into the returned error on failure
	ExecuteWithOutput(cmd *exec.Cmd) (string, error)
}

// ExecExecutor is the default implementation of CommandExecutor that
// delegates to the os/exec package
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// ExecuteWithOutput implements CommandExecutor.ExecuteWithOutput
func (e *ExecExecutor) ExecuteWithOutput(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), errors.Wrapf(err, errors.ErrGitCommand,
			"%v failed: %s", cmd.Args, stderr.String())
	}

	return stdout.String(), nil
}
