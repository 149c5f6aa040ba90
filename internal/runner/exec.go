package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ExecRunner runs commands on the local machine with os/exec. Stdin is
// inherited so interactive generator prompts still work.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command with its output streamed to opts.Stdout and
// opts.Stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return -1, fmt.Errorf("%w: %s not found in PATH", ErrCommandNotFound, name)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("%s interrupted: %w", name, ctxErr)
	}
	return -1, fmt.Errorf("failed to run %s: %w", name, err)
}
