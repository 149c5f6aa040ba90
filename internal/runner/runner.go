// Package runner runs the external tools young-ng drives (the Angular
// generator and the package installer) behind a stub-friendly interface.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrCommandNotFound is wrapped by Run when the executable cannot be resolved.
var ErrCommandNotFound = errors.New("command not found")

// RunOpts holds the per-invocation parameters.
type RunOpts struct {
	Dir    string    // working directory
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
}

// Runner executes an external command and streams its output live.
type Runner interface {
	// Run blocks until the command exits and returns its exit code.
	// A command that ran and exited non-zero returns its code and a nil error.
	// The error is reserved for failures to start or supervise the process.
	Run(ctx context.Context, name string, args []string, opts RunOpts) (int, error)
}

// ExitError reports a command that exited with a non-zero status.
type ExitError struct {
	Name string
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", CommandLine(e.Name, e.Args), e.Code)
}

// Check runs the command and converts a non-zero exit into an *ExitError.
func Check(ctx context.Context, r Runner, name string, args []string, opts RunOpts) error {
	code, err := r.Run(ctx, name, args, opts)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Name: name, Args: args, Code: code}
	}
	return nil
}

// CommandLine renders name and args for display.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
