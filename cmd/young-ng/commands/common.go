package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/young-ng/young-ng/internal/config"
	"github.com/young-ng/young-ng/internal/docker"
	"github.com/young-ng/young-ng/internal/printer"
	"github.com/young-ng/young-ng/internal/runner"
)

// newRunner builds the runner selected by cfg. The returned func releases
// whatever the runner holds. Replaced in tests.
var newRunner = func(ctx context.Context, cfg *config.Config) (runner.Runner, func(), error) {
	if cfg.Runner.Mode != config.RunnerDocker {
		return runner.NewExecRunner(), func() {}, nil
	}

	cli, err := docker.NewClient(ctx)
	if err != nil {
		return nil, nil, err
	}
	r := runner.NewDockerRunner(cli, cfg.Runner.Image, docker.GenerateRunID())
	return r, func() { cli.Close() }, nil
}

// loadConfig reads --config when given, otherwise young-ng.yml in root if
// it exists.
func loadConfig(root, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOptional(filepath.Join(root, config.DefaultFile))
}

func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root %q: %w", root, err)
	}
	return abs, nil
}

// fail prints err with the failure prefix plus a hint for the error kinds
// we know how to explain.
func fail(err error) error {
	var exitErr *runner.ExitError
	switch {
	case errors.Is(err, docker.ErrDaemonUnavailable):
		return printer.Error(
			"Failed: "+docker.ErrDaemonUnavailable.Error(),
			fmt.Sprintf("The docker runner starts npm in a Node.js container and needs a running daemon.\n%v", err),
			[]string{
				"Start Docker (Docker Desktop on macOS, 'sudo systemctl start docker' on Linux) and retry",
				"Run with --runner exec (or set runner.mode: exec) to use the local npm",
			},
		)
	case errors.Is(err, runner.ErrCommandNotFound):
		return printer.Failure(err, []string{
			"Install Node.js (which ships npm) and make sure it is on your PATH",
			"Run with --runner docker to use a Node.js container instead",
		})
	case errors.As(err, &exitErr):
		return printer.Failure(err, []string{
			fmt.Sprintf("Check the output of %s above", exitErr.Name),
		})
	default:
		return printer.Failure(err, nil)
	}
}
