package docker

import (
	"context"
	"errors"
	"fmt"

	"github.com/docker/docker/client"
)

// ErrDaemonUnavailable is wrapped by NewClient when the daemon does not answer.
var ErrDaemonUnavailable = errors.New("Docker daemon not accessible")

// NewClient connects to the daemon named by the DOCKER_HOST family of
// variables and pings it, so the docker runner fails before any step runs.
func NewClient(ctx context.Context) (*client.Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	if _, err := cli.Ping(ctx); err != nil {
		host := cli.DaemonHost()
		cli.Close()
		return nil, fmt.Errorf("%w at %s: %v", ErrDaemonUnavailable, host, err)
	}

	return cli, nil
}
