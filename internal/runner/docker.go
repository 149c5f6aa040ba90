package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	dockerpkg "github.com/young-ng/young-ng/internal/docker"
)

// DefaultImage is the Node.js image the docker runner uses unless configured.
const DefaultImage = "node:22"

// containerWorkDir is where the host working directory is mounted.
const containerWorkDir = "/work"

// DockerAPI is the subset of the Docker client the runner needs.
type DockerAPI interface {
	ImageInspectWithRaw(ctx context.Context, imageID string) (types.ImageInspect, []byte, error)
	ImagePull(ctx context.Context, refStr string, options types.ImagePullOptions) (io.ReadCloser, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerLogs(ctx context.Context, containerID string, options types.ContainerLogsOptions) (io.ReadCloser, error)
	ContainerWait(ctx context.Context, containerID string, condition container.WaitCondition) (<-chan container.WaitResponse, <-chan error)
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
}

var _ DockerAPI = (*client.Client)(nil)

// DockerRunner runs each command in a throwaway Node.js container with the
// working directory bind-mounted, so no local Node.js install is needed.
type DockerRunner struct {
	api   DockerAPI
	image string
	runID string
	seq   int
}

// NewDockerRunner creates a runner that starts containers from image.
// runID labels and names every container it creates.
func NewDockerRunner(api DockerAPI, image, runID string) *DockerRunner {
	if image == "" {
		image = DefaultImage
	}
	return &DockerRunner{api: api, image: image, runID: runID}
}

// Run creates, starts and waits for a container running name with args,
// streaming its logs live. The container is removed afterwards.
func (r *DockerRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (int, error) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	hostDir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return -1, fmt.Errorf("failed to resolve %s: %w", opts.Dir, err)
	}

	if err := r.ensureImage(ctx, stderr); err != nil {
		return -1, err
	}

	r.seq++
	containerConfig := &container.Config{
		Image:      r.image,
		Cmd:        append([]string{name}, args...),
		WorkingDir: containerWorkDir,
		// HOME must be writable for the npm cache when running as the host uid
		Env:    []string{"CI=true", "HOME=/tmp"},
		User:   hostUser(),
		Labels: dockerpkg.BuildLabels(r.runID, hostDir, name),
	}
	hostConfig := &container.HostConfig{
		Mounts: []mount.Mount{{
			Type:   mount.TypeBind,
			Source: hostDir,
			Target: containerWorkDir,
		}},
	}

	resp, err := r.api.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, dockerpkg.ContainerName(r.runID, r.seq))
	if err != nil {
		return -1, fmt.Errorf("failed to create container for %s: %w", name, err)
	}
	defer func() {
		// removal must happen even when ctx is already cancelled
		_ = r.api.ContainerRemove(context.Background(), resp.ID, container.RemoveOptions{Force: true})
	}()

	if err := r.api.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return -1, fmt.Errorf("failed to start container for %s: %w", name, err)
	}

	logs, err := r.api.ContainerLogs(ctx, resp.ID, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
	if err != nil {
		return -1, fmt.Errorf("failed to attach to container logs: %w", err)
	}
	_, copyErr := stdcopy.StdCopy(stdout, stderr, logs)
	logs.Close()
	if copyErr != nil && ctx.Err() == nil {
		return -1, fmt.Errorf("failed to stream container logs: %w", copyErr)
	}

	statusCh, errCh := r.api.ContainerWait(ctx, resp.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return -1, fmt.Errorf("failed waiting for %s: %w", name, err)
	case status := <-statusCh:
		if status.Error != nil && status.Error.Message != "" {
			return -1, fmt.Errorf("container for %s failed: %s", name, status.Error.Message)
		}
		return int(status.StatusCode), nil
	}
}

// ensureImage pulls the image if it is not present locally.
func (r *DockerRunner) ensureImage(ctx context.Context, progress io.Writer) error {
	_, _, err := r.api.ImageInspectWithRaw(ctx, r.image)
	if err == nil {
		return nil
	}
	if !client.IsErrNotFound(err) {
		return fmt.Errorf("failed to inspect image %s: %w", r.image, err)
	}

	fmt.Fprintf(progress, "Pulling image %s...\n", r.image)
	reader, err := r.api.ImagePull(ctx, r.image, types.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", r.image, err)
	}
	defer reader.Close()

	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to complete image pull %s: %w", r.image, err)
	}
	return nil
}

// hostUser returns uid:gid of the caller so generated files are not owned by
// root. Empty on platforms without numeric ids.
func hostUser() string {
	if runtime.GOOS == "windows" {
		return ""
	}
	return fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())
}
