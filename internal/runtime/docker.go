package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"

	apperrors "neondocker/internal/errors"
	"neondocker/pkg/runtime"
)

// DockerRuntime implements the ContainerRuntime interface using the Docker
// remote API client.
type DockerRuntime struct {
	client *client.Client
}

// NewDockerRuntime creates a DockerRuntime from the standard environment
// (DOCKER_HOST etc.) and probes the daemon once. An unreachable daemon is
// reported distinctly from any later image or container error.
func NewDockerRuntime() (*DockerRuntime, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	ctx := context.Background()
	if _, err := dockerClient.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDockerUnavailable, err)
	}

	return &DockerRuntime{client: dockerClient}, nil
}

// HasImage reports whether the reference exists in the local image catalog.
func (d *DockerRuntime) HasImage(ctx context.Context, ref string) (bool, error) {
	images, err := d.client.ImageList(ctx, image.ListOptions{
		Filters: filters.NewArgs(filters.Arg("reference", ref)),
	})
	if err != nil {
		return false, fmt.Errorf("failed to list images: %w", err)
	}
	return len(images) > 0, nil
}

// PullImage pulls an image and drains the progress stream.
func (d *DockerRuntime) PullImage(ctx context.Context, ref string) error {
	slog.Info("Pulling image", "image", ref)

	reader, err := d.client.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		if client.IsErrNotFound(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrImageNotFound, ref)
		}
		return fmt.Errorf("failed to pull image %s: %w", ref, err)
	}
	defer reader.Close()

	// Drain the pull progress without printing it
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to stream image pull output: %w", err)
	}

	slog.Info("Successfully pulled image", "image", ref)
	return nil
}

// ListContainers returns all containers, stopped ones included.
func (d *DockerRuntime) ListContainers(ctx context.Context) ([]runtime.ContainerInfo, error) {
	summaries, err := d.client.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	infos := make([]runtime.ContainerInfo, 0, len(summaries))
	for _, s := range summaries {
		infos = append(infos, runtime.ContainerInfo{
			ID:    s.ID,
			Image: s.Image,
			State: s.State,
		})
	}
	return infos, nil
}

// CreateContainer creates a container with the requested binds and device
// nodes. A missing image is tagged so callers can distinguish it from other
// runtime failures.
func (d *DockerRuntime) CreateContainer(ctx context.Context, opts runtime.CreateOptions) (string, error) {
	slog.Info("Creating container", "image", opts.Image, "name", opts.Name, "command", opts.Command)

	var mounts []mount.Mount
	for hostPath, containerPath := range opts.Binds {
		mounts = append(mounts, mount.Mount{
			Type:   mount.TypeBind,
			Source: hostPath,
			Target: containerPath,
		})
	}

	var devices []container.DeviceMapping
	for _, dev := range opts.Devices {
		devices = append(devices, container.DeviceMapping{
			PathOnHost:        dev.PathOnHost,
			PathInContainer:   dev.PathInContainer,
			CgroupPermissions: dev.Permissions,
		})
	}

	containerConfig := &container.Config{
		Image:      opts.Image,
		Cmd:        opts.Command,
		Entrypoint: opts.Entrypoint,
		Env:        opts.Env,
	}

	hostConfig := &container.HostConfig{
		Mounts: mounts,
		Resources: container.Resources{
			Devices: devices,
		},
	}

	resp, err := d.client.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, opts.Name)
	if err != nil {
		if client.IsErrNotFound(err) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrImageNotFound, opts.Image)
		}
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	return resp.ID, nil
}

// StartContainer starts a previously created container.
func (d *DockerRuntime) StartContainer(ctx context.Context, id string) error {
	if err := d.client.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container %s: %w", id, err)
	}
	return nil
}

// ContainerState returns the current state string, e.g. "running" or
// "exited".
func (d *DockerRuntime) ContainerState(ctx context.Context, id string) (string, error) {
	inspect, err := d.client.ContainerInspect(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to inspect container %s: %w", id, err)
	}
	return inspect.State.Status, nil
}

// RemoveContainer force-removes a container.
func (d *DockerRuntime) RemoveContainer(ctx context.Context, id string) error {
	slog.Info("Removing container", "containerID", id)

	if err := d.client.ContainerRemove(ctx, id, container.RemoveOptions{Force: true}); err != nil {
		return fmt.Errorf("failed to remove container %s: %w", id, err)
	}
	return nil
}
