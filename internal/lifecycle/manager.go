package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "neondocker/internal/errors"
	"neondocker/internal/ui"
	"neondocker/pkg/runtime"
	"neondocker/pkg/session"
)

const (
	// hostDisplay is the display binding standalone applications and
	// Wayland sessions target.
	hostDisplay = ":0"

	// x11SocketDir is bound into every container so its clients reach the
	// chosen X server.
	x11SocketDir = "/tmp/.X11-unix"

	// waylandEntrypoint starts a composited session inside the container.
	waylandEntrypoint = "startplasmacompositor"

	// pollInterval between container run-state checks.
	pollInterval = time.Second
)

// Manager owns the session container for one invocation: it resolves or
// creates it, starts it, waits for it to stop, and removes it unless the
// caller asked to keep it.
type Manager struct {
	rt       runtime.ContainerRuntime
	console  *ui.Console
	devices  []string
	interval time.Duration
}

func NewManager(rt runtime.ContainerRuntime, devices []string, console *ui.Console) *Manager {
	return &Manager{
		rt:       rt,
		console:  console,
		devices:  devices,
		interval: pollInterval,
	}
}

// Run drives a session container from acquisition to teardown. display is
// the X display the session should target; full desktop sessions get the
// nested display, standalone and Wayland runs the host display.
func (m *Manager) Run(ctx context.Context, cfg *session.Config, ref, display string) error {
	id, err := m.acquire(ctx, cfg, ref, display)
	if err != nil {
		return err
	}

	if err := m.rt.StartContainer(ctx, id); err != nil {
		return apperrors.NewRuntimeError(
			"Failed to start session container",
			err.Error(),
			"Check the Docker daemon logs for details",
			err,
		)
	}

	m.console.PrintStatus("Session container %s started", shortID(id))

	if err := m.waitUntilStopped(ctx, id); err != nil {
		return err
	}

	if cfg.KeepAlive || cfg.Reattach {
		m.console.PrintStatus("Keeping container %s, rerun with --reattach to reuse it", shortID(id))
		return nil
	}

	return m.rt.RemoveContainer(ctx, id)
}

// acquire resolves a container ID by the four mutually exclusive strategies:
// reattach to an existing container for the image, or create one for a
// standalone command, a Wayland session, or the default nested session.
func (m *Manager) acquire(ctx context.Context, cfg *session.Config, ref, display string) (string, error) {
	if cfg.Reattach && !cfg.AlwaysNew {
		containers, err := m.rt.ListContainers(ctx)
		if err != nil {
			return "", apperrors.NewRuntimeError(
				"Failed to list existing containers",
				err.Error(),
				"Check the Docker daemon logs for details",
				err,
			)
		}
		for _, c := range containers {
			if c.Image == ref {
				slog.Info("Reattaching to existing container", "containerID", c.ID, "image", ref)
				m.console.PrintStatus("Reusing container %s", shortID(c.ID))
				return c.ID, nil
			}
		}
		slog.Info("No existing container for image, creating one", "image", ref)
	}

	id, err := m.rt.CreateContainer(ctx, m.createOptions(cfg, ref, display))
	if err != nil {
		if errors.Is(err, apperrors.ErrImageNotFound) {
			return "", apperrors.NewImageError(
				fmt.Sprintf("Image %s is not known to the container runtime", ref),
				err.Error(),
				"Run again with --pull to download it",
				err,
			)
		}
		return "", apperrors.NewRuntimeError(
			"Failed to create session container",
			err.Error(),
			"Check the Docker daemon logs for details",
			err,
		)
	}
	return id, nil
}

func (m *Manager) createOptions(cfg *session.Config, ref, display string) runtime.CreateOptions {
	opts := runtime.CreateOptions{
		Image: ref,
		Name:  containerName(),
		Binds: map[string]string{x11SocketDir: x11SocketDir},
	}

	switch {
	case cfg.Standalone():
		opts.Command = cfg.Command
		opts.Env = []string{"DISPLAY=" + hostDisplay}
	case cfg.Wayland:
		opts.Entrypoint = []string{waylandEntrypoint}
		opts.Env = []string{"DISPLAY=" + hostDisplay}
		opts.Devices = m.deviceBindings()
	default:
		opts.Env = []string{"DISPLAY=" + display}
		opts.Devices = m.deviceBindings()
	}

	return opts
}

// deviceBindings exposes the configured host device nodes at the same path
// inside the container, with read-write-mknod permissions.
func (m *Manager) deviceBindings() []runtime.DeviceBinding {
	bindings := make([]runtime.DeviceBinding, 0, len(m.devices))
	for _, dev := range m.devices {
		bindings = append(bindings, runtime.DeviceBinding{
			PathOnHost:      dev,
			PathInContainer: dev,
			Permissions:     "rwm",
		})
	}
	return bindings
}

// waitUntilStopped polls the container state at a fixed interval until it
// leaves the running state.
func (m *Manager) waitUntilStopped(ctx context.Context, id string) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		state, err := m.rt.ContainerState(ctx, id)
		if err != nil {
			return apperrors.NewRuntimeError(
				"Failed to read session container state",
				err.Error(),
				"Check the Docker daemon logs for details",
				err,
			)
		}
		if state != runtime.StateRunning {
			slog.Info("Session container stopped", "containerID", id, "state", state)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func containerName() string {
	return "neondocker-" + uuid.NewString()[:8]
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
