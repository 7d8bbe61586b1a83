package app

import (
	"context"
	"log/slog"

	"neondocker/internal/config"
	"neondocker/internal/display"
	apperrors "neondocker/internal/errors"
	"neondocker/internal/image"
	"neondocker/internal/lifecycle"
	"neondocker/internal/runtime"
	"neondocker/internal/ui"
	"neondocker/pkg/session"
)

// Run executes one launcher invocation end to end: probe the container
// runtime, ensure the session's image is present, then run the session
// container, wrapped in a nested display when the configuration needs one.
func Run(ctx context.Context, cfg *session.Config, settings *config.Settings) error {
	slog.Info("Starting session",
		"edition", cfg.Edition,
		"allApps", cfg.AllApps,
		"wayland", cfg.Wayland,
		"standalone", cfg.Standalone(),
	)

	console := ui.NewConsole()

	rt, err := runtime.NewDockerRuntime()
	if err != nil {
		return apperrors.NewDockerError(
			"Cannot reach the Docker daemon",
			err.Error(),
			"Check that Docker is installed and the daemon is running",
			err,
		)
	}

	resolver := image.NewResolver(rt, settings.ImagePrefix, console)
	ref, err := resolver.Ensure(ctx, cfg)
	if err != nil {
		return err
	}

	manager := lifecycle.NewManager(rt, settings.Devices, console)

	if !cfg.NeedsNestedDisplay() {
		return manager.Run(ctx, cfg, ref, "")
	}

	if err := display.Verify(); err != nil {
		return apperrors.NewDisplayServerError(
			"Nested display server is not available",
			err.Error(),
			"Install the Xephyr and xhost packages",
			err,
		)
	}

	return display.NewManager(settings.Geometry).WithSession(func(d string) error {
		return manager.Run(ctx, cfg, ref, d)
	})
}
