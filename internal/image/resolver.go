package image

import (
	"context"
	"fmt"
	"log/slog"

	"neondocker/internal/ui"
	"neondocker/pkg/runtime"
	"neondocker/pkg/session"
)

// Reference derives the image reference for a session: the "all" variant
// carries every application, "plasma" just the desktop. The derivation is a
// pure function of (prefix, variant, edition).
func Reference(prefix string, cfg *session.Config) string {
	variant := "plasma"
	if cfg.AllApps {
		variant = "all"
	}
	return fmt.Sprintf("%s/%s:%s", prefix, variant, cfg.Edition)
}

// Resolver ensures the session's image is present in the local catalog.
type Resolver struct {
	rt      runtime.ContainerRuntime
	prefix  string
	console *ui.Console
}

func NewResolver(rt runtime.ContainerRuntime, prefix string, console *ui.Console) *Resolver {
	return &Resolver{rt: rt, prefix: prefix, console: console}
}

// Ensure returns the session's image reference, pulling it first when it is
// absent from the local catalog or a pull was forced. An image already
// present and not force-pulled triggers no pull at all.
func (r *Resolver) Ensure(ctx context.Context, cfg *session.Config) (string, error) {
	ref := Reference(r.prefix, cfg)

	present, err := r.rt.HasImage(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("failed to query image catalog: %w", err)
	}

	if present && !cfg.ForcePull {
		slog.Info("Image already present", "image", ref)
		return ref, nil
	}

	r.console.PrintStatus("Downloading image %s", ref)
	if err := r.rt.PullImage(ctx, ref); err != nil {
		return "", err
	}

	return ref, nil
}
