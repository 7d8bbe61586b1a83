package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"neondocker/internal/ui"
)

type ErrorHandler struct {
	logger  *slog.Logger
	console *ui.Console
}

func NewErrorHandler() (*ErrorHandler, error) {
	logFile, err := createLogFile()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &ErrorHandler{
		logger:  logger,
		console: ui.NewConsole(),
	}, nil
}

// logDir returns the OS-standard log directory, honoring the
// NEONDOCKER_LOG_DIR override.
func logDir() (string, error) {
	if custom := os.Getenv("NEONDOCKER_LOG_DIR"); custom != "" {
		return custom, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "neondocker"), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		// XDG Base Directory layout
		return filepath.Join(homeDir, ".local", "share", "neondocker", "logs"), nil
	default:
		return filepath.Join(homeDir, ".neondocker", "logs"), nil
	}
}

// ensureLogDir creates the standard log directory, falling back to the
// working directory when it is not writable.
func ensureLogDir() (string, error) {
	dir, err := logDir()
	if err == nil {
		if mkErr := os.MkdirAll(dir, 0750); mkErr == nil {
			return dir, nil
		}
	}

	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		return "", fmt.Errorf("cannot determine current directory for fallback logging: %w", cwdErr)
	}
	fmt.Fprintf(os.Stderr, "Warning: cannot access standard log directory, logging to %s\n", cwd)
	return cwd, nil
}

func createLogFile() (*os.File, error) {
	dir, err := ensureLogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(dir, "neondocker.log")
	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}

	var launchErr *LaunchError
	if errors.As(err, &launchErr) {
		h.handleLaunchError(launchErr)
	} else {
		h.handleGenericError(err)
	}
}

func (h *ErrorHandler) handleLaunchError(err *LaunchError) {
	h.logStructuredError(err)

	message := h.console.FormatErrorMessage(err.Context, err.Cause, err.Suggestion)
	h.console.PrintError(message)
}

func (h *ErrorHandler) handleGenericError(err error) {
	h.logger.Error("Unhandled error occurred",
		"error", err.Error(),
		"type", "generic",
	)

	h.console.PrintError(err.Error())
}

func (h *ErrorHandler) logStructuredError(err *LaunchError) {
	logAttrs := []slog.Attr{
		slog.String("error", err.OriginalErr.Error()),
		slog.String("type", errorTypeName(err.Type)),
		slog.String("context", err.Context),
	}

	if err.Cause != "" {
		logAttrs = append(logAttrs, slog.String("cause", err.Cause))
	}

	if err.Suggestion != "" {
		logAttrs = append(logAttrs, slog.String("suggestion", err.Suggestion))
	}

	h.logger.LogAttrs(context.TODO(), slog.LevelError, "Launch error occurred", logAttrs...)
}

func errorTypeName(errType error) string {
	switch errType {
	case ErrDockerUnavailable:
		return "docker_unavailable"
	case ErrImageNotFound:
		return "image_not_found"
	case ErrEditionInvalid:
		return "edition_invalid"
	case ErrDisplayServerMissing:
		return "display_server_missing"
	case ErrDisplayFailed:
		return "display_failed"
	case ErrRuntimeFailed:
		return "runtime_failed"
	case ErrConfigInvalid:
		return "config_invalid"
	default:
		return "unknown"
	}
}
