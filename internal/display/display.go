package display

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	apperrors "neondocker/internal/errors"
)

const (
	// DefaultSocketDir is where X servers publish their listening sockets.
	DefaultSocketDir = "/tmp/.X11-unix"

	// XephyrBinary is the nested X server executable.
	XephyrBinary = "Xephyr"

	// XhostBinary toggles host-display access control.
	XhostBinary = "xhost"
)

// killable is the part of a spawned server process the manager needs.
type killable interface {
	Kill() error
}

// Manager owns one nested display for the duration of a session: it finds a
// free display slot, spawns a nested X server on it, and guarantees the
// server is killed exactly once when the wrapped operation returns.
type Manager struct {
	SocketDir string
	Geometry  string

	// Hooks over the host processes, replaceable in tests.
	spawn     func(display, geometry string) (killable, error)
	setAccess func(enable bool) error
}

func NewManager(geometry string) *Manager {
	return &Manager{
		SocketDir: DefaultSocketDir,
		Geometry:  geometry,
		spawn:     spawnXephyr,
		setAccess: setHostAccess,
	}
}

// Verify checks that the nested X server and the access-control utility are
// installed on the host.
func Verify() error {
	if _, err := exec.LookPath(XephyrBinary); err != nil {
		return fmt.Errorf("%w: %s is not installed", apperrors.ErrDisplayServerMissing, XephyrBinary)
	}
	if _, err := exec.LookPath(XhostBinary); err != nil {
		return fmt.Errorf("%w: %s is not installed", apperrors.ErrDisplayServerMissing, XhostBinary)
	}
	return nil
}

// FreeSlot returns the smallest display number >= 1 with no X socket in
// socketDir.
func FreeSlot(socketDir string) int {
	for i := 1; ; i++ {
		socket := filepath.Join(socketDir, fmt.Sprintf("X%d", i))
		if _, err := os.Stat(socket); os.IsNotExist(err) {
			return i
		}
	}
}

// WithSession allocates a free display slot, starts a nested X server on it,
// opens host-display access, and runs fn against the allocated display.
// Server teardown and access-control restoration happen on every exit path,
// the kill exactly once.
func (m *Manager) WithSession(fn func(display string) error) error {
	slot := FreeSlot(m.SocketDir)
	display := fmt.Sprintf(":%d", slot)

	server, err := m.spawn(display, m.Geometry)
	if err != nil {
		return apperrors.NewDisplayError(
			"Failed to start nested X server",
			err.Error(),
			fmt.Sprintf("Check that %s works on this host", XephyrBinary),
			err,
		)
	}
	defer func() {
		if killErr := server.Kill(); killErr != nil {
			slog.Warn("Failed to stop nested X server", "display", display, "error", killErr)
		}
	}()

	if err := m.setAccess(true); err != nil {
		slog.Warn("Failed to open host display access", "error", err)
	}
	defer func() {
		if accessErr := m.setAccess(false); accessErr != nil {
			slog.Warn("Failed to restore host display access", "error", accessErr)
		}
	}()

	slog.Info("Nested display ready", "display", display, "geometry", m.Geometry)
	return fn(display)
}

// xephyrProcess wraps the spawned server so teardown also reaps it.
type xephyrProcess struct {
	cmd *exec.Cmd
}

func (p *xephyrProcess) Kill() error {
	if err := p.cmd.Process.Kill(); err != nil {
		return err
	}
	_ = p.cmd.Wait()
	return nil
}

func spawnXephyr(display, geometry string) (killable, error) {
	cmd := exec.Command(XephyrBinary, display, "-screen", geometry)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s on %s: %w", XephyrBinary, display, err)
	}
	return &xephyrProcess{cmd: cmd}, nil
}

func setHostAccess(enable bool) error {
	arg := "-"
	if enable {
		arg = "+"
	}
	return exec.Command(XhostBinary, arg).Run()
}
