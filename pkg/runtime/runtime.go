package runtime

import "context"

// Container states as reported by the runtime.
const (
	StateRunning = "running"
	StateExited  = "exited"
)

// DeviceBinding exposes a host device node inside the container.
type DeviceBinding struct {
	PathOnHost      string
	PathInContainer string
	// Permissions is the cgroup permission string, e.g. "rwm".
	Permissions string
}

// CreateOptions defines the parameters for creating a container.
type CreateOptions struct {
	Image      string
	Name       string
	Command    []string
	Entrypoint []string
	Env        []string
	// Binds maps host paths to container paths as bind mounts.
	Binds   map[string]string
	Devices []DeviceBinding
}

// ContainerInfo is a summary of an existing container.
type ContainerInfo struct {
	ID    string
	Image string
	State string
}

// ContainerRuntime defines the contract for the container engine operations
// the launcher consumes.
type ContainerRuntime interface {
	// HasImage reports whether the image reference exists in the local catalog.
	HasImage(ctx context.Context, ref string) (bool, error)

	// PullImage downloads the image reference from its registry.
	PullImage(ctx context.Context, ref string) error

	// ListContainers returns all containers, including stopped ones.
	ListContainers(ctx context.Context) ([]ContainerInfo, error)

	// CreateContainer creates a container and returns its ID.
	CreateContainer(ctx context.Context, opts CreateOptions) (string, error)

	// StartContainer starts a previously created container.
	StartContainer(ctx context.Context, id string) error

	// ContainerState returns the current state string for a container.
	ContainerState(ctx context.Context, id string) (string, error)

	// RemoveContainer force-removes a container.
	RemoveContainer(ctx context.Context, id string) error
}
