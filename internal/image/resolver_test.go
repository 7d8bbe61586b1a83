package image

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"neondocker/internal/ui"
	"neondocker/pkg/runtime"
	"neondocker/pkg/session"
)

// MockContainerRuntime is a mock implementation of the ContainerRuntime interface
type MockContainerRuntime struct {
	*mock.Mock
}

func NewMockContainerRuntime() *MockContainerRuntime {
	return &MockContainerRuntime{Mock: &mock.Mock{}}
}

func (m *MockContainerRuntime) HasImage(ctx context.Context, ref string) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

func (m *MockContainerRuntime) PullImage(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockContainerRuntime) ListContainers(ctx context.Context) ([]runtime.ContainerInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]runtime.ContainerInfo), args.Error(1)
}

func (m *MockContainerRuntime) CreateContainer(ctx context.Context, opts runtime.CreateOptions) (string, error) {
	args := m.Called(ctx, opts)
	return args.String(0), args.Error(1)
}

func (m *MockContainerRuntime) StartContainer(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContainerRuntime) ContainerState(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockContainerRuntime) RemoveContainer(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func mustConfig(t *testing.T, opts session.Options) *session.Config {
	t.Helper()
	cfg, err := session.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestReference(t *testing.T) {
	tests := []struct {
		name string
		opts session.Options
		want string
	}{
		{"plasma user", session.Options{Edition: "user"}, "kdeneon/plasma:user"},
		{"plasma user-lts", session.Options{Edition: "user-lts"}, "kdeneon/plasma:user-lts"},
		{"plasma dev-stable", session.Options{Edition: "dev-stable"}, "kdeneon/plasma:dev-stable"},
		{"plasma dev-unstable", session.Options{Edition: "dev-unstable"}, "kdeneon/plasma:dev-unstable"},
		{"all apps user", session.Options{Edition: "user", AllApps: true}, "kdeneon/all:user"},
		{"all apps dev-unstable", session.Options{Edition: "dev-unstable", AllApps: true}, "kdeneon/all:dev-unstable"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := mustConfig(t, test.opts)

			got := Reference("kdeneon", cfg)
			if got != test.want {
				t.Errorf("Reference() = %q, want %q", got, test.want)
			}

			// Deterministic: same configuration, same reference
			if again := Reference("kdeneon", cfg); again != got {
				t.Errorf("Reference() is not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestResolver_Ensure_PresentImageNotPulled(t *testing.T) {
	rt := NewMockContainerRuntime()
	rt.On("HasImage", mock.Anything, "kdeneon/plasma:user").Return(true, nil)

	resolver := NewResolver(rt, "kdeneon", ui.NewConsole())
	cfg := mustConfig(t, session.Options{Edition: "user"})

	ref, err := resolver.Ensure(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if ref != "kdeneon/plasma:user" {
		t.Errorf("Ensure() returned %q, want %q", ref, "kdeneon/plasma:user")
	}

	rt.AssertNotCalled(t, "PullImage", mock.Anything, mock.Anything)
}

func TestResolver_Ensure_AbsentImagePulledOnce(t *testing.T) {
	rt := NewMockContainerRuntime()
	rt.On("HasImage", mock.Anything, "kdeneon/plasma:dev-stable").Return(false, nil)
	rt.On("PullImage", mock.Anything, "kdeneon/plasma:dev-stable").Return(nil)

	resolver := NewResolver(rt, "kdeneon", ui.NewConsole())
	cfg := mustConfig(t, session.Options{Edition: "dev-stable"})

	if _, err := resolver.Ensure(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	rt.AssertNumberOfCalls(t, "PullImage", 1)
}

func TestResolver_Ensure_ForcePull(t *testing.T) {
	rt := NewMockContainerRuntime()
	rt.On("HasImage", mock.Anything, "kdeneon/plasma:user").Return(true, nil)
	rt.On("PullImage", mock.Anything, "kdeneon/plasma:user").Return(nil)

	resolver := NewResolver(rt, "kdeneon", ui.NewConsole())
	cfg := mustConfig(t, session.Options{Edition: "user", ForcePull: true})

	if _, err := resolver.Ensure(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	rt.AssertNumberOfCalls(t, "PullImage", 1)
}

func TestResolver_Ensure_PullFailure(t *testing.T) {
	pullErr := errors.New("registry unreachable")

	rt := NewMockContainerRuntime()
	rt.On("HasImage", mock.Anything, mock.Anything).Return(false, nil)
	rt.On("PullImage", mock.Anything, mock.Anything).Return(pullErr)

	resolver := NewResolver(rt, "kdeneon", ui.NewConsole())
	cfg := mustConfig(t, session.Options{Edition: "user"})

	if _, err := resolver.Ensure(context.Background(), cfg); !errors.Is(err, pullErr) {
		t.Errorf("Ensure() error = %v, want wrapped %v", err, pullErr)
	}
}
