package session

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Edition names a KDE neon build variant.
type Edition string

const (
	EditionUserLTS     Edition = "user-lts"
	EditionUser        Edition = "user"
	EditionDevStable   Edition = "dev-stable"
	EditionDevUnstable Edition = "dev-unstable"
)

// Editions lists every edition the image catalog publishes.
var Editions = []Edition{EditionUserLTS, EditionUser, EditionDevStable, EditionDevUnstable}

// Config is the immutable record of one launcher invocation, built once from
// the parsed command line and passed explicitly to every downstream component.
type Config struct {
	Edition   Edition `validate:"required,oneof=user-lts user dev-stable dev-unstable"`
	AllApps   bool
	ForcePull bool
	KeepAlive bool
	Reattach  bool
	AlwaysNew bool
	Wayland   bool
	// Command is the standalone-application argument vector; empty means a
	// full desktop session.
	Command []string
}

// Options carries the raw flag values before implication rules are applied.
type Options struct {
	Edition   string
	AllApps   bool
	ForcePull bool
	KeepAlive bool
	Reattach  bool
	AlwaysNew bool
	Wayland   bool
	Command   []string
}

var validate = validator.New()

// New builds a validated Config from parsed options. Reattach implies
// keep-alive, and a standalone command always gets a fresh container.
func New(opts Options) (*Config, error) {
	cfg := &Config{
		Edition:   Edition(opts.Edition),
		AllApps:   opts.AllApps,
		ForcePull: opts.ForcePull,
		KeepAlive: opts.KeepAlive,
		Reattach:  opts.Reattach,
		AlwaysNew: opts.AlwaysNew,
		Wayland:   opts.Wayland,
		Command:   opts.Command,
	}

	if cfg.Reattach {
		cfg.KeepAlive = true
	}
	if len(cfg.Command) > 0 {
		cfg.AlwaysNew = true
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("unknown edition %q, valid editions are: %s", opts.Edition, editionList())
	}

	return cfg, nil
}

// Standalone reports whether the invocation runs a single application
// against the host display instead of a full desktop session.
func (c *Config) Standalone() bool {
	return len(c.Command) > 0
}

// NeedsNestedDisplay reports whether a nested X server must be allocated.
// Standalone applications and Wayland sessions target the host display.
func (c *Config) NeedsNestedDisplay() bool {
	return !c.Standalone() && !c.Wayland
}

func editionList() string {
	names := make([]string, len(Editions))
	for i, e := range Editions {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}
