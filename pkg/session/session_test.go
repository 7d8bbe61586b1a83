package session

import (
	"strings"
	"testing"
)

func TestNew_ValidEditions(t *testing.T) {
	for _, edition := range Editions {
		cfg, err := New(Options{Edition: string(edition)})
		if err != nil {
			t.Errorf("New with edition %q returned error: %v", edition, err)
			continue
		}
		if cfg.Edition != edition {
			t.Errorf("New with edition %q built config with edition %q", edition, cfg.Edition)
		}
	}
}

func TestNew_InvalidEdition(t *testing.T) {
	tests := []string{"", "nightly", "user-lt", "USER"}

	for _, edition := range tests {
		cfg, err := New(Options{Edition: edition})
		if err == nil {
			t.Errorf("New with edition %q should fail, got config %+v", edition, cfg)
			continue
		}
		// The error message must list the allowed set
		for _, valid := range Editions {
			if !strings.Contains(err.Error(), string(valid)) {
				t.Errorf("error for edition %q should mention %q, got: %v", edition, valid, err)
			}
		}
	}
}

func TestNew_ReattachImpliesKeepAlive(t *testing.T) {
	cfg, err := New(Options{Edition: "user", Reattach: true})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.KeepAlive {
		t.Error("reattach should imply keep-alive")
	}
}

func TestNew_CommandImpliesAlwaysNew(t *testing.T) {
	cfg, err := New(Options{Edition: "user", Command: []string{"kate"}})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.AlwaysNew {
		t.Error("a standalone command should imply always-new")
	}
	if !cfg.Standalone() {
		t.Error("config with a command should report standalone")
	}
}

func TestConfig_NeedsNestedDisplay(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want bool
	}{
		{"full desktop session", Options{Edition: "user"}, true},
		{"wayland session", Options{Edition: "user", Wayland: true}, false},
		{"standalone application", Options{Edition: "user", Command: []string{"dolphin"}}, false},
		{"standalone wayland", Options{Edition: "user", Wayland: true, Command: []string{"dolphin"}}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := New(test.opts)
			if err != nil {
				t.Fatal(err)
			}
			if got := cfg.NeedsNestedDisplay(); got != test.want {
				t.Errorf("NeedsNestedDisplay() = %v, want %v", got, test.want)
			}
		})
	}
}
