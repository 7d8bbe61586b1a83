package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Settings are the optional host-specific overrides loaded from a YAML
// settings file. The defaults match the stock KDE neon images and a typical
// single-GPU host; the file only needs to exist when those don't fit.
type Settings struct {
	// ImagePrefix is the registry namespace the desktop images live under.
	ImagePrefix string `mapstructure:"image_prefix" validate:"required"`

	// Geometry is the nested X server screen size, WIDTHxHEIGHT.
	Geometry string `mapstructure:"geometry" validate:"required"`

	// Devices are host device nodes exposed to full desktop sessions.
	Devices []string `mapstructure:"devices"`
}

// DefaultDevices are the host device nodes a full session binds: the first
// video-capture device and the DRI graphics nodes.
var DefaultDevices = []string{
	"/dev/video0",
	"/dev/dri/card0",
	"/dev/dri/controlD64",
	"/dev/dri/renderD128",
}

var validate = validator.New()

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		ImagePrefix: "kdeneon",
		Geometry:    "1024x768",
		Devices:     append([]string(nil), DefaultDevices...),
	}
}

// defaultPath returns the conventional settings file location.
func defaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "neondocker", "config.yaml")
}

// Load reads settings from path, or from the conventional location when path
// is empty. A missing file yields the defaults; a malformed or invalid file
// is an error.
func Load(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}

	settings := Default()
	if path == "" {
		return settings, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("settings file not found: %s", path)
		}
		return settings, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file - malformed YAML: %w", err)
	}

	if err := validate.Struct(settings); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	return settings, nil
}
