// Package config loads the TOML file that drives a setup run.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/vkquad/engine/core"
)

const DefaultValidationLayer = "VK_LAYER_KHRONOS_validation"

type Config struct {
	Application Application `toml:"application"`
	Window      Window      `toml:"window"`
	Log         Log         `toml:"log"`
	Debug       Debug       `toml:"debug"`
	Device      Device      `toml:"device"`
	Assets      Assets      `toml:"assets"`
}

type Application struct {
	Name string `toml:"name"`
	// APIVersion is the minimum Vulkan version a device must report, "major.minor[.patch]".
	APIVersion string `toml:"api_version"`
}

type Window struct {
	X      uint32 `toml:"x"`
	Y      uint32 `toml:"y"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type Log struct {
	Level string `toml:"level"`
}

type Debug struct {
	Enabled          bool     `toml:"enabled"`
	ValidationLayers []string `toml:"validation_layers"`
}

type Device struct {
	// ScanAll keeps every device meeting the version filter instead of
	// stopping at the first one.
	ScanAll bool `toml:"scan_all"`
}

type Assets struct {
	// Root is the watched asset directory. Shader paths are relative to it.
	Root           string `toml:"root"`
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Application: Application{
			Name:       "vkquad",
			APIVersion: "1.0.0",
		},
		Window: Window{
			X:      100,
			Y:      100,
			Width:  1280,
			Height: 720,
		},
		Log: Log{Level: "debug"},
		Debug: Debug{
			Enabled:          true,
			ValidationLayers: []string{DefaultValidationLayer},
		},
		Assets: Assets{
			Root:           "assets",
			VertexShader:   "shaders/vert.spv",
			FragmentShader: "shaders/frag.spv",
		},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Application.Name) == "" {
		return fmt.Errorf("application.name must not be empty")
	}
	if _, _, _, err := c.APIVersion(); err != nil {
		return err
	}
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Assets.Root == "" {
		return fmt.Errorf("assets.root must not be empty")
	}
	if c.Assets.VertexShader == "" || c.Assets.FragmentShader == "" {
		return fmt.Errorf("assets.vertex_shader and assets.fragment_shader are required")
	}
	return nil
}

// APIVersion splits application.api_version into its components.
func (c *Config) APIVersion() (major, minor, patch uint32, err error) {
	parts := strings.Split(strings.TrimSpace(c.Application.APIVersion), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("application.api_version %q is not major.minor[.patch]", c.Application.APIVersion)
	}
	nums := make([]uint32, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("application.api_version %q: %w", c.Application.APIVersion, err)
		}
		nums[i] = uint32(n)
	}
	return nums[0], nums[1], nums[2], nil
}

func (c *Config) LogLevel() core.LogLevel {
	l, _ := core.ParseLogLevel(c.Log.Level)
	return l
}
