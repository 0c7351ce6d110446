package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[application]
name = "quad"
api_version = "1.2"

[window]
width = 800
height = 600

[log]
level = "warn"

[debug]
enabled = false

[device]
scan_all = true
`))
	require.NoError(t, err)
	require.Equal(t, "quad", cfg.Application.Name)
	require.Equal(t, uint32(800), cfg.Window.Width)
	require.Equal(t, uint32(100), cfg.Window.X)
	require.False(t, cfg.Debug.Enabled)
	require.Equal(t, []string{DefaultValidationLayer}, cfg.Debug.ValidationLayers)
	require.True(t, cfg.Device.ScanAll)
	require.Equal(t, core.WarnLevel, cfg.LogLevel())
	require.Equal(t, "shaders/vert.spv", cfg.Assets.VertexShader)

	major, minor, patch, err := cfg.APIVersion()
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 0}, []uint32{major, minor, patch})
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad version": "[application]\napi_version = \"one\"\n",
		"short":       "[application]\napi_version = \"1\"\n",
		"zero window": "[window]\nwidth = 0\n",
		"bad level":   "[log]\nlevel = \"loud\"\n",
		"empty name":  "[application]\nname = \"\"\n",
		"no shader":   "[assets]\nvertex_shader = \"\"\n",
		"broken toml": "[application\n",
	}
	for name, in := range tests {
		_, err := Parse([]byte(in))
		require.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[application]\nname = \"from-file\"\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.Application.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
