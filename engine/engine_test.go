package engine

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/config"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[application]
name = "quad"
api_version = "1.2"

[window]
width = 640
height = 480

[log]
level = "warn"

[device]
scan_all = true
`))
	require.NoError(t, err)

	app, err := NewApplicationConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, "quad", app.Name)
	require.Equal(t, uint32(640), app.StartWidth)
	require.Equal(t, uint32(480), app.StartHeight)
	require.Equal(t, core.WarnLevel, app.LogLevel)
	require.Equal(t, "assets", app.AssetsRoot)
	require.Equal(t, "quad", app.Renderer.Name)
	require.Equal(t, vk.MakeVersion(1, 2, 0), app.Renderer.APIVersion)
	require.True(t, app.Renderer.ScanAllDevices)
	require.True(t, app.Renderer.Debug)
	require.Equal(t, []string{config.DefaultValidationLayer}, app.Renderer.ValidationLayers)
}

func TestNewApplicationConfigWithoutDebug(t *testing.T) {
	cfg := config.Default()
	cfg.Debug.Enabled = false

	app, err := NewApplicationConfig(cfg)
	require.NoError(t, err)
	require.False(t, app.Renderer.Debug)
	require.Empty(t, app.Renderer.ValidationLayers)
}

func TestEngineStageGuards(t *testing.T) {
	app, err := NewApplicationConfig(config.Default())
	require.NoError(t, err)

	e, err := New(app)
	require.NoError(t, err)
	require.Equal(t, EngineStageUninitialized, e.Stage())

	// Nothing runs before Initialize.
	require.Error(t, e.Run())
	require.NoError(t, e.Shutdown())
	require.Equal(t, "shutting down", EngineStageShuttingDown.String())
}
