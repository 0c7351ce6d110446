//go:build integration

package vulkan_test

import (
	"os"
	"path/filepath"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/assets"
	"github.com/spaghettifunk/vkquad/engine/platform"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
	"github.com/spaghettifunk/vkquad/engine/renderer/vulkan"
	"github.com/stretchr/testify/require"
)

// Needs a display, a Vulkan driver and the shaders built by `mage build:shaders`.
func TestSetupQuad(t *testing.T) {
	root := filepath.Join("..", "..", "..", "assets")
	if _, err := os.Stat(filepath.Join(root, "shaders", "vert.spv")); err != nil {
		t.Skip("compiled shaders not found, run mage build:shaders")
	}

	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(root))
	defer am.Shutdown()

	vert, err := am.LoadShader("shaders/vert.spv", metadata.ShaderStageVertex)
	require.NoError(t, err)
	frag, err := am.LoadShader("shaders/frag.spv", metadata.ShaderStageFragment)
	require.NoError(t, err)

	p := platform.New()
	if err := p.Startup("quad-test", 0, 0, 640, 480); err != nil {
		t.Skipf("no window available: %s", err)
	}
	defer p.Shutdown()

	mesh := metadata.NewQuad()
	ctx, err := vulkan.Setup(vulkan.AppDescriptor{
		Name:       "quad-test",
		APIVersion: vk.MakeVersion(1, 0, 0),
		Debug:      os.Getenv("VKQUAD_DEBUG") != "",
	}, &vulkan.AppInformation{
		Window:     p,
		Shaders:    []*metadata.Shader{vert, frag},
		Vertices:   mesh.Vertices,
		Indices:    mesh.Indices,
		IndexCount: mesh.IndexCount,
	})
	require.NoError(t, err)
	defer ctx.Release()

	require.Equal(t, vulkan.SetupComplete, ctx.State)
	require.NotZero(t, ctx.Swapchain.ImageCount)
	require.Len(t, ctx.Framebuffers, int(ctx.Swapchain.ImageCount))
	require.Len(t, ctx.GraphicsCommandBuffers, int(ctx.Swapchain.ImageCount))
	for _, cb := range ctx.GraphicsCommandBuffers {
		require.Equal(t, uint32(6), cb.IndexCount)
		require.Equal(t, vulkan.CommandBufferStateRecordingEnded, cb.State)
	}
	require.Len(t, ctx.InFlightFences, len(ctx.Framebuffers))

	for i := 0; i < 3; i++ {
		require.NoError(t, ctx.DrawFrame())
	}
}
