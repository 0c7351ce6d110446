package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
	"github.com/stretchr/testify/require"
)

func TestVertexAttributesMatchMeshLayout(t *testing.T) {
	attrs := vertexAttributes()
	require.Len(t, attrs, 2)

	require.Equal(t, uint32(0), attrs[0].Location)
	require.Equal(t, vk.FormatR32g32Sfloat, attrs[0].Format)
	require.Equal(t, uint32(0), attrs[0].Offset)

	require.Equal(t, uint32(1), attrs[1].Location)
	require.Equal(t, vk.FormatR32g32b32Sfloat, attrs[1].Format)
	require.Equal(t, metadata.VertexColorOffset, attrs[1].Offset)
}

func TestPipelineConfig(t *testing.T) {
	extent := vk.Extent2D{Width: 800, Height: 600}
	stages := []vk.PipelineShaderStageCreateInfo{
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageVertexBit},
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageFragmentBit},
	}
	var layout vk.PipelineLayout
	var renderpass vk.RenderPass

	config := newPipelineConfig(stages, extent, layout, renderpass)
	require.Equal(t, metadata.VertexStride, config.Binding.Stride)
	require.Equal(t, vk.VertexInputRateVertex, config.Binding.InputRate)
	require.Equal(t, vk.PrimitiveTopologyTriangleList, config.InputAssembly.Topology)
	require.Equal(t, float32(800), config.Viewport.Width)
	require.Equal(t, float32(600), config.Viewport.Height)
	require.Equal(t, float32(1), config.Viewport.MaxDepth)
	require.Equal(t, extent, config.Scissor.Extent)
	require.Equal(t, []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor}, config.DynamicStates)
	require.Equal(t, vk.PolygonModeFill, config.Rasterizer.PolygonMode)
	require.Equal(t, vk.CullModeFlags(vk.CullModeBackBit), config.Rasterizer.CullMode)
	require.Equal(t, vk.FrontFaceClockwise, config.Rasterizer.FrontFace)
	require.Equal(t, vk.SampleCount1Bit, config.Multisampling.RasterizationSamples)
	require.Equal(t, vk.Bool32(vk.True), config.DepthStencil.DepthTestEnable)
	require.Equal(t, vk.CompareOpLessOrEqual, config.DepthStencil.DepthCompareOp)
	require.Equal(t, vk.Bool32(vk.False), config.ColorBlend.BlendEnable)

	info := config.createInfo()
	require.Equal(t, uint32(2), info.StageCount)
	require.Len(t, info.PStages, 2)
	require.NotNil(t, info.PVertexInputState)
	require.Equal(t, uint32(2), info.PVertexInputState.VertexAttributeDescriptionCount)
	require.Equal(t, uint32(1), info.PViewportState.ViewportCount)
	require.Equal(t, uint32(1), info.PViewportState.ScissorCount)
	require.Equal(t, uint32(2), info.PDynamicState.DynamicStateCount)
	require.Equal(t, uint32(1), info.PColorBlendState.AttachmentCount)
	require.NotNil(t, info.PDepthStencilState)
	require.NotNil(t, info.PRasterizationState)
	require.NotNil(t, info.PMultisampleState)
	require.Equal(t, int32(-1), info.BasePipelineIndex)
	require.Equal(t, uint32(0), info.Subpass)
}
