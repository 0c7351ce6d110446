package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
)

/**
 * @brief Holds a Vulkan pipeline and its layout.
 */
type VulkanPipeline struct {
	/** @brief The internal pipeline handle. */
	Handle vk.Pipeline
	/** @brief The pipeline layout. */
	PipelineLayout vk.PipelineLayout
}

/**
 * @brief Every piece of state the graphics pipeline is created from.
 * Built completely before the single creation call.
 */
type pipelineConfig struct {
	Stages []vk.PipelineShaderStageCreateInfo

	Binding    vk.VertexInputBindingDescription
	Attributes []vk.VertexInputAttributeDescription

	InputAssembly vk.PipelineInputAssemblyStateCreateInfo
	/** @brief Placeholders, both are overridden by dynamic state at record time. */
	Viewport      vk.Viewport
	Scissor       vk.Rect2D
	DynamicStates []vk.DynamicState
	Rasterizer    vk.PipelineRasterizationStateCreateInfo
	Multisampling vk.PipelineMultisampleStateCreateInfo
	DepthStencil  vk.PipelineDepthStencilStateCreateInfo
	ColorBlend    vk.PipelineColorBlendAttachmentState

	Layout     vk.PipelineLayout
	Renderpass vk.RenderPass
}

func vertexAttributes() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			// position
			Location: 0,
			Binding:  0,
			Format:   vk.FormatR32g32Sfloat,
			Offset:   0,
		},
		{
			// colour
			Location: 1,
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   metadata.VertexColorOffset,
		},
	}
}

func newPipelineConfig(stages []vk.PipelineShaderStageCreateInfo, extent vk.Extent2D, layout vk.PipelineLayout, renderpass vk.RenderPass) pipelineConfig {
	return pipelineConfig{
		Stages: stages,
		Binding: vk.VertexInputBindingDescription{
			Binding:   0, // Binding index
			Stride:    metadata.VertexStride,
			InputRate: vk.VertexInputRateVertex, // Move to next data entry for each vertex.
		},
		Attributes: vertexAttributes(),
		InputAssembly: vk.PipelineInputAssemblyStateCreateInfo{
			SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology:               vk.PrimitiveTopologyTriangleList,
			PrimitiveRestartEnable: vk.False,
		},
		Viewport: vk.Viewport{
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MinDepth: 0.0,
			MaxDepth: 1.0,
		},
		Scissor: vk.Rect2D{
			Extent: extent,
		},
		DynamicStates: []vk.DynamicState{
			vk.DynamicStateViewport,
			vk.DynamicStateScissor,
		},
		Rasterizer: vk.PipelineRasterizationStateCreateInfo{
			SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
			DepthClampEnable:        vk.False,
			RasterizerDiscardEnable: vk.False,
			PolygonMode:             vk.PolygonModeFill,
			CullMode:                vk.CullModeFlags(vk.CullModeBackBit),
			FrontFace:               vk.FrontFaceClockwise,
			DepthBiasEnable:         vk.False,
			LineWidth:               1.0,
		},
		Multisampling: vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
			SampleShadingEnable:  vk.False,
			MinSampleShading:     1.0,
		},
		DepthStencil: vk.PipelineDepthStencilStateCreateInfo{
			SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
			DepthTestEnable:       vk.True,
			DepthWriteEnable:      vk.True,
			DepthCompareOp:        vk.CompareOpLessOrEqual,
			DepthBoundsTestEnable: vk.False,
			StencilTestEnable:     vk.False,
		},
		ColorBlend: vk.PipelineColorBlendAttachmentState{
			BlendEnable: vk.False,
			ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit) | vk.ColorComponentFlags(vk.ColorComponentGBit) |
				vk.ColorComponentFlags(vk.ColorComponentBBit) | vk.ColorComponentFlags(vk.ColorComponentABit),
		},
		Layout:     layout,
		Renderpass: renderpass,
	}
}

// createInfo links every state block of the config into one create info.
func (c *pipelineConfig) createInfo() vk.GraphicsPipelineCreateInfo {
	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      []vk.VertexInputBindingDescription{c.Binding},
		VertexAttributeDescriptionCount: uint32(len(c.Attributes)),
		PVertexAttributeDescriptions:    c.Attributes,
	}
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    []vk.Viewport{c.Viewport},
		ScissorCount:  1,
		PScissors:     []vk.Rect2D{c.Scissor},
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{c.ColorBlend},
	}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(c.DynamicStates)),
		PDynamicStates:    c.DynamicStates,
	}
	inputAssembly := c.InputAssembly
	rasterizer := c.Rasterizer
	multisampling := c.Multisampling
	depthStencil := c.DepthStencil

	return vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(c.Stages)),
		PStages:             c.Stages,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterizer,
		PMultisampleState:   &multisampling,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamicState,
		Layout:              c.Layout,
		RenderPass:          c.Renderpass,
		Subpass:             0,
		BasePipelineHandle:  vk.NullPipeline,
		BasePipelineIndex:   -1,
	}
}

func createPipeline(context *VulkanContext, info *AppInformation) error {
	if len(info.Shaders) == 0 {
		err := fmt.Errorf("%w: no shaders configured", core.ErrInvalidInput)
		core.LogError("%s", err)
		return err
	}

	stages := make([]vk.PipelineShaderStageCreateInfo, 0, len(info.Shaders))
	modules := make([]*VulkanShaderStage, 0, len(info.Shaders))
	// Modules are only needed until the pipeline exists.
	defer func() {
		for _, m := range modules {
			m.Destroy(context)
		}
	}()
	for _, shader := range info.Shaders {
		m, err := NewShaderModule(context, shader)
		if err != nil {
			return err
		}
		modules = append(modules, m)
		stages = append(stages, m.ShaderStageCreateInfo)
	}

	device := context.Device.LogicalDevice
	out := &VulkanPipeline{}

	// Empty layout: no descriptor sets, no push constants.
	pipelineLayoutCreateInfo := vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}
	var layout vk.PipelineLayout
	if err := check("vkCreatePipelineLayout", vk.CreatePipelineLayout(device, &pipelineLayoutCreateInfo, context.Allocator, &layout)); err != nil {
		return err
	}
	out.PipelineLayout = layout
	context.releases.push("pipeline layout", func() {
		vk.DestroyPipelineLayout(device, layout, context.Allocator)
	})

	config := newPipelineConfig(stages, context.Swapchain.Extent, layout, context.MainRenderpass.Handle)
	pipelineCreateInfo := config.createInfo()

	pipelines := make([]vk.Pipeline, 1)
	if err := check("vkCreateGraphicsPipelines", vk.CreateGraphicsPipelines(device, vk.NullPipelineCache, 1, []vk.GraphicsPipelineCreateInfo{pipelineCreateInfo}, context.Allocator, pipelines)); err != nil {
		return err
	}
	out.Handle = pipelines[0]
	context.Pipeline = out
	pipeline := out.Handle
	context.releases.push("pipeline", func() {
		vk.DestroyPipeline(device, pipeline, context.Allocator)
	})

	core.LogDebug("Graphics pipeline created!")
	return nil
}

func (pipeline *VulkanPipeline) Bind(commandBuffer *VulkanCommandBuffer, bindPoint vk.PipelineBindPoint) {
	vk.CmdBindPipeline(commandBuffer.Handle, bindPoint, pipeline.Handle)
}
