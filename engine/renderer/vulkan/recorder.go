package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
)

// recordCommands records one primary command buffer per framebuffer, each
// drawing the single uploaded mesh.
func recordCommands(context *VulkanContext, info *AppInformation) error {
	if info.IndexCount == 0 {
		err := fmt.Errorf("%w: nothing to draw", core.ErrInvalidInput)
		core.LogError("%s", err)
		return err
	}

	pool := context.Device.GraphicsCommandPool
	context.GraphicsCommandBuffers = make([]*VulkanCommandBuffer, 0, len(context.Framebuffers))
	for i, fb := range context.Framebuffers {
		cb, err := NewVulkanCommandBuffer(context, pool, true)
		if err != nil {
			return err
		}
		context.GraphicsCommandBuffers = append(context.GraphicsCommandBuffers, cb)
		context.releases.push("command buffer", func() {
			cb.Free(context, pool)
		})

		if err := recordDraw(context, cb, fb, info.IndexCount); err != nil {
			return fmt.Errorf("command buffer %d: %w", i, err)
		}
	}
	core.LogDebug("Vulkan command buffers recorded.")
	return nil
}

func recordDraw(context *VulkanContext, cb *VulkanCommandBuffer, fb *VulkanFramebuffer, indexCount uint32) error {
	if err := cb.Begin(false, false, true); err != nil {
		return err
	}

	context.MainRenderpass.begin(cb, fb.Handle)
	context.Pipeline.Bind(cb, vk.PipelineBindPointGraphics)

	// Dynamic state
	extent := context.Swapchain.Extent
	vk.CmdSetViewport(cb.Handle, 0, 1, []vk.Viewport{{
		X:        0.0,
		Y:        0.0,
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}})
	vk.CmdSetScissor(cb.Handle, 0, 1, []vk.Rect2D{{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: extent,
	}})

	vk.CmdBindVertexBuffers(cb.Handle, 0, 1, []vk.Buffer{context.VertexBuffer.Buffer}, []vk.DeviceSize{0})
	vk.CmdBindIndexBuffer(cb.Handle, context.IndexBuffer.Buffer, 0, vk.IndexTypeUint16)
	vk.CmdDrawIndexed(cb.Handle, indexCount, 1, 0, 0, 0)
	cb.IndexCount = indexCount

	context.MainRenderpass.end(cb)
	return cb.End()
}
