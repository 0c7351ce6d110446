package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
)

type VulkanRenderpass struct {
	Handle     vk.RenderPass
	X, Y, W, H float32
	R, G, B, A float32
}

// createRenderTargets builds the render pass, one view per swapchain image and
// one framebuffer per view.
func createRenderTargets(context *VulkanContext) error {
	extent := context.Swapchain.Extent
	rp, err := createRenderpass(context, 0, 0, float32(extent.Width), float32(extent.Height), 0.0, 0.0, 0.0, 1.0)
	if err != nil {
		return err
	}
	context.MainRenderpass = rp

	if err := createImageViews(context); err != nil {
		return err
	}

	context.Framebuffers = make([]*VulkanFramebuffer, 0, len(context.Swapchain.Views))
	for _, view := range context.Swapchain.Views {
		fb, err := createFramebuffer(context, rp, extent.Width, extent.Height, []vk.ImageView{view})
		if err != nil {
			return err
		}
		context.Framebuffers = append(context.Framebuffers, fb)
	}
	core.LogDebug("%d framebuffers created.", len(context.Framebuffers))
	return nil
}

func createRenderpass(context *VulkanContext, x, y, w, h, r, g, b, a float32) (*VulkanRenderpass, error) {
	out := &VulkanRenderpass{
		X: x, Y: y, W: w, H: h,
		R: r, G: g, B: b, A: a,
	}

	colorAttachment := vk.AttachmentDescription{
		Format:         context.Swapchain.ImageFormat.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,  // Do not expect any particular layout before render pass starts.
		FinalLayout:    vk.ImageLayoutPresentSrc, // Transitioned to after the render pass
	}

	colorAttachmentReference := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    colorAttachmentReference,
	}

	renderpassCreateInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{colorAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
	}

	var handle vk.RenderPass
	if err := check("vkCreateRenderPass", vk.CreateRenderPass(context.Device.LogicalDevice, &renderpassCreateInfo, context.Allocator, &handle)); err != nil {
		return nil, err
	}
	out.Handle = handle

	device := context.Device.LogicalDevice
	context.releases.push("render pass", func() {
		vk.DestroyRenderPass(device, handle, context.Allocator)
	})
	return out, nil
}

func createImageViews(context *VulkanContext) error {
	swapchain := context.Swapchain
	device := context.Device.LogicalDevice
	swapchain.Views = make([]vk.ImageView, 0, len(swapchain.Images))

	for _, image := range swapchain.Images {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    image,
			ViewType: vk.ImageViewType2d,
			Format:   swapchain.ImageFormat.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		}

		var view vk.ImageView
		if err := check("vkCreateImageView", vk.CreateImageView(device, &viewInfo, context.Allocator, &view)); err != nil {
			return err
		}
		swapchain.Views = append(swapchain.Views, view)
		context.releases.push("image view", func() {
			vk.DestroyImageView(device, view, context.Allocator)
		})
	}
	return nil
}

// begin starts the pass on commandBuffer with the clear colour.
func (vr *VulkanRenderpass) begin(commandBuffer *VulkanCommandBuffer, framebuffer vk.Framebuffer) {
	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  vr.Handle,
		Framebuffer: framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{
				X: int32(vr.X),
				Y: int32(vr.Y),
			},
			Extent: vk.Extent2D{
				Width:  uint32(vr.W),
				Height: uint32(vr.H),
			},
		},
		ClearValueCount: 1,
		PClearValues:    []vk.ClearValue{vk.NewClearValue([]float32{vr.R, vr.G, vr.B, vr.A})},
	}

	vk.CmdBeginRenderPass(commandBuffer.Handle, &beginInfo, vk.SubpassContentsInline)
	commandBuffer.State = CommandBufferStateInRenderPass
}

func (vr *VulkanRenderpass) end(commandBuffer *VulkanCommandBuffer) {
	vk.CmdEndRenderPass(commandBuffer.Handle)
	commandBuffer.State = CommandBufferStateRecording
}
