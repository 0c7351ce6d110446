package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/math"
)

// preferredImageCount asks for triple buffering.
const preferredImageCount uint32 = 3

type VulkanSwapchain struct {
	Handle      vk.Swapchain
	ImageFormat vk.SurfaceFormat
	Extent      vk.Extent2D
	ImageCount  uint32
	Images      []vk.Image
	// Views are filled by the render target stage.
	Views []vk.ImageView
}

// chooseImageCount clamps the preferred count to the surface limits. A
// maximum of zero means the surface sets no upper limit.
func chooseImageCount(minCount, maxCount uint32) uint32 {
	if maxCount == 0 {
		maxCount = ^uint32(0)
	}
	if minCount > maxCount {
		return 0
	}
	return math.Clamp(preferredImageCount, minCount, maxCount)
}

func surfaceFormats(physical vk.PhysicalDevice, surface vk.Surface) ([]vk.SurfaceFormat, error) {
	var count uint32
	if err := check("vkGetPhysicalDeviceSurfaceFormatsKHR", vk.GetPhysicalDeviceSurfaceFormats(physical, surface, &count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, capabilityMissing("surface reports no formats")
	}
	formats := make([]vk.SurfaceFormat, count)
	if err := check("vkGetPhysicalDeviceSurfaceFormatsKHR", vk.GetPhysicalDeviceSurfaceFormats(physical, surface, &count, formats)); err != nil {
		return nil, err
	}
	for i := range formats[:count] {
		formats[i].Deref()
	}
	return formats[:count], nil
}

func createSwapchain(context *VulkanContext, info *AppInformation) error {
	device := context.Device

	var capabilities vk.SurfaceCapabilities
	if err := check("vkGetPhysicalDeviceSurfaceCapabilitiesKHR", vk.GetPhysicalDeviceSurfaceCapabilities(device.PhysicalDevice, context.Surface, &capabilities)); err != nil {
		return err
	}
	capabilities.Deref()

	formats, err := surfaceFormats(device.PhysicalDevice, context.Surface)
	if err != nil {
		return err
	}
	info.SurfaceFormats = formats

	imageCount := chooseImageCount(capabilities.MinImageCount, capabilities.MaxImageCount)
	if imageCount == 0 {
		return capabilityMissing("surface allows no images (min %d, max %d)", capabilities.MinImageCount, capabilities.MaxImageCount)
	}

	width, height := info.Window.FramebufferSize()
	if width <= 0 || height <= 0 {
		err := fmt.Errorf("%w: framebuffer size %dx%d", core.ErrInvalidInput, width, height)
		core.LogError("%s", err)
		return err
	}

	swapchain := &VulkanSwapchain{
		ImageFormat: formats[0],
		Extent: vk.Extent2D{
			Width:  uint32(width),
			Height: uint32(height),
		},
	}

	swapchainCreateInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          context.Surface,
		MinImageCount:    imageCount,
		ImageFormat:      swapchain.ImageFormat.Format,
		ImageColorSpace:  swapchain.ImageFormat.ColorSpace,
		ImageExtent:      swapchain.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferDstBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      vk.PresentModeFifo,
		Clipped:          vk.True,
		OldSwapchain:     nil,
	}

	var handle vk.Swapchain
	if err := check("vkCreateSwapchainKHR", vk.CreateSwapchain(device.LogicalDevice, &swapchainCreateInfo, context.Allocator, &handle)); err != nil {
		return err
	}
	swapchain.Handle = handle
	context.Swapchain = swapchain
	context.releases.push("swapchain", func() {
		vk.DestroySwapchain(device.LogicalDevice, handle, context.Allocator)
	})

	// The driver decides the final count.
	if err := check("vkGetSwapchainImagesKHR", vk.GetSwapchainImages(device.LogicalDevice, handle, &swapchain.ImageCount, nil)); err != nil {
		return err
	}
	swapchain.Images = make([]vk.Image, swapchain.ImageCount)
	if err := check("vkGetSwapchainImagesKHR", vk.GetSwapchainImages(device.LogicalDevice, handle, &swapchain.ImageCount, swapchain.Images)); err != nil {
		return err
	}

	context.CurrentFrame = 0
	core.LogInfo("Swapchain created with %d images of %dx%d.", swapchain.ImageCount, swapchain.Extent.Width, swapchain.Extent.Height)
	return nil
}

// acquireNextImage returns the index of the next presentable image, signalling
// semaphore once it is free to render to.
func (vs *VulkanSwapchain) acquireNextImage(context *VulkanContext, timeoutNS uint64, semaphore vk.Semaphore) (uint32, error) {
	var index uint32
	res := vk.AcquireNextImage(context.Device.LogicalDevice, vs.Handle, timeoutNS, semaphore, vk.NullFence, &index)
	if res != vk.Success && res != vk.Suboptimal {
		return 0, check("vkAcquireNextImageKHR", res)
	}
	return index, nil
}

func (vs *VulkanSwapchain) present(queue vk.Queue, renderFinished vk.Semaphore, imageIndex uint32) error {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{renderFinished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{vs.Handle},
		PImageIndices:      []uint32{imageIndex},
	}
	res := vk.QueuePresent(queue, &presentInfo)
	if res != vk.Success && res != vk.Suboptimal {
		return check("vkQueuePresentKHR", res)
	}
	return nil
}
