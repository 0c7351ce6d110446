package vulkan

import (
	"fmt"
	"math"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
)

// DrawFrame submits the pre-recorded command buffer of the next swapchain
// image and presents it.
func (vc *VulkanContext) DrawFrame() error {
	if vc.State != SetupComplete {
		return fmt.Errorf("%w: draw on a context in state %s", core.ErrInvalidInput, vc.State)
	}
	device := vc.Device
	frame := vc.CurrentFrame

	// Wait for the execution of the current frame to complete. The fence being free will allow this one to move on.
	fence := vc.InFlightFences[frame]
	if err := fence.Wait(vc, math.MaxUint64); err != nil {
		return fmt.Errorf("in-flight fence wait: %w", err)
	}

	imageIndex, err := vc.Swapchain.acquireNextImage(vc, math.MaxUint64, vc.ImageAvailableSemaphores[frame])
	if err != nil {
		return err
	}
	vc.ImageIndex = imageIndex

	// Reset the fence only once work that signals it is about to be submitted.
	if err := fence.Reset(vc); err != nil {
		return err
	}

	commandBuffer := vc.GraphicsCommandBuffers[imageIndex]
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{vc.ImageAvailableSemaphores[frame]},
		// Colour attachment writes wait until the image is available.
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{commandBuffer.Handle},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{vc.RenderFinishedSemaphores[frame]},
	}
	if err := check("vkQueueSubmit", vk.QueueSubmit(device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, fence.Handle)); err != nil {
		return err
	}
	commandBuffer.UpdateSubmitted()

	if err := vc.Swapchain.present(device.PresentQueue, vc.RenderFinishedSemaphores[frame], imageIndex); err != nil {
		return err
	}

	vc.CurrentFrame = (vc.CurrentFrame + 1) % uint32(len(vc.InFlightFences))
	return nil
}

// Release waits for the device to go idle and destroys everything in reverse
// creation order. Calling it again is a no-op.
func (vc *VulkanContext) Release() {
	if vc.releases.len() == 0 {
		return
	}
	if vc.Device != nil && vc.Device.LogicalDevice != nil {
		if res := vk.DeviceWaitIdle(vc.Device.LogicalDevice); !VulkanResultIsSuccess(res) {
			core.LogWarn("vkDeviceWaitIdle failed with %s, releasing anyway.", VulkanResultString(res, true))
		}
	}
	core.LogInfo("Releasing Vulkan context %s...", vc.ID)
	vc.releases.unwind()
	vc.State = SetupNotStarted
}
