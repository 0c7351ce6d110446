package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
)

// checkSyncCardinality requires one fence and one semaphore of each kind per
// framebuffer, and at least one of each.
func checkSyncCardinality(imageAvailable, renderFinished, fences, framebuffers int) error {
	if framebuffers == 0 || imageAvailable != framebuffers || renderFinished != framebuffers || fences != framebuffers {
		err := fmt.Errorf("%w: sync objects %d/%d/%d do not match %d framebuffers",
			core.ErrInvalidInput, imageAvailable, renderFinished, fences, framebuffers)
		core.LogError("%s", err)
		return err
	}
	return nil
}

func createSemaphore(context *VulkanContext, name string) (vk.Semaphore, error) {
	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	var semaphore vk.Semaphore
	if err := check("vkCreateSemaphore", vk.CreateSemaphore(context.Device.LogicalDevice, &semaphoreCreateInfo, context.Allocator, &semaphore)); err != nil {
		return vk.NullSemaphore, err
	}
	device := context.Device.LogicalDevice
	context.releases.push(name+" semaphore", func() {
		vk.DestroySemaphore(device, semaphore, context.Allocator)
	})
	return semaphore, nil
}

func createSyncObjects(context *VulkanContext) error {
	count := len(context.Framebuffers)
	context.ImageAvailableSemaphores = make([]vk.Semaphore, 0, count)
	context.RenderFinishedSemaphores = make([]vk.Semaphore, 0, count)
	context.InFlightFences = make([]*VulkanFence, 0, count)

	for i := 0; i < count; i++ {
		imageAvailable, err := createSemaphore(context, "image available")
		if err != nil {
			return err
		}
		context.ImageAvailableSemaphores = append(context.ImageAvailableSemaphores, imageAvailable)

		renderFinished, err := createSemaphore(context, "render finished")
		if err != nil {
			return err
		}
		context.RenderFinishedSemaphores = append(context.RenderFinishedSemaphores, renderFinished)

		// Created signaled so the first frame does not wait on a submission
		// that never happened.
		fence, err := NewFence(context, true)
		if err != nil {
			return err
		}
		context.InFlightFences = append(context.InFlightFences, fence)
		context.releases.push("fence", func() {
			fence.Destroy(context)
		})
	}

	return checkSyncCardinality(
		len(context.ImageAvailableSemaphores),
		len(context.RenderFinishedSemaphores),
		len(context.InFlightFences),
		count)
}
