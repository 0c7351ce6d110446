package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
)

func createSurface(context *VulkanContext, info *AppInformation) error {
	core.LogDebug("Creating Vulkan surface...")
	surface, err := info.Window.CreateSurface(context.Instance)
	if err != nil {
		core.LogError("Vulkan surface creation failed: %s", err)
		return fmt.Errorf("%w: surface: %s", core.ErrNativeCall, err)
	}
	context.Surface = surface

	instance := context.Instance
	context.releases.push("surface", func() {
		vk.DestroySurface(instance, surface, context.Allocator)
		context.Surface = vk.NullSurface
	})
	core.LogDebug("Vulkan surface created.")
	return nil
}
