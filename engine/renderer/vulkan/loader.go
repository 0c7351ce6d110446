package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
)

// loadLibrary points the binding at the loader the window layer already
// opened, or lets the binding open the system loader itself.
func loadLibrary(window Window) error {
	if procAddr := window.InstanceProcAddress(); procAddr != nil {
		vk.SetGetInstanceProcAddr(procAddr)
		return nil
	}
	core.LogWarn("Window layer did not provide vkGetInstanceProcAddr, loading the default Vulkan library.")
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return fmt.Errorf("%w: no Vulkan loader: %s", core.ErrCapabilityMissing, err)
	}
	return nil
}

// loadFunctions resolves the global entry points.
func loadFunctions() error {
	if err := vk.Init(); err != nil {
		core.LogError("failed to initialize vk: %s", err)
		return fmt.Errorf("%w: %s", core.ErrCapabilityMissing, err)
	}
	return nil
}
