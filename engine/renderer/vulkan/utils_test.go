package vulkan

import (
	"errors"
	"fmt"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/stretchr/testify/require"
)

func TestVulkanResultString(t *testing.T) {
	require.Equal(t, "VK_SUCCESS", VulkanResultString(vk.Success, false))
	require.Equal(t, "VK_ERROR_DEVICE_LOST The logical or physical device has been lost.", VulkanResultString(vk.ErrorDeviceLost, true))
	require.Equal(t, "VK_SUBOPTIMAL_KHR", VulkanResultString(vk.Suboptimal, false))
	require.Equal(t, "VkResult(-12345)", VulkanResultString(vk.Result(-12345), true))
}

func TestVulkanResultIsSuccess(t *testing.T) {
	require.True(t, VulkanResultIsSuccess(vk.Success))
	require.True(t, VulkanResultIsSuccess(vk.Suboptimal))
	require.False(t, VulkanResultIsSuccess(vk.ErrorOutOfHostMemory))
	require.False(t, VulkanResultIsSuccess(vk.ErrorOutOfDate))
}

func TestCheck(t *testing.T) {
	require.NoError(t, check("vkCreateInstance", vk.Success))

	err := check("vkCreateInstance", vk.ErrorIncompatibleDriver)
	require.ErrorIs(t, err, core.ErrNativeCall)
	require.NotErrorIs(t, err, core.ErrCapabilityMissing)

	var resErr *ResultError
	wrapped := fmt.Errorf("create instance: %w", err)
	require.True(t, errors.As(wrapped, &resErr))
	require.Equal(t, "vkCreateInstance", resErr.Op)
	require.Equal(t, vk.ErrorIncompatibleDriver, resErr.Result)
	require.Equal(t, "vkCreateInstance failed with VK_ERROR_INCOMPATIBLE_DRIVER", resErr.Error())
}

func TestCapabilityMissing(t *testing.T) {
	err := capabilityMissing("required %s is missing: %s", "layer", "VK_LAYER_KHRONOS_validation")
	require.ErrorIs(t, err, core.ErrCapabilityMissing)
	require.Contains(t, err.Error(), "VK_LAYER_KHRONOS_validation")
}
