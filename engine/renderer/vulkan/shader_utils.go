package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
)

const shaderEntryPoint = "main"

/**
 * @brief Represents a single shader stage.
 */
type VulkanShaderStage struct {
	/** @brief The internal shader module Handle. */
	Handle vk.ShaderModule
	/** @brief The pipeline shader stage creation info. */
	ShaderStageCreateInfo vk.PipelineShaderStageCreateInfo
}

func shaderStageFlag(stage metadata.ShaderStage) (vk.ShaderStageFlagBits, error) {
	switch stage {
	case metadata.ShaderStageVertex:
		return vk.ShaderStageVertexBit, nil
	case metadata.ShaderStageFragment:
		return vk.ShaderStageFragmentBit, nil
	}
	return 0, fmt.Errorf("%w: unsupported shader stage %s", core.ErrInvalidInput, stage)
}

// NewShaderModule wraps compiled bytecode into a module and its stage info.
// The caller destroys the module once the pipeline is built.
func NewShaderModule(context *VulkanContext, shader *metadata.Shader) (*VulkanShaderStage, error) {
	flag, err := shaderStageFlag(shader.Stage)
	if err != nil {
		return nil, err
	}
	if len(shader.Code) == 0 {
		return nil, fmt.Errorf("%w: shader %s has no bytecode", core.ErrInvalidInput, shader.FileName)
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: shader.CodeSize(),
		PCode:    shader.Code,
	}

	out := &VulkanShaderStage{}
	if err := check("vkCreateShaderModule", vk.CreateShaderModule(context.Device.LogicalDevice, &createInfo, context.Allocator, &out.Handle)); err != nil {
		return nil, fmt.Errorf("shader %s: %w", shader.FileName, err)
	}

	out.ShaderStageCreateInfo = vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  flag,
		Module: out.Handle,
		PName:  VulkanSafeString(shaderEntryPoint),
	}
	core.LogDebug("Shader module created for %s (%s stage).", shader.FileName, shader.Stage)
	return out, nil
}

func (s *VulkanShaderStage) Destroy(context *VulkanContext) {
	if s.Handle != nil {
		vk.DestroyShaderModule(context.Device.LogicalDevice, s.Handle, context.Allocator)
		s.Handle = nil
	}
}
