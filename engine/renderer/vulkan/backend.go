package vulkan

import (
	"fmt"

	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
)

type VulkanRenderer struct {
	window      Window
	FrameNumber uint64
	context     *VulkanContext
}

func New(window Window) *VulkanRenderer {
	return &VulkanRenderer{
		window:      window,
		FrameNumber: 0,
	}
}

func (vr *VulkanRenderer) Initialize(desc AppDescriptor, shaders []*metadata.Shader, mesh *metadata.Mesh) error {
	if mesh == nil {
		return fmt.Errorf("%w: no mesh to draw", core.ErrInvalidInput)
	}
	info := &AppInformation{
		Window:     vr.window,
		Shaders:    shaders,
		Vertices:   mesh.Vertices,
		Indices:    mesh.Indices,
		IndexCount: mesh.IndexCount,
	}
	context, err := Setup(desc, info)
	if err != nil {
		return err
	}
	vr.context = context
	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *VulkanRenderer) DrawFrame() error {
	if vr.context == nil {
		return fmt.Errorf("%w: renderer is not initialized", core.ErrInvalidInput)
	}
	if err := vr.context.DrawFrame(); err != nil {
		return err
	}
	vr.FrameNumber++
	return nil
}

func (vr *VulkanRenderer) Shutdown() error {
	if vr.context == nil {
		return nil
	}
	vr.context.Release()
	vr.context = nil
	return nil
}

// Context exposes the setup state, nil before Initialize or after Shutdown.
func (vr *VulkanRenderer) Context() *VulkanContext {
	return vr.context
}
