package vulkan

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
)

// SetupState is how far a setup run got.
type SetupState int

const (
	SetupNotStarted SetupState = iota
	SetupLoaderDone
	SetupInstanceDone
	SetupDebugHooksDone
	SetupSurfaceDone
	SetupDeviceDone
	SetupSwapchainDone
	SetupRenderTargetsDone
	SetupPipelineDone
	SetupResourcesDone
	SetupCommandsDone
	SetupSyncObjectsDone
	SetupComplete
	SetupFailed
)

func (s SetupState) String() string {
	switch s {
	case SetupNotStarted:
		return "not started"
	case SetupLoaderDone:
		return "loader done"
	case SetupInstanceDone:
		return "instance done"
	case SetupDebugHooksDone:
		return "debug hooks done"
	case SetupSurfaceDone:
		return "surface done"
	case SetupDeviceDone:
		return "device done"
	case SetupSwapchainDone:
		return "swapchain done"
	case SetupRenderTargetsDone:
		return "render targets done"
	case SetupPipelineDone:
		return "pipeline done"
	case SetupResourcesDone:
		return "resources done"
	case SetupCommandsDone:
		return "commands done"
	case SetupSyncObjectsDone:
		return "sync objects done"
	case SetupComplete:
		return "complete"
	case SetupFailed:
		return "failed"
	}
	return fmt.Sprintf("SetupState(%d)", int(s))
}

type setupStage struct {
	name string
	// done is the state reached once run returns nil.
	done SetupState
	run  func() error
}

// runStages runs stages in order and stops at the first failure, unwinding
// everything the earlier stages acquired.
func runStages(id uuid.UUID, state *SetupState, releases *releaseStack, stages []setupStage) error {
	for _, s := range stages {
		core.LogDebug("Setup %s stage: %s", id, s.name)
		if err := s.run(); err != nil {
			core.LogError("Setup %s stage %s failed after %s: %s", id, s.name, *state, err)
			*state = SetupFailed
			releases.unwind()
			return fmt.Errorf("%s: %w", s.name, err)
		}
		*state = s.done
	}
	*state = SetupComplete
	return nil
}

func validateInputs(info *AppInformation) error {
	switch {
	case info == nil || info.Window == nil:
		return fmt.Errorf("%w: a window is required", core.ErrInvalidInput)
	case len(info.Shaders) == 0:
		return fmt.Errorf("%w: at least one shader is required", core.ErrInvalidInput)
	case len(info.Vertices) == 0 || len(info.Indices) == 0 || info.IndexCount == 0:
		return fmt.Errorf("%w: geometry is empty", core.ErrInvalidInput)
	case len(info.Vertices)%int(metadata.VertexStride) != 0:
		return fmt.Errorf("%w: %d vertex bytes are not a multiple of the %d byte stride", core.ErrInvalidInput, len(info.Vertices), metadata.VertexStride)
	case len(info.Indices)%int(metadata.IndexSize) != 0:
		return fmt.Errorf("%w: %d index bytes are not a multiple of %d", core.ErrInvalidInput, len(info.Indices), metadata.IndexSize)
	case uint64(info.IndexCount) > uint64(len(info.Indices)/int(metadata.IndexSize)):
		return fmt.Errorf("%w: index count %d exceeds the %d indices provided", core.ErrInvalidInput, info.IndexCount, len(info.Indices)/int(metadata.IndexSize))
	}
	return nil
}

/**
 * @brief Runs the whole device setup against window and geometry in info.
 * On failure every handle acquired so far has been released and the returned
 * context is in the SetupFailed state.
 */
func Setup(desc AppDescriptor, info *AppInformation) (*VulkanContext, error) {
	context := newContext(&desc)
	core.LogInfo("Vulkan setup %s starting for '%s'.", context.ID, desc.Name)

	if err := validateInputs(info); err != nil {
		core.LogError("%s", err)
		context.State = SetupFailed
		return context, err
	}

	stages := []setupStage{
		{"load library", SetupLoaderDone, func() error {
			if err := loadLibrary(info.Window); err != nil {
				return err
			}
			return loadFunctions()
		}},
		{"create instance", SetupInstanceDone, func() error { return createInstance(context, &desc, info) }},
		{"install debug hooks", SetupDebugHooksDone, func() error { return installDebugHooks(context) }},
		{"create surface", SetupSurfaceDone, func() error { return createSurface(context, info) }},
		{"select device", SetupDeviceDone, func() error { return createDevice(context, &desc, info) }},
		{"create swapchain", SetupSwapchainDone, func() error { return createSwapchain(context, info) }},
		{"create render targets", SetupRenderTargetsDone, func() error { return createRenderTargets(context) }},
		{"create pipeline", SetupPipelineDone, func() error { return createPipeline(context, info) }},
		{"upload resources", SetupResourcesDone, func() error { return uploadResources(context, info) }},
		{"record commands", SetupCommandsDone, func() error { return recordCommands(context, info) }},
		{"create sync objects", SetupSyncObjectsDone, func() error { return createSyncObjects(context) }},
	}

	if err := runStages(context.ID, &context.State, &context.releases, stages); err != nil {
		return context, err
	}
	core.LogInfo("Vulkan setup %s complete on %s.", context.ID, context.Device)
	return context, nil
}
