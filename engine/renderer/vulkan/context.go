package vulkan

import (
	"unsafe"

	"github.com/google/uuid"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
)

// Window is what the setup needs from the windowing layer.
type Window interface {
	// InstanceProcAddress is the loader's vkGetInstanceProcAddr, or nil.
	InstanceProcAddress() unsafe.Pointer
	RequiredInstanceExtensions() []string
	CreateSurface(instance vk.Instance) (vk.Surface, error)
	// FramebufferSize is the drawable size in pixels.
	FramebufferSize() (int, int)
}

/**
 * @brief Immutable inputs of a setup run.
 */
type AppDescriptor struct {
	Name string
	// APIVersion is the minimum version a device must report, see vk.MakeVersion.
	APIVersion uint32
	// Debug enables validation layers and the debug report hooks for this run only.
	Debug            bool
	ValidationLayers []string
	// ScanAllDevices keeps every device passing the version filter instead of
	// stopping at the first.
	ScanAllDevices bool
}

/**
 * @brief Discovery state accumulated while the stages run.
 * The window is borrowed. Shaders and geometry are owned.
 */
type AppInformation struct {
	Window Window

	PhysicalDevices  []vk.PhysicalDevice
	DeviceProperties []vk.PhysicalDeviceProperties
	ChosenDevice     int
	DeviceExtensions []string
	SurfaceFormats   []vk.SurfaceFormat

	Shaders    []*metadata.Shader
	Vertices   []byte
	Indices    []byte
	IndexCount uint32
}

// BufferDescriptor is one device allocation: the buffer and its backing memory.
type BufferDescriptor struct {
	Buffer vk.Buffer
	Memory vk.DeviceMemory
	Size   vk.DeviceSize
}

type VulkanContext struct {
	// ID tags the setup, stage and release log lines of this context. Lines
	// logged from inside a stage do not carry it.
	ID    uuid.UUID
	State SetupState

	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks
	Surface   vk.Surface

	// Debug mirrors AppDescriptor.Debug, cleared when validation is unavailable
	// on a platform that is allowed to lack it.
	Debug          bool
	debugCallbacks []vk.DebugReportCallback

	Device *VulkanDevice

	Swapchain      *VulkanSwapchain
	MainRenderpass *VulkanRenderpass
	Framebuffers   []*VulkanFramebuffer
	Pipeline       *VulkanPipeline

	GraphicsCommandBuffers []*VulkanCommandBuffer

	ImageAvailableSemaphores []vk.Semaphore
	RenderFinishedSemaphores []vk.Semaphore
	InFlightFences           []*VulkanFence

	VertexBuffer *BufferDescriptor
	IndexBuffer  *BufferDescriptor

	ImageIndex   uint32
	CurrentFrame uint32

	releases releaseStack
}

func newContext(desc *AppDescriptor) *VulkanContext {
	return &VulkanContext{
		ID:        uuid.New(),
		State:     SetupNotStarted,
		Allocator: nil,
		Debug:     desc.Debug,
		Device:    &VulkanDevice{QueueFamilyIndex: -1},
	}
}

// FindMemoryIndex returns the first memory type of the device allowed by
// typeFilter with every flag in propertyFlags, or -1.
func (vc *VulkanContext) FindMemoryIndex(typeFilter uint32, propertyFlags vk.MemoryPropertyFlags) int32 {
	memory := vc.Device.Memory
	types := make([]vk.MemoryPropertyFlags, memory.MemoryTypeCount)
	for i := range types {
		memory.MemoryTypes[i].Deref()
		types[i] = memory.MemoryTypes[i].PropertyFlags
	}
	index := findMemoryType(types, typeFilter, propertyFlags)
	if index < 0 {
		core.LogWarn("Unable to find suitable memory type!")
	}
	return index
}

func findMemoryType(types []vk.MemoryPropertyFlags, typeFilter uint32, propertyFlags vk.MemoryPropertyFlags) int32 {
	for i := 0; i < len(types) && i < 32; i++ {
		// Check each memory type to see if its bit is set to 1.
		if typeFilter&(1<<uint(i)) != 0 && types[i]&propertyFlags == propertyFlags {
			return int32(i)
		}
	}
	return -1
}
