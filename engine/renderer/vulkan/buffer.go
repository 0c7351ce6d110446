package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
)

func createCommandPool(context *VulkanContext) error {
	device := context.Device
	poolCreateInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: uint32(device.QueueFamilyIndex),
	}
	var pool vk.CommandPool
	if err := check("vkCreateCommandPool", vk.CreateCommandPool(device.LogicalDevice, &poolCreateInfo, context.Allocator, &pool)); err != nil {
		return err
	}
	device.GraphicsCommandPool = pool

	logical := device.LogicalDevice
	context.releases.push("command pool", func() {
		vk.DestroyCommandPool(logical, pool, context.Allocator)
	})
	core.LogInfo("Graphics command pool created.")
	return nil
}

// newBuffer creates a buffer and binds freshly allocated memory of the
// requested kind to it.
func newBuffer(context *VulkanContext, size vk.DeviceSize, usage vk.BufferUsageFlagBits, properties vk.MemoryPropertyFlagBits) (*BufferDescriptor, error) {
	device := context.Device.LogicalDevice
	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: vk.SharingModeExclusive,
	}

	out := &BufferDescriptor{Size: size}
	if err := check("vkCreateBuffer", vk.CreateBuffer(device, &bufferCreateInfo, context.Allocator, &out.Buffer)); err != nil {
		return nil, err
	}

	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(device, out.Buffer, &requirements)
	requirements.Deref()

	memoryIndex := context.FindMemoryIndex(requirements.MemoryTypeBits, vk.MemoryPropertyFlags(properties))
	if memoryIndex == -1 {
		vk.DestroyBuffer(device, out.Buffer, context.Allocator)
		return nil, capabilityMissing("no memory type for buffer of %d bytes with properties %#x", size, uint32(properties))
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}
	if err := check("vkAllocateMemory", vk.AllocateMemory(device, &allocateInfo, context.Allocator, &out.Memory)); err != nil {
		vk.DestroyBuffer(device, out.Buffer, context.Allocator)
		return nil, err
	}
	if err := check("vkBindBufferMemory", vk.BindBufferMemory(device, out.Buffer, out.Memory, 0)); err != nil {
		out.destroy(context)
		return nil, err
	}
	return out, nil
}

func (b *BufferDescriptor) destroy(context *VulkanContext) {
	device := context.Device.LogicalDevice
	if b.Buffer != vk.NullBuffer {
		vk.DestroyBuffer(device, b.Buffer, context.Allocator)
		b.Buffer = vk.NullBuffer
	}
	if b.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(device, b.Memory, context.Allocator)
		b.Memory = vk.NullDeviceMemory
	}
}

// load copies data into host visible memory.
func (b *BufferDescriptor) load(context *VulkanContext, data []byte) error {
	var mapped unsafe.Pointer
	if err := check("vkMapMemory", vk.MapMemory(context.Device.LogicalDevice, b.Memory, 0, b.Size, 0, &mapped)); err != nil {
		return err
	}
	vk.Memcopy(mapped, data)
	// Coherent memory, no flush needed.
	vk.UnmapMemory(context.Device.LogicalDevice, b.Memory)
	return nil
}

// copyBuffer records and submits a one-shot copy, then blocks until the
// graphics queue is idle.
func copyBuffer(context *VulkanContext, src, dst vk.Buffer, size vk.DeviceSize) error {
	device := context.Device
	cb, err := AllocateAndBeginSingleUse(context, device.GraphicsCommandPool)
	if err != nil {
		return err
	}
	vk.CmdCopyBuffer(cb.Handle, src, dst, 1, []vk.BufferCopy{{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      size,
	}})
	return cb.EndSingleUse(context, device.GraphicsCommandPool, device.GraphicsQueue)
}

// uploadBuffer moves data into a new device local buffer through a staging
// buffer that is released once the copy completed.
func uploadBuffer(context *VulkanContext, name string, data []byte, usage vk.BufferUsageFlagBits) (*BufferDescriptor, error) {
	if len(data) == 0 {
		err := fmt.Errorf("%w: %s buffer is empty", core.ErrInvalidInput, name)
		core.LogError("%s", err)
		return nil, err
	}
	size := vk.DeviceSize(len(data))

	staging, err := newBuffer(context, size, vk.BufferUsageTransferSrcBit, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
	if err != nil {
		return nil, fmt.Errorf("%s staging buffer: %w", name, err)
	}
	defer staging.destroy(context)

	out, err := newBuffer(context, size, vk.BufferUsageTransferDstBit|usage, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return nil, fmt.Errorf("%s buffer: %w", name, err)
	}
	context.releases.push(name+" buffer", func() {
		out.destroy(context)
	})

	if err := staging.load(context, data); err != nil {
		return nil, err
	}
	if err := copyBuffer(context, staging.Buffer, out.Buffer, size); err != nil {
		return nil, err
	}
	core.LogDebug("Uploaded %s buffer, %d bytes.", name, size)
	return out, nil
}

// uploadResources creates the command pool and moves the mesh to the device.
func uploadResources(context *VulkanContext, info *AppInformation) error {
	if err := createCommandPool(context); err != nil {
		return err
	}

	vertices, err := uploadBuffer(context, "vertex", info.Vertices, vk.BufferUsageVertexBufferBit)
	if err != nil {
		return err
	}
	context.VertexBuffer = vertices

	indices, err := uploadBuffer(context, "index", info.Indices, vk.BufferUsageIndexBufferBit)
	if err != nil {
		return err
	}
	context.IndexBuffer = indices
	return nil
}
