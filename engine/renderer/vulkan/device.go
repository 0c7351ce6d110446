package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
	"golang.org/x/exp/slices"
)

const portabilitySubsetExtension = "VK_KHR_portability_subset"

type VulkanDevice struct {
	PhysicalDevice vk.PhysicalDevice
	LogicalDevice  vk.Device

	// QueueFamilyIndex is the family used for both graphics and present, -1 until chosen.
	QueueFamilyIndex int32
	GraphicsQueue    vk.Queue
	PresentQueue     vk.Queue

	GraphicsCommandPool vk.CommandPool

	Properties vk.PhysicalDeviceProperties
	Memory     vk.PhysicalDeviceMemoryProperties
}

// filterDevices returns the indices of the devices reporting at least
// minVersion. Unless scanAll is set the scan ends at the first match.
func filterDevices(versions []uint32, minVersion uint32, scanAll bool) []int {
	var candidates []int
	for i, v := range versions {
		if v < minVersion {
			continue
		}
		candidates = append(candidates, i)
		if !scanAll {
			break
		}
	}
	return candidates
}

// selectDevice picks among candidate device types: the first one, replaced by
// a later discrete GPU only while the pick is an integrated GPU.
func selectDevice(types []vk.PhysicalDeviceType) int {
	if len(types) == 0 {
		return -1
	}
	pick := 0
	for i := 1; i < len(types); i++ {
		if types[pick] == vk.PhysicalDeviceTypeIntegratedGpu && types[i] == vk.PhysicalDeviceTypeDiscreteGpu {
			pick = i
		}
	}
	return pick
}

// selectQueueFamily returns the first family with graphics support that can
// also present, or -1.
func selectQueueFamily(flags []vk.QueueFlags, present []bool) int32 {
	for i := range flags {
		if vk.QueueFlagBits(flags[i])&vk.QueueGraphicsBit != 0 && i < len(present) && present[i] {
			return int32(i)
		}
	}
	return -1
}

func enumerateDevices(context *VulkanContext, desc *AppDescriptor, info *AppInformation) error {
	var count uint32
	if err := check("vkEnumeratePhysicalDevices", vk.EnumeratePhysicalDevices(context.Instance, &count, nil)); err != nil {
		return err
	}
	if count == 0 {
		return capabilityMissing("no devices which support Vulkan were found")
	}
	devices := make([]vk.PhysicalDevice, count)
	if err := check("vkEnumeratePhysicalDevices", vk.EnumeratePhysicalDevices(context.Instance, &count, devices)); err != nil {
		return err
	}

	properties := make([]vk.PhysicalDeviceProperties, count)
	versions := make([]uint32, count)
	for i := range devices[:count] {
		vk.GetPhysicalDeviceProperties(devices[i], &properties[i])
		properties[i].Deref()
		versions[i] = properties[i].ApiVersion
	}

	for _, i := range filterDevices(versions, desc.APIVersion, desc.ScanAllDevices) {
		info.PhysicalDevices = append(info.PhysicalDevices, devices[i])
		info.DeviceProperties = append(info.DeviceProperties, properties[i])
	}
	if len(info.PhysicalDevices) == 0 {
		v := vk.Version(desc.APIVersion)
		return capabilityMissing("no device supports Vulkan %d.%d.%d", v.Major(), v.Minor(), v.Patch())
	}
	core.LogDebug("%d of %d devices meet the version requirement.", len(info.PhysicalDevices), count)
	return nil
}

func createDevice(context *VulkanContext, desc *AppDescriptor, info *AppInformation) error {
	if err := enumerateDevices(context, desc, info); err != nil {
		return err
	}

	types := make([]vk.PhysicalDeviceType, len(info.DeviceProperties))
	for i := range info.DeviceProperties {
		types[i] = info.DeviceProperties[i].DeviceType
	}
	info.ChosenDevice = selectDevice(types)

	device := context.Device
	device.PhysicalDevice = info.PhysicalDevices[info.ChosenDevice]
	device.Properties = info.DeviceProperties[info.ChosenDevice]
	vk.GetPhysicalDeviceMemoryProperties(device.PhysicalDevice, &device.Memory)
	device.Memory.Deref()
	logDevice(device)

	extensions, err := deviceExtensions(device.PhysicalDevice)
	if err != nil {
		return err
	}
	info.DeviceExtensions = extensions

	family, err := queueFamily(device.PhysicalDevice, context.Surface)
	if err != nil {
		return err
	}
	device.QueueFamilyIndex = family
	core.LogDebug("Graphics and present queue family index: %d", family)

	core.LogInfo("Creating logical device...")
	enabled := []string{vk.KhrSwapchainExtensionName}
	if slices.Contains(extensions, portabilitySubsetExtension) {
		core.LogInfo("Adding required extension '%s'.", portabilitySubsetExtension)
		enabled = append(enabled, portabilitySubsetExtension)
	}

	queueCreateInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: uint32(family),
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}
	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueCreateInfos)),
		PQueueCreateInfos:       queueCreateInfos,
		EnabledExtensionCount:   uint32(len(enabled)),
		PpEnabledExtensionNames: VulkanSafeStrings(enabled),
	}

	var logical vk.Device
	if err := check("vkCreateDevice", vk.CreateDevice(device.PhysicalDevice, &deviceCreateInfo, context.Allocator, &logical)); err != nil {
		return err
	}
	device.LogicalDevice = logical
	context.releases.push("logical device", func() {
		vk.DestroyDevice(logical, context.Allocator)
		device.LogicalDevice = nil
	})
	core.LogInfo("Logical device created.")

	vk.GetDeviceQueue(logical, uint32(family), 0, &device.PresentQueue)
	vk.GetDeviceQueue(logical, uint32(family), 0, &device.GraphicsQueue)
	core.LogInfo("Queues obtained.")
	return nil
}

func deviceExtensions(physical vk.PhysicalDevice) ([]string, error) {
	var count uint32
	if err := check("vkEnumerateDeviceExtensionProperties", vk.EnumerateDeviceExtensionProperties(physical, "", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := check("vkEnumerateDeviceExtensionProperties", vk.EnumerateDeviceExtensionProperties(physical, "", &count, props)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for i := range props[:count] {
		props[i].Deref()
		names = append(names, vk.ToString(props[i].ExtensionName[:]))
	}
	return names, nil
}

func queueFamily(physical vk.PhysicalDevice, surface vk.Surface) (int32, error) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(physical, &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(physical, &count, families)

	flags := make([]vk.QueueFlags, count)
	present := make([]bool, count)
	for i := range families[:count] {
		families[i].Deref()
		flags[i] = families[i].QueueFlags

		var supportsPresent vk.Bool32 = vk.False
		if err := check("vkGetPhysicalDeviceSurfaceSupport", vk.GetPhysicalDeviceSurfaceSupport(physical, uint32(i), surface, &supportsPresent)); err != nil {
			return -1, err
		}
		present[i] = supportsPresent == vk.True
	}

	family := selectQueueFamily(flags, present)
	if family < 0 {
		return -1, capabilityMissing("no queue family supports both graphics and present")
	}
	return family, nil
}

func logDevice(device *VulkanDevice) {
	properties := device.Properties
	core.LogInfo("Selected device: '%s'.", vk.ToString(properties.DeviceName[:]))
	switch properties.DeviceType {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		core.LogInfo("GPU type is Integrated.")
	case vk.PhysicalDeviceTypeDiscreteGpu:
		core.LogInfo("GPU type is Discrete.")
	case vk.PhysicalDeviceTypeVirtualGpu:
		core.LogInfo("GPU type is Virtual.")
	case vk.PhysicalDeviceTypeCpu:
		core.LogInfo("GPU type is CPU.")
	default:
		core.LogInfo("GPU type is Unknown.")
	}

	driver := vk.Version(properties.DriverVersion)
	api := vk.Version(properties.ApiVersion)
	core.LogInfo("GPU Driver version: %d.%d.%d", driver.Major(), driver.Minor(), driver.Patch())
	core.LogInfo("Vulkan API version: %d.%d.%d", api.Major(), api.Minor(), api.Patch())

	for j := 0; j < int(device.Memory.MemoryHeapCount); j++ {
		heap := device.Memory.MemoryHeaps[j]
		heap.Deref()
		sizeGiB := float64(heap.Size) / 1024.0 / 1024.0 / 1024.0
		if vk.MemoryHeapFlagBits(heap.Flags)&vk.MemoryHeapDeviceLocalBit != 0 {
			core.LogInfo("Local GPU memory: %.2f GiB", sizeGiB)
		} else {
			core.LogInfo("Shared System memory: %.2f GiB", sizeGiB)
		}
	}
}

func (d *VulkanDevice) String() string {
	return fmt.Sprintf("%s (queue family %d)", vk.ToString(d.Properties.DeviceName[:]), d.QueueFamilyIndex)
}
