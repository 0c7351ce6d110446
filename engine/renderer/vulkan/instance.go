package vulkan

import (
	"fmt"
	"runtime"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
	"golang.org/x/exp/slices"
)

const (
	portabilityEnumerationExtension = "VK_KHR_portability_enumeration"
	portabilityEnumerationBit       = vk.InstanceCreateFlags(0x00000001)
)

// debugExpectedAbsent reports platforms whose loaders usually ship without the
// validation layers and debug report entry points.
func debugExpectedAbsent(goos string) bool {
	return goos == "android" || goos == "ios"
}

func requiredInstanceExtensions(windowExtensions []string, debug bool, goos string) []string {
	required := append([]string{}, windowExtensions...)
	if goos == "darwin" {
		required = append(required, portabilityEnumerationExtension)
	}
	if debug && !debugExpectedAbsent(goos) {
		required = append(required, vk.ExtDebugReportExtensionName)
	}
	return required
}

// verifyNames fails on the first required name missing from available.
// Matching is exact and case sensitive.
func verifyNames(kind string, required, available []string) error {
	for _, name := range required {
		core.LogDebug("Searching for %s: %s...", kind, name)
		if !slices.Contains(available, name) {
			return capabilityMissing("required %s is missing: %s", kind, name)
		}
	}
	return nil
}

func availableInstanceExtensions() ([]string, error) {
	var count uint32
	if err := check("vkEnumerateInstanceExtensionProperties", vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := check("vkEnumerateInstanceExtensionProperties", vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for i := range props[:count] {
		props[i].Deref()
		names = append(names, vk.ToString(props[i].ExtensionName[:]))
	}
	return names, nil
}

func availableInstanceLayers() ([]string, error) {
	var count uint32
	if err := check("vkEnumerateInstanceLayerProperties", vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.LayerProperties, count)
	if err := check("vkEnumerateInstanceLayerProperties", vk.EnumerateInstanceLayerProperties(&count, props)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for i := range props[:count] {
		props[i].Deref()
		names = append(names, vk.ToString(props[i].LayerName[:]))
	}
	return names, nil
}

func createInstance(context *VulkanContext, desc *AppDescriptor, info *AppInformation) error {
	goos := runtime.GOOS

	available, err := availableInstanceExtensions()
	if err != nil {
		return err
	}
	required := requiredInstanceExtensions(info.Window.RequiredInstanceExtensions(), context.Debug, goos)
	core.LogInfo("Required extensions: %v", required)
	if err := verifyNames("extension", required, available); err != nil {
		return err
	}

	var layers []string
	if context.Debug {
		core.LogInfo("Validation layers enabled. Enumerating...")
		availableLayers, err := availableInstanceLayers()
		if err != nil {
			return err
		}
		if err := verifyNames("validation layer", desc.ValidationLayers, availableLayers); err != nil {
			if !debugExpectedAbsent(goos) {
				return err
			}
			core.LogWarn("Validation layers are not available on %s, continuing without diagnostics.", goos)
			context.Debug = false
		} else {
			core.LogInfo("All required validation layers are present.")
			layers = desc.ValidationLayers
		}
	}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         desc.APIVersion,
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PApplicationName:   VulkanSafeString(desc.Name),
		PEngineName:        VulkanSafeString("vkquad"),
		EngineVersion:      vk.MakeVersion(1, 0, 0),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(required)),
		PpEnabledExtensionNames: VulkanSafeStrings(required),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     VulkanSafeStrings(layers),
	}
	if goos == "darwin" {
		createInfo.Flags |= portabilityEnumerationBit
	}

	var instance vk.Instance
	if err := check("vkCreateInstance", vk.CreateInstance(&createInfo, context.Allocator, &instance)); err != nil {
		return err
	}
	context.Instance = instance
	context.releases.push("instance", func() {
		vk.DestroyInstance(instance, context.Allocator)
		context.Instance = nil
	})

	if err := vk.InitInstance(instance); err != nil {
		core.LogError("%s", err)
		return fmt.Errorf("loading instance functions: %w", err)
	}

	core.LogInfo("Vulkan Instance created.")
	return nil
}
