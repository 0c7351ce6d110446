package vulkan

import (
	"fmt"
	"runtime"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
)

const createDebugReportCallbackName = "vkCreateDebugReportCallbackEXT"

type debugHook struct {
	name   string
	flags  vk.DebugReportFlagBits
	handle func(flags vk.DebugReportFlags, messageCode int32, layerPrefix string, message string)
}

var debugHooks = [...]debugHook{
	{
		name: "severity router",
		flags: vk.DebugReportInformationBit | vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit | vk.DebugReportErrorBit | vk.DebugReportDebugBit,
		handle: logBySeverity,
	},
	{
		name:   "report",
		flags:  vk.DebugReportErrorBit | vk.DebugReportWarningBit,
		handle: logReport,
	},
}

// debugHookIDs are handed to the driver as user data. The binding keeps only
// one Go callback for the whole process, so debugDispatch reads the id back to
// find the hook a message was meant for.
var debugHookIDs [len(debugHooks)]int

func init() {
	for i := range debugHookIDs {
		debugHookIDs[i] = i
	}
}

func installDebugHooks(context *VulkanContext) error {
	if !context.Debug {
		return nil
	}
	core.LogDebug("Creating Vulkan debugger...")

	for i := range debugHooks {
		hook := &debugHooks[i]
		createInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(hook.flags),
			PfnCallback: debugDispatch,
			PUserData:   unsafe.Pointer(&debugHookIDs[i]),
		}
		var callback vk.DebugReportCallback
		res := vk.CreateDebugReportCallback(context.Instance, &createInfo, context.Allocator, &callback)
		skip, err := debugHookResult(hook.name, res, runtime.GOOS)
		if err != nil {
			return err
		}
		if skip {
			core.LogWarn("%s is not available on %s, skipping the %s hook.", createDebugReportCallbackName, runtime.GOOS, hook.name)
			continue
		}
		context.debugCallbacks = append(context.debugCallbacks, callback)

		instance := context.Instance
		context.releases.push("debug "+hook.name, func() {
			vk.DestroyDebugReportCallback(instance, callback, context.Allocator)
		})
	}

	core.LogDebug("Vulkan debugger created.")
	return nil
}

// debugHookResult interprets the result of creating one hook. The binding
// answers VK_NOT_READY when the instance cannot resolve the entry point, which
// is tolerated only where the debug extension is known to be missing.
func debugHookResult(name string, res vk.Result, goos string) (skip bool, err error) {
	switch {
	case res == vk.Success:
		return false, nil
	case res == vk.NotReady && debugExpectedAbsent(goos):
		return true, nil
	case res == vk.NotReady:
		return false, capabilityMissing("%s could not be resolved for the %s hook", createDebugReportCallbackName, name)
	}
	return false, fmt.Errorf("%s hook: %w", name, check(createDebugReportCallbackName, res))
}

func debugDispatch(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	hook := &debugHooks[0]
	if pUserData != nil {
		if id := *(*int)(pUserData); id >= 0 && id < len(debugHooks) {
			hook = &debugHooks[id]
		}
	}
	hook.handle(flags, messageCode, pLayerPrefix, pMessage)
	// Never abort the call that triggered the message.
	return vk.Bool32(vk.False)
}

// logBySeverity routes every message to the log level matching its flags.
func logBySeverity(flags vk.DebugReportFlags, messageCode int32, layerPrefix string, message string) {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("[%s] %s", layerPrefix, message)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("[%s] %s", layerPrefix, message)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE: [%s] %s", layerPrefix, message)
	case flags&vk.DebugReportFlags(vk.DebugReportInformationBit) != 0:
		core.LogInfo("[%s] %s", layerPrefix, message)
	default:
		core.LogDebug("[%s] %s", layerPrefix, message)
	}
}

func logReport(flags vk.DebugReportFlags, messageCode int32, layerPrefix string, message string) {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("ERROR: [%s] Code %d : %s", layerPrefix, messageCode, message)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("WARNING: [%s] Code %d : %s", layerPrefix, messageCode, message)
	}
}
