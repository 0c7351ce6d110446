package core

import (
	"errors"
)

var (
	// ErrCapabilityMissing reports a required extension, layer, format, queue
	// family or device that the host does not provide.
	ErrCapabilityMissing = errors.New("required capability missing")
	// ErrNativeCall reports a Vulkan call that returned a non-success code.
	ErrNativeCall = errors.New("vulkan call failed")
	// ErrInvalidInput reports setup inputs that cannot describe a frame
	// such as missing shaders or empty geometry.
	ErrInvalidInput = errors.New("invalid setup input")
	ErrUnknown      = errors.New("unknown")
)
