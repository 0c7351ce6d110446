package vulkan

import (
	"errors"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// fakeWindow satisfies Window without a display. Setup must reject its
// inputs before the loader is ever touched.
type fakeWindow struct{}

func (fakeWindow) InstanceProcAddress() unsafe.Pointer {
	return nil
}

func (fakeWindow) RequiredInstanceExtensions() []string {
	return nil
}

func (fakeWindow) FramebufferSize() (int, int) {
	return 800, 600
}

func (fakeWindow) CreateSurface(vk.Instance) (vk.Surface, error) {
	return vk.NullSurface, errors.New("no surface without a display")
}
