package renderer

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
	"github.com/spaghettifunk/vkquad/engine/renderer/vulkan"
)

type RendererBackend interface {
	Initialize(desc vulkan.AppDescriptor, shaders []*metadata.Shader, mesh *metadata.Mesh) error
	DrawFrame() error
	Shutdown() error
}

// Renderer is the front end the engine drives once per loop iteration.
type Renderer struct {
	backend RendererBackend
	failed  bool
}

func New(window vulkan.Window) *Renderer {
	return &Renderer{
		backend: vulkan.New(window),
	}
}

// NewWithBackend is used when the backend is built elsewhere.
func NewWithBackend(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(desc vulkan.AppDescriptor, shaders []*metadata.Shader, mesh *metadata.Mesh) error {
	if err := r.backend.Initialize(desc, shaders, mesh); err != nil {
		core.LogError("Renderer backend failed to initialize: %s", err)
		return err
	}
	return nil
}

// DrawFrame renders one frame. After the first failure every later call
// returns core.ErrUnknown without touching the device.
func (r *Renderer) DrawFrame() error {
	if r.failed {
		return fmt.Errorf("%w: renderer stopped after an earlier frame failed", core.ErrUnknown)
	}
	if err := r.backend.DrawFrame(); err != nil {
		r.failed = true
		var resErr *vulkan.ResultError
		if errors.As(err, &resErr) {
			core.LogError("DrawFrame failed in %s. Application shutting down...", resErr.Op)
		} else {
			core.LogError("DrawFrame failed: %s. Application shutting down...", err)
		}
		return err
	}
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}
