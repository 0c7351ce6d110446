package renderer

import (
	"errors"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
	"github.com/spaghettifunk/vkquad/engine/renderer/vulkan"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	initErr  error
	drawErrs []error
	draws    int
	shutdown bool
}

func (b *stubBackend) Initialize(vulkan.AppDescriptor, []*metadata.Shader, *metadata.Mesh) error {
	return b.initErr
}

func (b *stubBackend) DrawFrame() error {
	b.draws++
	if len(b.drawErrs) == 0 {
		return nil
	}
	err := b.drawErrs[0]
	b.drawErrs = b.drawErrs[1:]
	return err
}

func (b *stubBackend) Shutdown() error {
	b.shutdown = true
	return nil
}

func TestRendererInitializeError(t *testing.T) {
	backend := &stubBackend{initErr: core.ErrCapabilityMissing}
	r := NewWithBackend(backend)
	err := r.Initialize(vulkan.AppDescriptor{Name: "quad"}, nil, metadata.NewQuad())
	require.ErrorIs(t, err, core.ErrCapabilityMissing)
}

func TestRendererStopsAfterFailedFrame(t *testing.T) {
	lost := &vulkan.ResultError{Op: "vkQueueSubmit", Result: vk.ErrorDeviceLost}
	backend := &stubBackend{drawErrs: []error{nil, lost}}
	r := NewWithBackend(backend)

	require.NoError(t, r.DrawFrame())

	err := r.DrawFrame()
	require.ErrorIs(t, err, core.ErrNativeCall)
	var resErr *vulkan.ResultError
	require.True(t, errors.As(err, &resErr))
	require.Equal(t, "vkQueueSubmit", resErr.Op)

	// Later frames never reach the backend.
	err = r.DrawFrame()
	require.ErrorIs(t, err, core.ErrUnknown)
	require.Equal(t, 2, backend.draws)

	require.NoError(t, r.Shutdown())
	require.True(t, backend.shutdown)
}
