package vulkan

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
	"github.com/stretchr/testify/require"
)

func TestReleaseStackUnwindsNewestFirst(t *testing.T) {
	var order []string
	var s releaseStack
	for _, name := range []string{"instance", "surface", "device"} {
		name := name
		s.push(name, func() { order = append(order, name) })
	}
	require.Equal(t, 3, s.len())

	s.unwind()
	require.Equal(t, []string{"device", "surface", "instance"}, order)
	require.Equal(t, 0, s.len())

	// A second unwind has nothing left to run.
	s.unwind()
	require.Len(t, order, 3)
}

func TestRunStagesCompletes(t *testing.T) {
	var state SetupState
	var releases releaseStack
	var ran []string

	stage := func(name string, done SetupState) setupStage {
		return setupStage{name, done, func() error {
			ran = append(ran, name)
			releases.push(name, func() {})
			return nil
		}}
	}
	err := runStages(uuid.New(), &state, &releases, []setupStage{
		stage("a", SetupLoaderDone),
		stage("b", SetupInstanceDone),
	})
	require.NoError(t, err)
	require.Equal(t, SetupComplete, state)
	require.Equal(t, []string{"a", "b"}, ran)
	require.Equal(t, 2, releases.len())
}

func TestRunStagesFailureAbortsAndUnwinds(t *testing.T) {
	var state SetupState
	var releases releaseStack
	var released []string
	laterRan := false
	boom := errors.New("boom")

	err := runStages(uuid.New(), &state, &releases, []setupStage{
		{"instance", SetupInstanceDone, func() error {
			releases.push("instance", func() { released = append(released, "instance") })
			return nil
		}},
		{"surface", SetupSurfaceDone, func() error {
			releases.push("surface", func() { released = append(released, "surface") })
			return nil
		}},
		{"device", SetupDeviceDone, func() error { return boom }},
		{"swapchain", SetupSwapchainDone, func() error {
			laterRan = true
			return nil
		}},
	})

	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "device")
	require.Equal(t, SetupFailed, state)
	require.False(t, laterRan)
	require.Equal(t, []string{"surface", "instance"}, released)
	require.Equal(t, 0, releases.len())
}

func TestSetupRejectsInvalidInput(t *testing.T) {
	desc := AppDescriptor{Name: "quad"}

	ctx, err := Setup(desc, nil)
	require.ErrorIs(t, err, core.ErrInvalidInput)
	require.Equal(t, SetupFailed, ctx.State)

	info := &AppInformation{Window: fakeWindow{}}
	_, err = Setup(desc, info)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	info.Shaders = []*metadata.Shader{{FileName: "shader.vert.spv", Stage: metadata.ShaderStageVertex, Code: []uint32{0x07230203}}}
	_, err = Setup(desc, info)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestRunStagesTagsLogWithID(t *testing.T) {
	buf := captureLog(t)
	id := uuid.New()
	var state SetupState
	var releases releaseStack

	err := runStages(id, &state, &releases, []setupStage{
		{"create instance", SetupInstanceDone, func() error { return nil }},
		{"create surface", SetupSurfaceDone, func() error { return errors.New("no display") }},
	})
	require.Error(t, err)

	out := buf.String()
	require.Contains(t, out, "Setup "+id.String()+" stage: create instance")
	require.Contains(t, out, "Setup "+id.String()+" stage create surface failed")
}

func TestValidateInputs(t *testing.T) {
	shaders := []*metadata.Shader{{FileName: "vert.spv", Stage: metadata.ShaderStageVertex, Code: []uint32{0x07230203}}}
	quad := metadata.NewQuad()

	tests := []struct {
		name       string
		vertices   []byte
		indices    []byte
		indexCount uint32
		wantErr    bool
	}{
		{"quad", quad.Vertices, quad.Indices, quad.IndexCount, false},
		{"fewer indices drawn than given", quad.Vertices, quad.Indices, 3, false},
		{"no vertices", nil, quad.Indices, quad.IndexCount, true},
		{"no indices", quad.Vertices, nil, quad.IndexCount, true},
		{"zero index count", quad.Vertices, quad.Indices, 0, true},
		{"partial vertex", quad.Vertices[:len(quad.Vertices)-1], quad.Indices, quad.IndexCount, true},
		{"odd index bytes", quad.Vertices, make([]byte, 3), 1, true},
		{"count beyond one index", quad.Vertices, make([]byte, 2), 6, true},
		{"count beyond the index data", quad.Vertices, quad.Indices, quad.IndexCount + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInputs(&AppInformation{
				Window:     fakeWindow{},
				Shaders:    shaders,
				Vertices:   tt.vertices,
				Indices:    tt.indices,
				IndexCount: tt.indexCount,
			})
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func TestSetupRejectsOutOfRangeIndexCount(t *testing.T) {
	quad := metadata.NewQuad()
	ctx, err := Setup(AppDescriptor{Name: "quad"}, &AppInformation{
		Window:     fakeWindow{},
		Shaders:    []*metadata.Shader{{FileName: "vert.spv", Stage: metadata.ShaderStageVertex, Code: []uint32{0x07230203}}},
		Vertices:   quad.Vertices,
		Indices:    quad.Indices[:2],
		IndexCount: quad.IndexCount,
	})
	require.ErrorIs(t, err, core.ErrInvalidInput)
	require.Equal(t, SetupFailed, ctx.State)
	require.Equal(t, 0, ctx.releases.len())
}

func TestSetupStateString(t *testing.T) {
	require.Equal(t, "not started", SetupNotStarted.String())
	require.Equal(t, "complete", SetupComplete.String())
	require.Equal(t, "failed", SetupFailed.String())
	require.Equal(t, "SetupState(99)", SetupState(99).String())
}
