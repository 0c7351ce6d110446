package assets

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
	"github.com/stretchr/testify/require"
)

func writeSpirv(t *testing.T, path string) {
	t.Helper()
	b := binary.LittleEndian.AppendUint32(nil, 0x07230203)
	b = binary.LittleEndian.AppendUint32(b, 0x00010000)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

func newManager(t *testing.T, root string) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(root))
	t.Cleanup(func() { _ = am.Shutdown() })
	return am
}

func TestLoadShaderFromIndex(t *testing.T) {
	root := t.TempDir()
	writeSpirv(t, filepath.Join(root, "shaders", "vert.spv"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0o644))

	am := newManager(t, root)

	sh, err := am.LoadShader("shaders/vert.spv", metadata.ShaderStageVertex)
	require.NoError(t, err)
	require.Equal(t, metadata.ShaderStageVertex, sh.Stage)
	require.Len(t, sh.Code, 2)

	info, ok := am.Asset("shaders/vert.spv")
	require.True(t, ok)
	require.False(t, info.LastLoaded.IsZero())

	_, ok = am.Asset("README")
	require.False(t, ok)

	_, err = am.LoadShader("shaders/frag.spv", metadata.ShaderStageFragment)
	require.Error(t, err)
}

func TestWatcherIndexesNewAndChangedFiles(t *testing.T) {
	root := t.TempDir()
	writeSpirv(t, filepath.Join(root, "vert.spv"))
	am := newManager(t, root)

	_, err := am.LoadShader("vert.spv", metadata.ShaderStageVertex)
	require.NoError(t, err)

	writeSpirv(t, filepath.Join(root, "frag.spv"))
	require.Eventually(t, func() bool {
		_, ok := am.Asset("frag.spv")
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	writeSpirv(t, filepath.Join(root, "vert.spv"))
	require.Eventually(t, func() bool {
		info, _ := am.Asset("vert.spv")
		return info.Stale
	}, 2*time.Second, 10*time.Millisecond)
}

func TestShutdownIsIdempotent(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(t.TempDir()))
	require.NoError(t, am.Shutdown())
	require.NoError(t, am.Shutdown())
}
