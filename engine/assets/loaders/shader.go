package loaders

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic uint32 = 0x07230203

type ShaderLoader struct{}

// Load reads a SPIR-V binary. params must be the metadata.ShaderStage the
// module will be bound to.
func (sl *ShaderLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	stage, ok := params.(metadata.ShaderStage)
	if !ok {
		return nil, fmt.Errorf("shader loader expects a metadata.ShaderStage, got %T", params)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	code, err := BytesToBytecode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data: &metadata.Shader{
			FileName: path,
			Stage:    stage,
			Code:     code,
		},
	}, nil
}

func (sl *ShaderLoader) Unload(r *metadata.Resource) error {
	if r == nil {
		return fmt.Errorf("cannot unload a nil resource")
	}
	r.Data = nil
	return nil
}

// BytesToBytecode repacks little endian SPIR-V bytes into words.
func BytesToBytecode(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, fmt.Errorf("spir-v size %d is not a positive multiple of 4", len(b))
	}
	byteCode := make([]uint32, len(b)/4)
	for i := range byteCode {
		byteCode[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	if byteCode[0] != spirvMagic {
		return nil, fmt.Errorf("bad spir-v magic 0x%08x", byteCode[0])
	}
	return byteCode, nil
}
