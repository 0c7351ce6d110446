package metadata

import "fmt"

/** @brief The pipeline stage a shader module is bound to. */
type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%d)", int(s))
}

// ParseShaderStage maps the conventional glslc suffixes and stage names.
func ParseShaderStage(s string) (ShaderStage, error) {
	switch s {
	case "vert", "vertex":
		return ShaderStageVertex, nil
	case "frag", "fragment":
		return ShaderStageFragment, nil
	}
	return 0, fmt.Errorf("unknown shader stage %q", s)
}

/**
 * @brief A compiled shader ready to become a pipeline stage.
 * Immutable once loaded.
 */
type Shader struct {
	/** @brief The file the bytecode was read from. */
	FileName string
	/** @brief The stage the module is bound to. */
	Stage ShaderStage
	/** @brief SPIR-V words. */
	Code []uint32
}

// CodeSize is the bytecode length in bytes, as Vulkan expects it.
func (s *Shader) CodeSize() uint64 {
	return uint64(len(s.Code) * 4)
}
