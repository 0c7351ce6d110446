package metadata

import (
	"encoding/binary"
	stdmath "math"

	"github.com/spaghettifunk/vkquad/engine/math"
)

const (
	// VertexStride is the byte size of a packed math.ColorVertex2D.
	VertexStride uint32 = 5 * 4
	// VertexColorOffset is where the colour starts inside a vertex.
	VertexColorOffset uint32 = 2 * 4
	// IndexSize is the byte width of a single index (uint16).
	IndexSize uint32 = 2
)

/**
 * @brief Geometry packed for upload: raw vertex and index bytes.
 * Only a single mesh is drawn per command buffer.
 */
type Mesh struct {
	Name        string
	Vertices    []byte
	Indices     []byte
	VertexCount uint32
	IndexCount  uint32
}

// NewMesh packs vertices and uint16 indices in little endian.
func NewMesh(name string, vertices []math.ColorVertex2D, indices []uint16) *Mesh {
	vb := make([]byte, 0, len(vertices)*int(VertexStride))
	for _, v := range vertices {
		for _, f := range []float32{v.Position.X, v.Position.Y, v.Colour.X, v.Colour.Y, v.Colour.Z} {
			vb = binary.LittleEndian.AppendUint32(vb, stdmath.Float32bits(f))
		}
	}
	ib := make([]byte, 0, len(indices)*int(IndexSize))
	for _, i := range indices {
		ib = binary.LittleEndian.AppendUint16(ib, i)
	}
	return &Mesh{
		Name:        name,
		Vertices:    vb,
		Indices:     ib,
		VertexCount: uint32(len(vertices)),
		IndexCount:  uint32(len(indices)),
	}
}

// NewQuad is the unit square centred at the origin, two clockwise triangles.
func NewQuad() *Mesh {
	vertices := []math.ColorVertex2D{
		{Position: math.Vec2{X: -0.5, Y: -0.5}, Colour: math.Vec3{X: 1, Y: 0, Z: 0}},
		{Position: math.Vec2{X: 0.5, Y: -0.5}, Colour: math.Vec3{X: 0, Y: 1, Z: 0}},
		{Position: math.Vec2{X: 0.5, Y: 0.5}, Colour: math.Vec3{X: 0, Y: 0, Z: 1}},
		{Position: math.Vec2{X: -0.5, Y: 0.5}, Colour: math.Vec3{X: 1, Y: 1, Z: 1}},
	}
	indices := []uint16{0, 1, 2, 2, 3, 0}
	return NewMesh("quad", vertices, indices)
}
