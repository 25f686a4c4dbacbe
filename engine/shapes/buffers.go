package shapes

import (
	"errors"
	"fmt"

	"github.com/hubastard/groveshade/engine/core"
)

// ErrInvalidParameter is matched by every shape validation failure.
var ErrInvalidParameter = errors.New("invalid shape parameter")

// InvalidParameterError names the offending field of a shape description.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidParameter, e.Field, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

func invalid(field, reason string) error {
	return &InvalidParameterError{Field: field, Reason: reason}
}

// Shape is anything that can generate a triangle-list mesh.
type Shape interface {
	Build() (*Buffers, error)
}

// Buffers holds parallel per-vertex attribute arrays plus a triangle list.
// Every three consecutive indices form one counter-clockwise (outward) triangle.
type Buffers struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

func newBuffers(vertexCount, indexCount int) *Buffers {
	return &Buffers{
		Positions: make([][3]float32, 0, vertexCount),
		Normals:   make([][3]float32, 0, vertexCount),
		UVs:       make([][2]float32, 0, vertexCount),
		Indices:   make([]uint32, 0, indexCount),
	}
}

func (b *Buffers) VertexCount() int   { return len(b.Positions) }
func (b *Buffers) IndexCount() int    { return len(b.Indices) }
func (b *Buffers) TriangleCount() int { return len(b.Indices) / 3 }

func (b *Buffers) push(p, n [3]float32, uv [2]float32) {
	b.Positions = append(b.Positions, p)
	b.Normals = append(b.Normals, n)
	b.UVs = append(b.UVs, uv)
}

func (b *Buffers) tri(i0, i1, i2 uint32) {
	b.Indices = append(b.Indices, i0, i1, i2)
}

// Vertex: pos3 + normal3 + uv2 => 8 floats
const vStride = 8

// VertexLayout matches the output of Interleave.
var VertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 3, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 3, Type: core.AttribFloat32, Offset: 3 * 4}, // normal
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
	},
}

// Interleave packs the attributes into a single vertex stream laid out as VertexLayout.
func (b *Buffers) Interleave() []float32 {
	out := make([]float32, 0, len(b.Positions)*vStride)
	for i, p := range b.Positions {
		n := b.Normals[i]
		uv := b.UVs[i]
		out = append(out,
			p[0], p[1], p[2],
			n[0], n[1], n[2],
			uv[0], uv[1],
		)
	}
	return out
}

// MeshDesc is the upload descriptor for the renderer.
func (b *Buffers) MeshDesc() core.MeshDesc {
	return core.MeshDesc{
		Vertices: b.Interleave(),
		Indices:  b.Indices,
		Layout:   VertexLayout,
	}
}
