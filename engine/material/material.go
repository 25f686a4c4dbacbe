// Package material holds the shader parameter blocks the showcase edits at
// runtime and the per-kind plugins that turn them into GPU uniform buffers.
package material

import (
	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/core"
)

type Kind string

const (
	KindSolid    Kind = "solid"
	KindGradient Kind = "gradient"
)

// Material is a parameter block uploaded as a single std140 uniform buffer.
type Material interface {
	Kind() Kind
	AppendStd140(dst []byte) []byte
}

// Layout describes where a material's block binds and how big it is.
type Layout struct {
	Block      string // GLSL uniform block name
	Binding    uint32
	Size       int // std140 size in bytes
	Visibility core.ShaderStage
}

func (l Layout) blockDesc() core.UniformBlockDesc {
	return core.UniformBlockDesc{
		Name:       l.Block,
		Binding:    l.Binding,
		MinSize:    l.Size,
		Visibility: l.Visibility,
	}
}

// Encode returns m's std140 bytes.
func Encode(m Material) []byte { return m.AppendStd140(nil) }

// ---- solid ----

const (
	SolidScaleMin  = 0
	SolidScaleMax  = 5
	SolidOffsetMin = -5
	SolidOffsetMax = 5
)

var SolidLayout = Layout{
	Block:      "SolidMaterial",
	Binding:    0,
	Size:       32,
	Visibility: core.StageVertexFragment,
}

// Solid shades a mesh with one color. Color is linear RGBA.
type Solid struct {
	Color  [4]float32
	Scale  float32
	Offset float32
}

func NewSolid(c colors.Color) *Solid {
	return &Solid{Color: c.Linear(), Scale: 1, Offset: 0}
}

func (m *Solid) Kind() Kind { return KindSolid }

// Clamp pulls the parameters back into the ranges the inspector offers.
func (m *Solid) Clamp() {
	m.Color = clampColor(m.Color)
	m.Scale = clamp(m.Scale, SolidScaleMin, SolidScaleMax)
	m.Offset = clamp(m.Offset, SolidOffsetMin, SolidOffsetMax)
}

func (m *Solid) AppendStd140(dst []byte) []byte {
	w := newStd140(dst)
	w.vec4(m.Color)
	w.float(m.Scale)
	w.float(m.Offset)
	return w.bytes()
}

// ---- gradient ----

var GradientLayout = Layout{
	Block:      "GradientMaterial",
	Binding:    0,
	Size:       48,
	Visibility: core.StageVertexFragment,
}

// Gradient blends ColorA into ColorB between the Start and End stops along
// the mesh's v coordinate. Colors are linear RGBA.
type Gradient struct {
	ColorA [4]float32
	ColorB [4]float32
	Start  float32
	End    float32
}

func NewGradient(a, b colors.Color) *Gradient {
	return &Gradient{ColorA: a.Linear(), ColorB: b.Linear(), Start: 0, End: 1}
}

func (m *Gradient) Kind() Kind { return KindGradient }

func (m *Gradient) Clamp() {
	m.ColorA = clampColor(m.ColorA)
	m.ColorB = clampColor(m.ColorB)
	m.Start = clamp(m.Start, 0, 1)
	m.End = clamp(m.End, 0, 1)
}

func (m *Gradient) AppendStd140(dst []byte) []byte {
	w := newStd140(dst)
	w.vec4(m.ColorA)
	w.vec4(m.ColorB)
	w.float(m.Start)
	w.float(m.End)
	return w.bytes()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampColor(c [4]float32) [4]float32 {
	for i := range c {
		c[i] = clamp(c[i], 0, 1)
	}
	return c
}
