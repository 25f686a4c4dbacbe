package renderer2d

import (
	"strconv"

	"github.com/chewxy/math32"

	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/core"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// samplerNames are the GLSL names of the texture slots, "uTex[0]".."uTex[15]".
var samplerNames = func() (n [maxTexSlots]string) {
	for i := range n {
		n[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	return n
}()

// quadBatch accumulates quads until it runs out of room or texture slots.
// Slot 0 always holds the fallback texture.
type quadBatch struct {
	verts    []float32
	inds     []uint32
	quads    int
	maxQuads int

	slots    [maxTexSlots]core.Texture
	used     int
	fallback core.Texture
}

func newQuadBatch(maxQuads int, fallback core.Texture) quadBatch {
	b := quadBatch{
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:     make([]uint32, 0, maxQuads*indsPerQuad),
		maxQuads: maxQuads,
		fallback: fallback,
	}
	b.reset()
	return b
}

func (b *quadBatch) empty() bool { return b.quads == 0 }
func (b *quadBatch) full() bool  { return b.quads >= b.maxQuads }

func (b *quadBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.quads = 0
	clear(b.slots[:])
	b.slots[0] = b.fallback
	b.used = 1
}

// slot returns the index t is bound at, or -1 when every slot is taken by
// another texture.
func (b *quadBatch) slot(t core.Texture) int {
	for i := range b.used {
		if b.slots[i] == t {
			return i
		}
	}
	if b.used == maxTexSlots {
		return -1
	}
	b.slots[b.used] = t
	b.used++
	return b.used - 1
}

// bindings fills m with the sampler name of every used slot.
func (b *quadBatch) bindings(m map[string]core.Texture) {
	clear(m)
	for i, t := range b.slots[:b.used] {
		m[samplerNames[i]] = t
	}
}

// quad appends a w x h quad centered on (x,y), rotated by rot radians.
// Positive Y goes down, so the first corner is the top-left one.
func (b *quadBatch) quad(x, y, w, h, rot float32, tint colors.Color, slot int, uv [4]float32) {
	hw, hh := w*0.5, h*0.5
	cos, sin := float32(1), float32(0)
	if rot != 0 {
		sin, cos = math32.Sin(rot), math32.Cos(rot)
	}
	base := uint32(len(b.verts) / vStride)
	for _, c := range [vertsPerQuad][4]float32{
		{-hw, -hh, uv[0], uv[1]},
		{hw, -hh, uv[2], uv[1]},
		{-hw, hh, uv[0], uv[3]},
		{hw, hh, uv[2], uv[3]},
	} {
		b.verts = append(b.verts,
			x+c[0]*cos-c[1]*sin, y+c[0]*sin+c[1]*cos,
			tint[0], tint[1], tint[2], tint[3],
			c[2], c[3],
			float32(slot),
		)
	}
	b.inds = append(b.inds, base, base+2, base+1, base+1, base+2, base+3)
	b.quads++
}
