package shapes

import "github.com/chewxy/math32"

// Plane is a flat square on the XZ plane facing +Y.
type Plane struct {
	Size float32
}

func (p Plane) Build() (*Buffers, error) {
	if !(p.Size > 0) {
		return nil, invalid("size", "must be > 0")
	}
	b := newBuffers(4, 6)
	face(b, p.Size*0.5, [3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}, 0)
	return b, nil
}

// Cube is an axis-aligned box with equal sides. Each face has its own four
// vertices so normals stay flat.
type Cube struct {
	Size float32
}

// Face frames: u x v == n, so (-u-v, +u-v, +u+v, -u+v) winds counter-clockwise seen from outside.
var cubeFaces = [6][3][3]float32{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},  // +X
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},  // -X
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},  // +Y
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},  // -Y
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},   // +Z
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}}, // -Z
}

func (c Cube) Build() (*Buffers, error) {
	if !(c.Size > 0) {
		return nil, invalid("size", "must be > 0")
	}
	b := newBuffers(24, 36)
	h := c.Size * 0.5
	for _, f := range cubeFaces {
		face(b, h, f[0], f[1], f[2], h)
	}
	return b, nil
}

// face appends a square of half-extent h centered at n*offset.
func face(b *Buffers, h float32, n, u, v [3]float32, offset float32) {
	base := uint32(len(b.Positions))
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, c := range corners {
		var p [3]float32
		for k := 0; k < 3; k++ {
			p[k] = n[k]*offset + u[k]*c[0]*h + v[k]*c[1]*h
		}
		b.push(p, n, [2]float32{(c[0] + 1) * 0.5, 1 - (c[1]+1)*0.5})
	}
	b.tri(base, base+1, base+2)
	b.tri(base, base+2, base+3)
}

// UVSphere is a latitude/longitude sphere with its poles on the Y axis.
type UVSphere struct {
	Radius  float32
	Sectors uint32 // longitudinal slices
	Stacks  uint32 // latitudinal slices
}

func DefaultUVSphere() UVSphere {
	return UVSphere{Radius: 1, Sectors: 36, Stacks: 18}
}

func (s UVSphere) Build() (*Buffers, error) {
	switch {
	case !(s.Radius > 0):
		return nil, invalid("radius", "must be > 0")
	case s.Sectors < 3:
		return nil, invalid("sectors", "must be >= 3")
	case s.Stacks < 2:
		return nil, invalid("stacks", "must be >= 2")
	}

	sectorStep := 2 * math32.Pi / float32(s.Sectors)
	stackStep := math32.Pi / float32(s.Stacks)
	b := newBuffers(int((s.Stacks+1)*(s.Sectors+1)), int(6*s.Sectors*(s.Stacks-1)))

	for i := uint32(0); i <= s.Stacks; i++ {
		phi := stackStep * float32(i) // from +Y
		ring := math32.Sin(phi)
		y := math32.Cos(phi)
		for j := uint32(0); j <= s.Sectors; j++ {
			theta := sectorStep * float32(j)
			n := [3]float32{ring * math32.Cos(theta), y, ring * math32.Sin(theta)}
			b.push(
				[3]float32{n[0] * s.Radius, n[1] * s.Radius, n[2] * s.Radius},
				n,
				[2]float32{float32(j) / float32(s.Sectors), float32(i) / float32(s.Stacks)},
			)
		}
	}

	// Pole rows collapse to a point, so one triangle of each quad there is degenerate.
	for i := uint32(0); i < s.Stacks; i++ {
		k1 := i * (s.Sectors + 1)
		k2 := k1 + s.Sectors + 1
		for j := uint32(0); j < s.Sectors; j++ {
			if i != 0 {
				b.tri(k1+j, k1+j+1, k2+j)
			}
			if i != s.Stacks-1 {
				b.tri(k1+j+1, k2+j+1, k2+j)
			}
		}
	}
	return b, nil
}
