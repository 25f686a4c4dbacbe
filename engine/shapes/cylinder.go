package shapes

import "github.com/chewxy/math32"

// Cylinder stands on the XZ plane, centered on the origin, with its axis along Y.
type Cylinder struct {
	// Radius of the cylinder (X and Z axes)
	Radius float32 `toml:"radius"`
	// Height of the cylinder (Y axis)
	Height float32 `toml:"height"`
	// Number of vertices around each horizontal ring
	Resolution uint32 `toml:"resolution"`
	// Number of vertical bands along the shaft
	Subdivisions uint32 `toml:"subdivisions"`
}

func DefaultCylinder() Cylinder {
	return Cylinder{
		Radius:       0.5,
		Height:       1.0,
		Resolution:   20,
		Subdivisions: 4,
	}
}

func (c Cylinder) Validate() error {
	switch {
	case !(c.Radius > 0):
		return invalid("radius", "must be > 0")
	case math32.IsInf(c.Radius, 0):
		return invalid("radius", "must be finite")
	case !(c.Height > 0):
		return invalid("height", "must be > 0")
	case math32.IsInf(c.Height, 0):
		return invalid("height", "must be finite")
	case c.Resolution == 0:
		return invalid("resolution", "must be > 0")
	case c.Subdivisions == 0:
		return invalid("subdivisions", "must be > 0")
	}
	return nil
}

// VertexCount is the number of vertices Build emits: subdivisions+1 shaft
// rings plus one top and one bottom ring, each cap ring with a center vertex.
func (c Cylinder) VertexCount() int {
	return int(c.Resolution)*(int(c.Subdivisions)+3) + 2
}

// IndexCount is the length of the index list Build emits.
func (c Cylinder) IndexCount() int {
	return 3 * int(c.Resolution) * (2*int(c.Subdivisions) + 2)
}

// Build generates the capped cylinder. Cap rings duplicate the outer shaft
// rings so the caps can carry flat normals while the shaft is smooth.
func (c Cylinder) Build() (*Buffers, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res := c.Resolution
	halfH := c.Height * 0.5
	step := 2 * math32.Pi / float32(res)
	b := newBuffers(c.VertexCount(), c.IndexCount())

	uv := func(x, y float32) [2]float32 {
		return [2]float32{x / c.Radius, (y + c.Height) / (c.Height * 2)}
	}
	ring := func(y float32, normal func(x, z float32) [3]float32) {
		for j := uint32(0); j < res; j++ {
			theta := step * float32(j)
			x := math32.Cos(theta) * c.Radius
			z := math32.Sin(theta) * c.Radius
			b.push([3]float32{x, y, z}, normal(x, z), uv(x, y))
		}
	}
	radial := func(x, z float32) [3]float32 {
		l := math32.Sqrt(x*x + z*z)
		return [3]float32{x / l, 0, z / l}
	}
	flat := func(ny float32) func(x, z float32) [3]float32 {
		return func(float32, float32) [3]float32 { return [3]float32{0, ny, 0} }
	}

	// Shaft, top to bottom
	hStep := c.Height / float32(c.Subdivisions)
	for i := uint32(0); i <= c.Subdivisions; i++ {
		ring(halfH-hStep*float32(i), radial)
	}

	top := res * (c.Subdivisions + 1)
	b.push([3]float32{0, halfH, 0}, [3]float32{0, 1, 0}, uv(0, halfH))
	ring(halfH, flat(1))

	bottom := top + res + 1
	b.push([3]float32{0, -halfH, 0}, [3]float32{0, -1, 0}, uv(0, -halfH))
	ring(-halfH, flat(-1))

	for i := uint32(0); i < c.Subdivisions; i++ {
		base1 := res * i
		base2 := base1 + res
		for j := uint32(0); j < res; j++ {
			j1 := (j + 1) % res
			b.tri(base1+j, base1+j1, base2+j)
			b.tri(base1+j1, base2+j1, base2+j)
		}
	}
	for j := uint32(0); j < res; j++ {
		j1 := (j + 1) % res
		b.tri(top+1+j1, top+1+j, top)
	}
	for j := uint32(0); j < res; j++ {
		j1 := (j + 1) % res
		b.tri(bottom+1+j, bottom+1+j1, bottom)
	}

	return b, nil
}
