package shapes

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func TestCylinderDefaultScenario(t *testing.T) {
	b, err := DefaultCylinder().Build()
	require.NoError(t, err)

	assert.Equal(t, 142, b.VertexCount())
	assert.Len(t, b.Normals, 142)
	assert.Len(t, b.UVs, 142)
	assert.Equal(t, 600, b.IndexCount())
	assert.Equal(t, 200, b.TriangleCount())
}

func TestCylinderCounts(t *testing.T) {
	for _, c := range []Cylinder{
		{Radius: 1, Height: 1, Resolution: 1, Subdivisions: 1},
		{Radius: 0.25, Height: 3, Resolution: 3, Subdivisions: 1},
		{Radius: 2, Height: 0.5, Resolution: 7, Subdivisions: 5},
		{Radius: 1, Height: 2, Resolution: 64, Subdivisions: 12},
	} {
		b, err := c.Build()
		require.NoError(t, err)

		n := int(c.Resolution*(c.Subdivisions+3) + 2)
		assert.Equal(t, n, len(b.Positions), "%+v", c)
		assert.Equal(t, n, len(b.Normals), "%+v", c)
		assert.Equal(t, n, len(b.UVs), "%+v", c)
		assert.Equal(t, c.VertexCount(), n)

		assert.Zero(t, len(b.Indices)%3)
		assert.Equal(t, int(c.Resolution*(2*c.Subdivisions+2)), len(b.Indices)/3, "%+v", c)
		assert.Equal(t, c.IndexCount(), len(b.Indices))
		for _, i := range b.Indices {
			require.Less(t, int(i), n)
		}
	}
}

func TestCylinderNormals(t *testing.T) {
	c := Cylinder{Radius: 0.7, Height: 1.3, Resolution: 9, Subdivisions: 3}
	b, err := c.Build()
	require.NoError(t, err)

	for i, n := range b.Normals {
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		assert.InDelta(t, 1, l, tol, "normal %d", i)
	}

	top := int(c.Resolution * (c.Subdivisions + 1))
	bottom := top + int(c.Resolution) + 1
	for i := top; i < bottom; i++ {
		assert.Equal(t, [3]float32{0, 1, 0}, b.Normals[i], "top %d", i)
	}
	for i := bottom; i < len(b.Normals); i++ {
		assert.Equal(t, [3]float32{0, -1, 0}, b.Normals[i], "bottom %d", i)
	}
	for i := 0; i < top; i++ {
		p, n := b.Positions[i], b.Normals[i]
		assert.Zero(t, n[1])
		assert.InDelta(t, p[0]/c.Radius, n[0], tol)
		assert.InDelta(t, p[2]/c.Radius, n[2], tol)
	}
}

func TestCylinderCapRings(t *testing.T) {
	c := Cylinder{Radius: 1, Height: 2, Resolution: 6, Subdivisions: 2}
	b, err := c.Build()
	require.NoError(t, err)

	top := int(c.Resolution * (c.Subdivisions + 1))
	bottom := top + int(c.Resolution) + 1
	last := int(c.Resolution * c.Subdivisions)

	assert.Equal(t, [3]float32{0, 1, 0}, b.Positions[top])
	assert.Equal(t, [3]float32{0, -1, 0}, b.Positions[bottom])
	for j := 0; j < int(c.Resolution); j++ {
		// same position as the outer shaft rings, separate entries
		assert.Equal(t, b.Positions[j], b.Positions[top+1+j])
		assert.Equal(t, b.Positions[last+j], b.Positions[bottom+1+j])
		assert.NotEqual(t, b.Normals[j], b.Normals[top+1+j])
	}
}

func TestCylinderRadialSymmetry(t *testing.T) {
	b, err := Cylinder{Radius: 1, Height: 2, Resolution: 4, Subdivisions: 1}.Build()
	require.NoError(t, err)

	want := [][2]float32{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for ring, y := range []float32{1, -1} {
		for j, xz := range want {
			p := b.Positions[ring*4+j]
			assert.InDelta(t, xz[0], p[0], tol, "ring %d vertex %d", ring, j)
			assert.Equal(t, y, p[1], "ring %d vertex %d", ring, j)
			assert.InDelta(t, xz[1], p[2], tol, "ring %d vertex %d", ring, j)
		}
	}
}

func TestCylinderUVs(t *testing.T) {
	c := Cylinder{Radius: 2, Height: 4, Resolution: 8, Subdivisions: 2}
	b, err := c.Build()
	require.NoError(t, err)

	for i, p := range b.Positions {
		uv := b.UVs[i]
		assert.InDelta(t, p[0]/c.Radius, uv[0], tol)
		assert.InDelta(t, (p[1]+c.Height)/(2*c.Height), uv[1], tol)
		assert.GreaterOrEqual(t, uv[0], float32(-1))
		assert.LessOrEqual(t, uv[0], float32(1))
	}
	assert.Equal(t, float32(1), b.UVs[0][0])
	assert.Equal(t, float32(0.75), b.UVs[0][1])
	assert.Equal(t, float32(0.25), b.UVs[len(b.UVs)-1][1])
}

func TestCylinderWindingOutward(t *testing.T) {
	c := Cylinder{Radius: 1, Height: 1, Resolution: 12, Subdivisions: 3}
	b, err := c.Build()
	require.NoError(t, err)
	assertOutward(t, b)

	top := uint32(c.Resolution * (c.Subdivisions + 1))
	bottom := top + c.Resolution + 1
	shaftIdx := int(6 * c.Resolution * c.Subdivisions)
	capIdx := int(3 * c.Resolution)

	for k := shaftIdx; k < shaftIdx+capIdx; k += 3 {
		n := faceNormal(b, k)
		assert.Greater(t, n[1], float32(0), "top triangle %d", k/3)
		assert.Equal(t, top, b.Indices[k+2])
	}
	for k := shaftIdx + capIdx; k < len(b.Indices); k += 3 {
		n := faceNormal(b, k)
		assert.Less(t, n[1], float32(0), "bottom triangle %d", k/3)
		assert.Equal(t, bottom, b.Indices[k+2])
	}
}

func TestCylinderInvalid(t *testing.T) {
	for field, c := range map[string]Cylinder{
		"radius":       {Radius: 0, Height: 1, Resolution: 4, Subdivisions: 1},
		"height":       {Radius: 1, Height: 0, Resolution: 4, Subdivisions: 1},
		"resolution":   {Radius: 1, Height: 1, Resolution: 0, Subdivisions: 1},
		"subdivisions": {Radius: 1, Height: 1, Resolution: 4, Subdivisions: 0},
	} {
		b, err := c.Build()
		assert.Nil(t, b, field)
		require.Error(t, err, field)
		assert.ErrorIs(t, err, ErrInvalidParameter, field)

		var ipe *InvalidParameterError
		require.True(t, errors.As(err, &ipe), field)
		assert.Equal(t, field, ipe.Field)
		assert.NotEmpty(t, ipe.Reason)
	}

	_, err := Cylinder{Radius: -1, Height: 1, Resolution: 4, Subdivisions: 1}.Build()
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Cylinder{Radius: math32.NaN(), Height: 1, Resolution: 4, Subdivisions: 1}.Build()
	assert.ErrorIs(t, err, ErrInvalidParameter)

	for field, c := range map[string]Cylinder{
		"radius": {Radius: math32.Inf(1), Height: 1, Resolution: 4, Subdivisions: 1},
		"height": {Radius: 1, Height: math32.Inf(1), Resolution: 4, Subdivisions: 1},
	} {
		b, err := c.Build()
		assert.Nil(t, b, field)
		var ipe *InvalidParameterError
		require.ErrorAs(t, err, &ipe, field)
		assert.Equal(t, field, ipe.Field)
	}
}

func TestCylinderCountsDoNotWrap(t *testing.T) {
	c := Cylinder{Radius: 1, Height: 1, Resolution: 1 << 20, Subdivisions: 1 << 13}
	assert.Equal(t, int64(1<<20)*(1<<13+3)+2, int64(c.VertexCount()))
	assert.Equal(t, 3*int64(1<<20)*(2<<13+2), int64(c.IndexCount()))
}

func TestCylinderDeterministic(t *testing.T) {
	c := Cylinder{Radius: 0.3, Height: 1.7, Resolution: 33, Subdivisions: 7}
	a, err := c.Build()
	require.NoError(t, err)
	b, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCylinderConcurrent(t *testing.T) {
	want, err := DefaultCylinder().Build()
	require.NoError(t, err)

	results := make(chan *Buffers, 8)
	for i := 0; i < cap(results); i++ {
		go func() {
			b, _ := DefaultCylinder().Build()
			results <- b
		}()
	}
	for i := 0; i < cap(results); i++ {
		assert.Equal(t, want, <-results)
	}
}

// ---- helpers shared by the shape tests ----

func sub(a, b [3]float32) [3]float32 { return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float32) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// faceNormal returns the unnormalized normal of the triangle starting at index k.
func faceNormal(b *Buffers, k int) [3]float32 {
	p0 := b.Positions[b.Indices[k]]
	p1 := b.Positions[b.Indices[k+1]]
	p2 := b.Positions[b.Indices[k+2]]
	return cross(sub(p1, p0), sub(p2, p0))
}

// assertOutward checks every triangle winds counter-clockwise around its vertex normals.
func assertOutward(t *testing.T, b *Buffers) {
	t.Helper()
	for k := 0; k < len(b.Indices); k += 3 {
		var avg [3]float32
		for _, i := range b.Indices[k : k+3] {
			n := b.Normals[i]
			avg = [3]float32{avg[0] + n[0], avg[1] + n[1], avg[2] + n[2]}
		}
		if !assert.Greater(t, dot(faceNormal(b, k), avg), float32(0), "triangle %d", k/3) {
			return
		}
	}
}
