package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/hubastard/groveshade/engine/core"
)

const tol = 1e-4

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v", i, got)
	}
}

func TestMulOrder(t *testing.T) {
	assert.Equal(t, Translate(1, 2, 3), Mul(Identity(), Translate(1, 2, 3)))

	// scale first, then translate
	m := Mul(Translate(1, 0, 0), Scale(2, 2, 2))
	assertVec(t, Vec3{3, 2, 0}, TransformPoint(m, Vec3{1, 1, 0}))
}

func TestRotations(t *testing.T) {
	h := math32.Pi / 2
	assertVec(t, Vec3{0, 0, 1}, TransformPoint(RotateX(h), Vec3{0, 1, 0}))
	assertVec(t, Vec3{0, 0, -1}, TransformPoint(RotateY(h), Vec3{1, 0, 0}))
	assertVec(t, Vec3{0, 1, 0}, TransformPoint(RotateZ(h), Vec3{1, 0, 0}))
}

func TestTransformMatrix(t *testing.T) {
	tr := At(0, 2, -5).Rotated(math32.Pi/2, 0, 0)
	m := tr.Matrix()
	// a +Y normal on a plane rotated about X ends up facing +Z
	assertVec(t, Vec3{0, 2, -4}, TransformPoint(m, Vec3{0, 1, 0}))

	tr.Scale = Vec3{2, 2, 2}
	assertVec(t, Vec3{0, 2, -3}, TransformPoint(tr.Matrix(), Vec3{0, 1, 0}))
}

func TestLookAtPerspective(t *testing.T) {
	view := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	assertVec(t, Vec3{0, 0, -5}, TransformPoint(view, Vec3{}))

	proj := Perspective(math32.Pi/2, 1, 1, 10)
	assert.InDelta(t, -1, TransformPoint(proj, Vec3{0, 0, -1})[2], tol)
	assert.InDelta(t, 1, TransformPoint(proj, Vec3{0, 0, -10})[2], tol)
	// 90° fov: the frustum edge at depth d sits at x = d
	assert.InDelta(t, 1, TransformPoint(proj, Vec3{4, 0, -4})[0], tol)
}

func TestPerspectiveCamera(t *testing.T) {
	c := NewPerspective(Vec3{0, 0, 5}, Vec3{}, 1280, 720)
	assert.InDelta(t, 1280.0/720.0, c.Aspect, tol)
	c.SetViewportPixels(0, 10)
	assert.InDelta(t, 1280.0/720.0, c.Aspect, tol)

	ndc := TransformPoint(c.VP(), Vec3{})
	assert.InDelta(t, 0, ndc[0], tol)
	assert.InDelta(t, 0, ndc[1], tol)
}

func TestOrtho2DPixels(t *testing.T) {
	c := NewOrtho2D(800, 600)
	assert.Equal(t, float32(800), c.Width())
	assert.Equal(t, float32(600), c.Height())
	assertVec(t, Vec3{-1, 1, 0}, TransformPoint(c.VP(), Vec3{0, 0, 0}))
	assertVec(t, Vec3{1, -1, 0}, TransformPoint(c.VP(), Vec3{800, 600, 0}))

	c.SetPosition(400, 0)
	assertVec(t, Vec3{-1, 1, 0}, TransformPoint(c.VP(), Vec3{400, 0, 0}))

	c.SetViewportPixels(400, 300)
	assertVec(t, Vec3{1, -1, 0}, TransformPoint(c.VP(), Vec3{800, 300, 0}))
}

func TestPanOrbitRoundTrip(t *testing.T) {
	eye := Vec3{3, 3.5, 10}
	p := NewPanOrbit(eye, Vec3{})
	assert.InDelta(t, math32.Sqrt(121.25), p.Radius, tol)
	assertVec(t, eye, p.Eye())
}

func TestPanOrbitClamps(t *testing.T) {
	p := NewPanOrbit(Vec3{0, 0, 10}, Vec3{})
	p.Orbit(0, 1e6)
	assert.InDelta(t, maxPitch, p.Pitch, tol)
	p.Orbit(0, -1e7)
	assert.InDelta(t, -maxPitch, p.Pitch, tol)

	p.Zoom(1000)
	assert.Equal(t, p.MinRadius, p.Radius)

	p.Zoom(-1)
	assert.Greater(t, p.Radius, p.MinRadius)
}

func TestPanOrbitPanKeepsOffset(t *testing.T) {
	p := NewPanOrbit(Vec3{0, 0, 10}, Vec3{})
	before := Sub(p.Eye(), p.Focus)
	p.Pan(100, 0)
	assert.Less(t, p.Focus[0], float32(0), "dragging right moves the focus left")
	assert.InDelta(t, 0, p.Focus[1], tol)
	assertVec(t, before, Sub(p.Eye(), p.Focus))
}

func TestPanOrbitUpdate(t *testing.T) {
	in := core.NewInput()
	p := NewPanOrbit(Vec3{0, 0, 10}, Vec3{})
	assert.False(t, p.Update(in))

	in.Handle(core.EventMouseButton{Button: core.MouseRight, Down: true})
	in.Handle(core.EventMouseMove{X: 20, Y: 0})
	yaw := p.Yaw
	assert.True(t, p.Update(in))
	assert.Less(t, p.Yaw, yaw)
	in.EndFrame()

	in.Handle(core.EventScroll{Yoff: 1})
	r := p.Radius
	assert.True(t, p.Update(in))
	assert.Less(t, p.Radius, r)

	cam := NewPerspective(Vec3{}, Vec3{}, 100, 100)
	p.Apply(cam)
	assert.Equal(t, p.Eye(), cam.Eye)
	assert.Equal(t, p.Focus, cam.Target)
}
