package scene

import "github.com/chewxy/math32"

// PerspectiveCamera looks from Eye at Target.
type PerspectiveCamera struct {
	FovY      float32 // radians
	Aspect    float32
	Near, Far float32
	Eye       Vec3
	Target    Vec3
	Up        Vec3
}

func NewPerspective(eye, target Vec3, width, height int) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FovY:   math32.Pi / 4,
		Near:   0.1,
		Far:    1000,
		Eye:    eye,
		Target: target,
		Up:     Vec3{0, 1, 0},
	}
	c.SetViewportPixels(width, height)
	return c
}

func (c *PerspectiveCamera) SetViewportPixels(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	c.Aspect = float32(w) / float32(h)
}

func (c *PerspectiveCamera) View() Mat4 { return LookAt(c.Eye, c.Target, c.Up) }
func (c *PerspectiveCamera) Proj() Mat4 { return Perspective(c.FovY, c.Aspect, c.Near, c.Far) }
func (c *PerspectiveCamera) VP() Mat4   { return Mul(c.Proj(), c.View()) }
