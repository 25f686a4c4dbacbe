package scene

// OrthoCamera2D maps window pixels (origin top-left, +Y down) to clip space
// for the overlay passes.
type OrthoCamera2D struct {
	X, Y          float32 // pixel shown at the top-left corner
	Near, Far     float32
	width, height float32
	vp            Mat4
	dirty         bool
}

func NewOrtho2D(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Near: -1, Far: 1}
	c.SetViewportPixels(width, height)
	c.Recalculate()
	return c
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	c.width, c.height = float32(w), float32(h)
	c.dirty = true
}

func (c *OrthoCamera2D) SetPosition(x, y float32) { c.X, c.Y = x, y; c.dirty = true }
func (c *OrthoCamera2D) Width() float32           { return c.width }
func (c *OrthoCamera2D) Height() float32          { return c.height }

func (c *OrthoCamera2D) VP() Mat4 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *OrthoCamera2D) Recalculate() {
	// bottom/top swapped so +Y runs down the screen
	proj := Ortho(0, c.width, c.height, 0, c.Near, c.Far)
	c.vp = Mul(proj, Translate(-c.X, -c.Y, 0))
	c.dirty = false
}
