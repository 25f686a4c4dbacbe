package scene

import (
	"github.com/chewxy/math32"

	"github.com/hubastard/groveshade/engine/core"
)

const maxPitch = 89 * math32.Pi / 180

// PanOrbit drives a camera around a focus point: right-drag orbits,
// middle-drag pans, scroll zooms.
type PanOrbit struct {
	Focus  Vec3
	Radius float32
	Yaw    float32 // around +Y, 0 looks down -Z
	Pitch  float32

	OrbitSpeed float32 // radians per pixel
	PanSpeed   float32 // focus units per pixel per unit of radius
	ZoomStep   float32 // radius fraction per scroll notch
	MinRadius  float32
}

// NewPanOrbit starts from a camera at eye looking at focus.
func NewPanOrbit(eye, focus Vec3) *PanOrbit {
	p := &PanOrbit{
		Focus:      focus,
		OrbitSpeed: 0.005,
		PanSpeed:   0.0015,
		ZoomStep:   0.1,
		MinRadius:  0.5,
	}
	off := Sub(eye, focus)
	p.Radius = Length(off)
	if p.Radius > 0 {
		p.Pitch = math32.Asin(off[1] / p.Radius)
		p.Yaw = math32.Atan2(off[0], off[2])
	}
	p.clamp()
	return p
}

func (p *PanOrbit) clamp() {
	if p.Pitch > maxPitch {
		p.Pitch = maxPitch
	}
	if p.Pitch < -maxPitch {
		p.Pitch = -maxPitch
	}
	if p.Radius < p.MinRadius {
		p.Radius = p.MinRadius
	}
}

func (p *PanOrbit) Eye() Vec3 {
	cp := math32.Cos(p.Pitch)
	dir := Vec3{cp * math32.Sin(p.Yaw), math32.Sin(p.Pitch), cp * math32.Cos(p.Yaw)}
	return Add(p.Focus, MulScalar(dir, p.Radius))
}

// Orbit turns by a cursor delta in pixels.
func (p *PanOrbit) Orbit(dx, dy float32) {
	p.Yaw -= dx * p.OrbitSpeed
	p.Pitch += dy * p.OrbitSpeed
	p.clamp()
}

// Pan slides the focus in the camera plane by a cursor delta in pixels.
func (p *PanOrbit) Pan(dx, dy float32) {
	f := Normalize(Sub(p.Focus, p.Eye()))
	right := Normalize(Cross(f, Vec3{0, 1, 0}))
	up := Cross(right, f)
	k := p.PanSpeed * p.Radius
	p.Focus = Add(p.Focus, Add(MulScalar(right, -dx*k), MulScalar(up, dy*k)))
}

// Zoom moves toward the focus for positive notches.
func (p *PanOrbit) Zoom(notches float32) {
	p.Radius *= math32.Pow(1-p.ZoomStep, notches)
	p.clamp()
}

// Update reads this frame's mouse input and reports whether the view moved.
func (p *PanOrbit) Update(in *core.Input) bool {
	dx, dy := in.MouseDelta()
	_, sy := in.Scroll()
	moved := false
	if in.IsMouseDown(core.MouseRight) && (dx != 0 || dy != 0) {
		p.Orbit(float32(dx), float32(dy))
		moved = true
	} else if in.IsMouseDown(core.MouseMiddle) && (dx != 0 || dy != 0) {
		p.Pan(float32(dx), float32(dy))
		moved = true
	}
	if sy != 0 {
		p.Zoom(float32(sy))
		moved = true
	}
	return moved
}

func (p *PanOrbit) Apply(cam *PerspectiveCamera) {
	cam.Eye = p.Eye()
	cam.Target = p.Focus
}
