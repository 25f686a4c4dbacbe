package ui

import (
	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/core"
	"github.com/hubastard/groveshade/engine/text"
)

// Painter is what widgets draw through; *renderer2d.Renderer2D satisfies it.
type Painter interface {
	text.QuadDrawer
	DrawRect(x, y, w, h float32, c colors.Color)
}

type Theme struct {
	Text       colors.Color
	TextDim    colors.Color
	Panel      colors.Color
	Header     colors.Color
	Widget     colors.Color
	WidgetHot  colors.Color
	Accent     colors.Color
	Separator  colors.Color
	Error      colors.Color
	SliderKnob float32 // knob width in pixels
}

var DefaultTheme = Theme{
	Text:       colors.Color{0.92, 0.92, 0.92, 1},
	TextDim:    colors.Color{0.65, 0.65, 0.68, 1},
	Panel:      colors.Color{0.11, 0.11, 0.13, 0.94},
	Header:     colors.Color{0.20, 0.22, 0.27, 1},
	Widget:     colors.Color{0.24, 0.24, 0.27, 1},
	WidgetHot:  colors.Color{0.32, 0.33, 0.38, 1},
	Accent:     colors.Color{0.26, 0.52, 0.90, 1},
	Separator:  colors.Color{0.35, 0.35, 0.38, 1},
	Error:      colors.Color{0.95, 0.35, 0.30, 1},
	SliderKnob: 6,
}

// Context carries per-frame drawing services and the little state that must
// survive tree rebuilds: the hot/active widget and collapsing header state.
type Context struct {
	Viewport [4]float32 // x, y, w, h
	Font     *text.Font
	Painter  Painter
	Input    *core.Input
	Theme    Theme

	hot, active any
	open        map[any]bool
	over        bool
}

func NewContext(font *text.Font, p Painter, in *core.Input) *Context {
	return &Context{
		Font:    font,
		Painter: p,
		Input:   in,
		Theme:   DefaultTheme,
		open:    make(map[any]bool),
	}
}

// BeginFrame resets per-frame hover state.
func (c *Context) BeginFrame(viewport [4]float32) {
	c.Viewport = viewport
	c.hot = nil
	c.over = false
}

// EndFrame drops an active widget that was not drawn to see its release.
func (c *Context) EndFrame() {
	if c.active != nil && !c.Input.IsMouseDown(core.MouseLeft) {
		c.active = nil
	}
}

// WantsMouse reports whether the cursor was over a panel or a widget is
// being dragged, so world controls should ignore the mouse.
func (c *Context) WantsMouse() bool { return c.over || c.active != nil }

func (c *Context) IsOpen(id any, def bool) bool {
	if v, ok := c.open[id]; ok {
		return v
	}
	return def
}

func (c *Context) SetOpen(id any, v bool) { c.open[id] = v }

func (c *Context) mouse() (float32, float32) {
	x, y := c.Input.Mouse()
	return float32(x), float32(y)
}

type interaction struct {
	hovered bool
	pressed bool // went down on this widget this frame
	held    bool // active and button still down
	clicked bool // released over the widget that was pressed
}

// interact runs the hot/active state machine for the widget id over b's rect.
func (c *Context) interact(id any, b *Base) interaction {
	var it interaction
	mx, my := c.mouse()
	it.hovered = b.contains(mx, my)
	if it.hovered {
		c.hot = id
	}
	down := c.Input.IsMouseDown(core.MouseLeft)
	if it.hovered && c.active == nil && c.Input.MousePressed(core.MouseLeft) {
		c.active = id
		it.pressed = true
	}
	if c.active == id {
		if down {
			it.held = true
		} else {
			it.clicked = it.hovered
			c.active = nil
		}
	}
	return it
}

func (c *Context) markOver(b *Base) {
	mx, my := c.mouse()
	if b.contains(mx, my) {
		c.over = true
	}
}
