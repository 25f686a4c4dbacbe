package ui

import (
	"math"

	"github.com/hubastard/groveshade/engine/colors"
)

type SizeMode int

const (
	SizeModeFit SizeMode = iota
	SizeModeFixed
	SizeModeExpand
)

// Constraints bound a layout pass. A zero Max means unbounded.
type Constraints struct {
	Min [2]float32
	Max [2]float32
}

type LayoutResult struct {
	Size [2]float32
}

// Element is a node of the per-frame widget tree. Layout measures, Place
// assigns the final rectangle, Draw paints and handles input.
type Element interface {
	Node() *Base
	Layout(ctx *Context, constraints Constraints) LayoutResult
	Place(ctx *Context, x, y, w, h float32)
	Draw(ctx *Context)
}

type Base struct {
	parent   Element
	children []Element
	offset   [2]float32 // root only: position inside the viewport
	position [2]float32
	size     [2]float32
	color    colors.Color
	mode     [2]SizeMode
	fixed    [2]float32
	padding  [4]float32 // left, top, right, bottom
}

func (b *Base) Parent() Element         { return b.parent }
func (b *Base) Children() []Element     { return b.children }
func (b *Base) Pos() (x, y float32)     { return b.position[0], b.position[1] }
func (b *Base) Size() (w, h float32)    { return b.size[0], b.size[1] }
func (b *Base) SetColor(c colors.Color) { b.color = c }
func (b *Base) Padding() [4]float32     { return b.padding }

func (b *Base) contains(x, y float32) bool {
	return x >= b.position[0] && x < b.position[0]+b.size[0] &&
		y >= b.position[1] && y < b.position[1]+b.size[1]
}

func (b *Base) padAlong(axis int) float32 { return b.padding[axis] + b.padding[axis+2] }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func resolveConstraint(max float32) float32 {
	if max <= 0 {
		return math.MaxFloat32
	}
	return max
}

func bounded(v float32) bool { return v < math.MaxFloat32 }

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// resolve picks the outer size along axis for the given content size.
func (b *Base) resolve(axis int, content float32, c Constraints) float32 {
	hi := resolveConstraint(c.Max[axis])
	switch b.mode[axis] {
	case SizeModeFixed:
		if b.fixed[axis] > 0 {
			return clamp(b.fixed[axis], c.Min[axis], hi)
		}
	case SizeModeExpand:
		if bounded(hi) {
			return maxf(hi, c.Min[axis])
		}
	}
	return clamp(content, c.Min[axis], hi)
}

// innerMax is the content box a child may use, honoring a fixed size.
func (b *Base) innerMax(c Constraints) [2]float32 {
	var out [2]float32
	for a := 0; a < 2; a++ {
		m := resolveConstraint(c.Max[a])
		if b.mode[a] == SizeModeFixed && b.fixed[a] > 0 && b.fixed[a] < m {
			m = b.fixed[a]
		}
		if bounded(m) {
			m = maxf(0, m-b.padAlong(a))
		}
		out[a] = m
	}
	return out
}

// ------ Helper ------

// Common carries the chainable setters shared by every widget.
type Common[T any] struct {
	owner T
	base  Base
}

func NewCommon[T any](owner T) Common[T] {
	return Common[T]{owner: owner}
}

func (c *Common[T]) Node() *Base              { return &c.base }
func (c *Common[T]) Position(x, y float32) T  { c.base.offset = [2]float32{x, y}; return c.owner }
func (c *Common[T]) Color(col colors.Color) T { c.base.color = col; return c.owner }

func (c *Common[T]) Size(w, h float32) T {
	c.base.mode = [2]SizeMode{SizeModeFixed, SizeModeFixed}
	c.base.fixed = [2]float32{w, h}
	return c.owner
}

func (c *Common[T]) WidthFit() T { c.base.mode[0] = SizeModeFit; return c.owner }

func (c *Common[T]) WidthFixed(width float32) T {
	c.base.mode[0] = SizeModeFixed
	c.base.fixed[0] = width
	return c.owner
}

func (c *Common[T]) WidthExpand() T { c.base.mode[0] = SizeModeExpand; return c.owner }

func (c *Common[T]) HeightFit() T { c.base.mode[1] = SizeModeFit; return c.owner }

func (c *Common[T]) HeightFixed(height float32) T {
	c.base.mode[1] = SizeModeFixed
	c.base.fixed[1] = height
	return c.owner
}

func (c *Common[T]) HeightExpand() T { c.base.mode[1] = SizeModeExpand; return c.owner }

func (c *Common[T]) Padding(all float32) T {
	c.base.padding = [4]float32{all, all, all, all}
	return c.owner
}

func (c *Common[T]) Padding2(horizontal, vertical float32) T {
	c.base.padding = [4]float32{horizontal, vertical, horizontal, vertical}
	return c.owner
}

func (c *Common[T]) Padding4(left, top, right, bottom float32) T {
	c.base.padding = [4]float32{left, top, right, bottom}
	return c.owner
}

func (c *Common[T]) Children(kids ...Element) T {
	for _, k := range kids {
		if k == nil {
			continue
		}
		k.Node().parent = any(c.owner).(Element)
		c.base.children = append(c.base.children, k)
	}
	return c.owner
}

// Place is the leaf behaviour: take the rectangle as given.
func (c *Common[T]) Place(_ *Context, x, y, w, h float32) {
	c.base.position = [2]float32{x, y}
	c.base.size = [2]float32{w, h}
}
