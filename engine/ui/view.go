package ui

import (
	"github.com/hubastard/groveshade/engine/colors"
)

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

type LayoutDirection int

const (
	LayoutHorizontal LayoutDirection = iota
	LayoutVertical
)

// UIView stacks its children along one axis.
type UIView struct {
	Common[*UIView]
	gap        float32
	mainAlign  Align
	crossAlign Align
	flow       LayoutDirection
	sizes      [][2]float32 // measured child sizes from the last Layout
}

func View(children ...Element) *UIView {
	v := &UIView{
		gap:        10,
		mainAlign:  AlignStart,
		crossAlign: AlignStart,
	}
	v.Common = NewCommon(v)
	v.Children(children...)
	return v
}

func (v *UIView) BgColor(color colors.Color) *UIView              { v.base.color = color; return v }
func (v *UIView) FlowDirection(direction LayoutDirection) *UIView { v.flow = direction; return v }
func (v *UIView) Gap(g float32) *UIView                           { v.gap = g; return v }
func (v *UIView) AlignMain(a Align) *UIView                       { v.mainAlign = a; return v }
func (v *UIView) AlignCross(a Align) *UIView                      { v.crossAlign = a; return v }

func (v *UIView) axes() (main, cross int) {
	if v.flow == LayoutVertical {
		return 1, 0
	}
	return 0, 1
}

func (v *UIView) gaps() float32 {
	if n := len(v.base.children); n > 1 {
		return v.gap * float32(n-1)
	}
	return 0
}

func (v *UIView) Layout(ctx *Context, constraints Constraints) LayoutResult {
	b := &v.base
	main, cross := v.axes()
	inner := b.innerMax(constraints)
	kids := b.children
	if cap(v.sizes) < len(kids) {
		v.sizes = make([][2]float32, len(kids))
	}
	v.sizes = v.sizes[:len(kids)]

	// fixed and fitting children first, expanding ones share what is left
	var used, crossMax float32
	expanding := 0
	for i, k := range kids {
		if k.Node().mode[main] == SizeModeExpand {
			expanding++
			continue
		}
		v.sizes[i] = k.Layout(ctx, Constraints{Max: inner}).Size
		used += v.sizes[i][main]
		crossMax = maxf(crossMax, v.sizes[i][cross])
	}
	if expanding > 0 {
		var share float32
		if bounded(inner[main]) {
			share = maxf(0, inner[main]-used-v.gaps()) / float32(expanding)
		}
		for i, k := range kids {
			if k.Node().mode[main] != SizeModeExpand {
				continue
			}
			c := Constraints{Max: inner}
			if share > 0 {
				c.Min[main], c.Max[main] = share, share
			}
			v.sizes[i] = k.Layout(ctx, c).Size
			used += v.sizes[i][main]
			crossMax = maxf(crossMax, v.sizes[i][cross])
		}
	}

	var content [2]float32
	content[main] = used + v.gaps()
	content[cross] = crossMax
	for a := 0; a < 2; a++ {
		b.size[a] = b.resolve(a, content[a]+b.padAlong(a), constraints)
	}
	return LayoutResult{Size: b.size}
}

func (v *UIView) Place(ctx *Context, x, y, w, h float32) {
	b := &v.base
	b.position = [2]float32{x, y}
	b.size = [2]float32{w, h}
	main, cross := v.axes()

	origin := [2]float32{x + b.padding[0], y + b.padding[1]}
	inner := [2]float32{maxf(0, w-b.padAlong(0)), maxf(0, h-b.padAlong(1))}

	used := v.gaps()
	for _, s := range v.sizes {
		used += s[main]
	}
	cursor := alignOffset(v.mainAlign, maxf(0, inner[main]-used))

	for i, k := range b.children {
		s := v.sizes[i]
		c := s[cross]
		if v.crossAlign == AlignStretch || k.Node().mode[cross] == SizeModeExpand {
			c = inner[cross]
		}
		c = clamp(c, 0, inner[cross])

		var pos, size [2]float32
		pos[main] = origin[main] + cursor
		pos[cross] = origin[cross] + alignOffset(v.crossAlign, inner[cross]-c)
		size[main] = s[main]
		size[cross] = c
		k.Place(ctx, pos[0], pos[1], size[0], size[1])
		cursor += s[main] + v.gap
	}
}

func alignOffset(a Align, free float32) float32 {
	switch a {
	case AlignCenter:
		return free * 0.5
	case AlignEnd:
		return free
	}
	return 0
}

func (v *UIView) Draw(ctx *Context) {
	b := &v.base
	if b.parent == nil {
		vp := ctx.Viewport
		v.Layout(ctx, Constraints{Max: [2]float32{vp[2] - b.offset[0], vp[3] - b.offset[1]}})
		v.Place(ctx, vp[0]+b.offset[0], vp[1]+b.offset[1], b.size[0], b.size[1])
	}

	if b.color[3] > 0 {
		ctx.Painter.DrawRect(b.position[0], b.position[1], b.size[0], b.size[1], b.color)
		ctx.markOver(b)
	}
	for _, c := range b.children {
		c.Draw(ctx)
	}
}
