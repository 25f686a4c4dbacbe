package ui

import (
	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/text"
)

type UIButton struct {
	Common[*UIButton]
	id      any
	label   *UILabel
	onClick func()
}

// Button is identified by its caption unless ID says otherwise.
func Button(str string) *UIButton {
	b := &UIButton{id: "button:" + str}
	b.Common = NewCommon(b)
	b.label = Label(str)
	b.Children(b.label)
	b.base.color = DefaultTheme.Widget
	b.base.padding = [4]float32{10, 6, 10, 6}
	return b
}

func (b *UIButton) ID(id any) *UIButton                    { b.id = id; return b }
func (b *UIButton) BgColor(color colors.Color) *UIButton   { b.base.color = color; return b }
func (b *UIButton) TextColor(color colors.Color) *UIButton { b.label.base.color = color; return b }
func (b *UIButton) Font(font *text.Font) *UIButton         { b.label.font = font; return b }
func (b *UIButton) OnClick(fn func()) *UIButton            { b.onClick = fn; return b }

func (b *UIButton) Layout(ctx *Context, constraints Constraints) LayoutResult {
	res := b.label.Layout(ctx, Constraints{Max: b.base.innerMax(constraints)})
	for a := 0; a < 2; a++ {
		b.base.size[a] = b.base.resolve(a, res.Size[a]+b.base.padAlong(a), constraints)
	}
	return LayoutResult{Size: b.base.size}
}

func (b *UIButton) Place(ctx *Context, x, y, w, h float32) {
	b.base.position = [2]float32{x, y}
	b.base.size = [2]float32{w, h}
	lw, lh := b.label.base.Size()
	innerW := maxf(0, w-b.base.padAlong(0))
	innerH := maxf(0, h-b.base.padAlong(1))
	// caption centered in the padded box
	b.label.Place(ctx,
		x+b.base.padding[0]+maxf(0, innerW-lw)*0.5,
		y+b.base.padding[1]+maxf(0, innerH-lh)*0.5,
		clamp(lw, 0, innerW), clamp(lh, 0, innerH))
}

func (b *UIButton) Draw(ctx *Context) {
	it := ctx.interact(b.id, &b.base)
	bg := b.base.color
	switch {
	case it.held:
		bg = ctx.Theme.Accent
	case it.hovered:
		bg = ctx.Theme.WidgetHot
	}
	ctx.Painter.DrawRect(b.base.position[0], b.base.position[1], b.base.size[0], b.base.size[1], bg)
	b.label.Draw(ctx)

	if it.clicked && b.onClick != nil {
		b.onClick()
	}
}
