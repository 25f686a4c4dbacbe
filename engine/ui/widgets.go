package ui

import (
	"github.com/hubastard/groveshade/engine/colors"
)

// ColorEdit is a caption with a swatch over one slider per RGBA channel.
// c holds linear values; the swatch shows them re-encoded for display.
func ColorEdit(label string, c *[4]float32) *UIView {
	swatch := View().Size(36, 14).BgColor(colors.FromLinear(*c))
	header := View(Label(label), swatch).Gap(8).AlignCross(AlignCenter)
	rows := []Element{header}
	for i, ch := range []string{"R", "G", "B", "A"} {
		rows = append(rows, Slider(ch, &c[i], 0, 1).LabelWidth(24))
	}
	return View(rows...).FlowDirection(LayoutVertical).Gap(3).WidthExpand()
}

// UISeparator is a thin horizontal rule.
type UISeparator struct {
	Common[*UISeparator]
}

func Separator() *UISeparator {
	s := &UISeparator{}
	s.Common = NewCommon(s)
	s.base.mode[0] = SizeModeExpand
	s.base.padding = [4]float32{0, 4, 0, 4}
	s.base.color = DefaultTheme.Separator
	return s
}

func (s *UISeparator) Layout(_ *Context, constraints Constraints) LayoutResult {
	s.base.size[0] = s.base.resolve(0, 0, constraints)
	s.base.size[1] = s.base.resolve(1, 1+s.base.padAlong(1), constraints)
	return LayoutResult{Size: s.base.size}
}

func (s *UISeparator) Draw(ctx *Context) {
	ctx.Painter.DrawRect(s.base.position[0], s.base.position[1]+s.base.padding[1], s.base.size[0], 1, s.base.color)
}

// UICollapsing is a clickable header that shows or hides its body.
type UICollapsing struct {
	Common[*UICollapsing]
	id     any
	title  string
	def    bool
	open   bool
	header Base
	body   *UIView
}

// Collapsing is identified by its title unless ID says otherwise.
func Collapsing(title string, children ...Element) *UICollapsing {
	c := &UICollapsing{id: "collapsing:" + title, title: title}
	c.Common = NewCommon(c)
	c.base.mode[0] = SizeModeExpand
	c.body = View(children...).FlowDirection(LayoutVertical).Gap(4).Padding4(12, 4, 0, 4).WidthExpand()
	c.Children(c.body)
	return c
}

func (c *UICollapsing) ID(id any) *UICollapsing          { c.id = id; return c }
func (c *UICollapsing) DefaultOpen(v bool) *UICollapsing { c.def = v; return c }

func (c *UICollapsing) headerText() string {
	if c.open {
		return "[-] " + c.title
	}
	return "[+] " + c.title
}

func (c *UICollapsing) headerHeight(ctx *Context) float32 { return ctx.Font.LineHeight() + 6 }

func (c *UICollapsing) Layout(ctx *Context, constraints Constraints) LayoutResult {
	c.open = ctx.IsOpen(c.id, c.def)
	tw, _ := ctx.Font.Measure(c.headerText())
	content := [2]float32{tw + 12, c.headerHeight(ctx)}
	if c.open {
		inner := c.base.innerMax(constraints)
		body := c.body.Layout(ctx, Constraints{Max: [2]float32{inner[0], 0}}).Size
		content[0] = maxf(content[0], body[0])
		content[1] += body[1]
	}
	for a := 0; a < 2; a++ {
		c.base.size[a] = c.base.resolve(a, content[a]+c.base.padAlong(a), constraints)
	}
	return LayoutResult{Size: c.base.size}
}

func (c *UICollapsing) Place(ctx *Context, x, y, w, h float32) {
	c.base.position = [2]float32{x, y}
	c.base.size = [2]float32{w, h}
	hh := c.headerHeight(ctx)
	c.header.position = [2]float32{x, y}
	c.header.size = [2]float32{w, hh}
	if c.open {
		_, bh := c.body.base.Size()
		c.body.Place(ctx, x, y+hh, w, bh)
	}
}

func (c *UICollapsing) Draw(ctx *Context) {
	it := ctx.interact(c.id, &c.header)
	if it.clicked {
		ctx.SetOpen(c.id, !c.open)
	}
	bg := ctx.Theme.Header
	if it.hovered {
		bg = ctx.Theme.WidgetHot
	}
	hx, hy := c.header.Pos()
	hw, hh := c.header.Size()
	ctx.Painter.DrawRect(hx, hy, hw, hh, bg)
	ctx.Font.Draw(ctx.Painter, hx+6, hy+3, c.headerText(), ctx.Theme.Text)
	if c.open {
		c.body.Draw(ctx)
	}
}
