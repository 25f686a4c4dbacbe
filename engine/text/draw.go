package text

import (
	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/gfx/renderer2d"
)

// QuadDrawer is the part of the 2D renderer text needs.
type QuadDrawer interface {
	DrawSubTexQuad(x, y, w, h float32, sub renderer2d.SubTexture2D, tint colors.Color, rotationRad float32)
}

// advance returns the pen step for r after prev, and whether r has a bitmap.
func (f *Font) advance(prev, r rune) (Glyph, float32, bool) {
	g, ok := f.Glyphs[r]
	if !ok {
		g, ok = f.Glyphs['?']
		if !ok {
			return Glyph{}, 0, false
		}
	}
	var kern float32
	if prev >= 0 {
		kern = f.Kerning[[2]rune{prev, r}]
	}
	return g, kern, true
}

// Draw renders s with its top-left at (x,y). Positive Y goes down.
func (f *Font) Draw(dst QuadDrawer, x, y float32, s string, color colors.Color) {
	penX := x
	baseY := y + f.Ascent
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += f.LineHeight()
			prev = -1
			continue
		}
		g, kern, ok := f.advance(prev, r)
		prev = r
		if !ok {
			continue
		}
		penX += kern
		if g.W > 0 && g.H > 0 {
			left := penX + g.BearingX
			top := baseY - g.BearingY
			dst.DrawSubTexQuad(left+float32(g.W)*0.5, top+float32(g.H)*0.5, float32(g.W), float32(g.H), g.Sub, color, 0)
		}
		penX += g.Advance
	}
}

// Measure returns the laid-out size of s. Every line counts a full line height.
func (f *Font) Measure(s string) (width, height float32) {
	var lineW float32
	prev := rune(-1)
	height = f.LineHeight()

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW = 0
			height += f.LineHeight()
			prev = -1
			continue
		}
		g, kern, ok := f.advance(prev, r)
		prev = r
		if !ok {
			continue
		}
		lineW += kern + g.Advance
	}
	return max(width, lineW), height
}
