// Package text rasterizes a TrueType face into a glyph atlas and lays out
// single-size strings against it.
package text

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hubastard/groveshade/engine/core"
	"github.com/hubastard/groveshade/engine/gfx/renderer2d"
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // baseline to glyph top
	W, H     int     // bitmap size
	Sub      renderer2d.SubTexture2D
}

// Font is a rasterized face at one pixel size.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Kerning                  map[[2]rune]float32
	Texture                  core.Texture
	AtlasW, AtlasH           int
}

const (
	firstRune    = rune(32)
	lastRune     = rune(255)
	atlasPadding = 2
	maxAtlasSize = 4096
)

// Default returns Go Mono at sizePx.
func Default(r core.Renderer, sizePx float32) (*Font, error) {
	return LoadTTFBytes(r, "gomono", gomono.TTF, sizePx)
}

// LoadTTF reads a .ttf/.otf file from disk.
func LoadTTF(r core.Renderer, path string, sizePx float32) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return LoadTTFBytes(r, path, data, sizePx)
}

// LoadTTFBytes builds a white-on-transparent glyph atlas for Latin-1 and
// uploads it as an RGBA texture.
func LoadTTFBytes(r core.Renderer, label string, data []byte, sizePx float32) (*Font, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font %s: size %v", label, sizePx)
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", label, err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face %s: %w", label, err)
	}
	defer face.Close()

	f, atlas, err := rasterize(face, sizePx)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", label, err)
	}

	tex, err := r.CreateTexture(core.TextureDesc{
		Label:     "font:" + label,
		Width:     atlas.Rect.Dx(),
		Height:    atlas.Rect.Dy(),
		Format:    core.TextureRGBA8,
		Pixels:    atlas.Pix,
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		return nil, err
	}
	f.Texture = tex
	for k, g := range f.Glyphs {
		g.Sub.Texture = tex
		f.Glyphs[k] = g
	}
	core.Logger().Debug("font atlas built", "font", label, "size", sizePx, "glyphs", len(f.Glyphs), "atlas", f.AtlasW)
	return f, nil
}

type placed struct {
	r      rune
	w, h   int
	adv    float32
	bx, by float32
}

// rasterize packs glyph bitmaps into a square shelf atlas, growing it until
// everything fits.
func rasterize(face font.Face, sizePx float32) (*Font, *image.RGBA, error) {
	m := face.Metrics()
	f := &Font{
		SizePx:  sizePx,
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(-m.Descent.Round()),
		Glyphs:  make(map[rune]Glyph),
		Kerning: make(map[[2]rune]float32),
	}
	f.LineGap = float32(m.Height.Round()) - f.Ascent + f.Descent

	var glyphs []placed
	for rr := firstRune; rr <= lastRune; rr++ {
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		glyphs = append(glyphs, placed{
			r:   rr,
			w:   (br.Max.X - br.Min.X).Ceil(),
			h:   (br.Max.Y - br.Min.Y).Ceil(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Floor()),
			by:  float32(-br.Min.Y.Floor()),
		})
	}

	size := 128
	var pos map[rune]image.Point
	for {
		var ok bool
		pos, ok = pack(glyphs, size)
		if ok {
			break
		}
		size *= 2
		if size > maxAtlasSize {
			return nil, nil, fmt.Errorf("atlas larger than %d", maxAtlasSize)
		}
	}
	f.AtlasW, f.AtlasH = size, size

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	for _, g := range glyphs {
		glyph := Glyph{Rune: g.r, Advance: g.adv, BearingX: g.bx, BearingY: g.by, W: g.w, H: g.h}
		if p, ok := pos[g.r]; ok {
			// the drawer's dot sits on the baseline
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			glyph.Sub = renderer2d.FromPixels(nil, p.X, p.Y, g.w, g.h, size, size)
		}
		f.Glyphs[g.r] = glyph
	}

	for _, a := range glyphs {
		for _, b := range glyphs {
			if k := face.Kern(a.r, b.r); k != 0 {
				f.Kerning[[2]rune{a.r, b.r}] = float32(k.Round())
			}
		}
	}
	return f, dst, nil
}

// pack places non-empty glyphs in rows; ok is false when size is too small.
func pack(glyphs []placed, size int) (map[rune]image.Point, bool) {
	pos := make(map[rune]image.Point, len(glyphs))
	x, y, rowH := atlasPadding, atlasPadding, 0
	for _, g := range glyphs {
		if g.w == 0 || g.h == 0 {
			continue
		}
		if g.w+2*atlasPadding > size || g.h+2*atlasPadding > size {
			return nil, false
		}
		if x+g.w+atlasPadding > size {
			x = atlasPadding
			y += rowH + atlasPadding
			rowH = 0
		}
		if y+g.h+atlasPadding > size {
			return nil, false
		}
		pos[g.r] = image.Pt(x, y)
		x += g.w + atlasPadding
		rowH = max(rowH, g.h)
	}
	return pos, true
}

func (f *Font) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }
