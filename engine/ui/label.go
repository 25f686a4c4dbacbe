package ui

import (
	"strings"

	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/text"
)

type UILabel struct {
	Common[*UILabel]
	text      string
	font      *text.Font
	wrap      bool
	maxWidth  float32
	layoutStr string
}

func Label(str string) *UILabel {
	l := &UILabel{text: str}
	l.Common = NewCommon(l)
	l.base.color = DefaultTheme.Text
	return l
}

func (l *UILabel) Font(font *text.Font) *UILabel { l.font = font; return l }
func (l *UILabel) Color(c colors.Color) *UILabel { l.base.color = c; return l }
func (l *UILabel) Wrap(enabled bool) *UILabel    { l.wrap = enabled; return l }

func (l *UILabel) MaxWidth(width float32) *UILabel {
	l.maxWidth = width
	if width > 0 {
		l.wrap = true
	}
	return l
}

func (l *UILabel) Text() string { return l.text }

func (l *UILabel) fontFor(ctx *Context) *text.Font {
	if l.font != nil {
		return l.font
	}
	return ctx.Font
}

func (l *UILabel) Layout(ctx *Context, constraints Constraints) LayoutResult {
	f := l.fontFor(ctx)
	if f == nil {
		return LayoutResult{}
	}

	limit := float32(0)
	if m := resolveConstraint(constraints.Max[0]); bounded(m) {
		limit = m
	}
	if l.maxWidth > 0 && (limit == 0 || l.maxWidth < limit) {
		limit = l.maxWidth
	}
	if limit > 0 {
		limit = maxf(0, limit-l.base.padAlong(0))
	}

	w, h, laidOut := l.measure(f, limit)
	l.layoutStr = laidOut

	for a, content := range [2]float32{w, h} {
		l.base.size[a] = l.base.resolve(a, content+l.base.padAlong(a), constraints)
	}
	return LayoutResult{Size: l.base.size}
}

func (l *UILabel) Draw(ctx *Context) {
	f := l.fontFor(ctx)
	if l.layoutStr == "" || f == nil || l.base.color[3] <= 0 {
		return
	}
	x := l.base.position[0] + l.base.padding[0]
	y := l.base.position[1] + l.base.padding[1]
	f.Draw(ctx.Painter, x, y, l.layoutStr, l.base.color)
}

// measure word-wraps to maxWidth when wrapping is on.
func (l *UILabel) measure(f *text.Font, maxWidth float32) (float32, float32, string) {
	if l.text == "" {
		return 0, 0, ""
	}
	if !l.wrap || maxWidth <= 0 {
		w, h := f.Measure(l.text)
		return w, h, l.text
	}

	spaceWidth, _ := f.Measure(" ")
	var wrapped []string
	var widest float32

	for _, raw := range strings.Split(l.text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			wrapped = append(wrapped, "")
			continue
		}
		current := words[0]
		currentWidth, _ := f.Measure(current)
		for _, word := range words[1:] {
			wordWidth, _ := f.Measure(word)
			if currentWidth+spaceWidth+wordWidth > maxWidth {
				wrapped = append(wrapped, current)
				widest = maxf(widest, currentWidth)
				current, currentWidth = word, wordWidth
				continue
			}
			current += " " + word
			currentWidth += spaceWidth + wordWidth
		}
		wrapped = append(wrapped, current)
		widest = maxf(widest, currentWidth)
	}

	height := f.LineHeight() * float32(len(wrapped))
	return widest, height, strings.Join(wrapped, "\n")
}
