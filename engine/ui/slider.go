package ui

import (
	"fmt"

	"github.com/chewxy/math32"
)

const sliderMinTrack = 80

// UISlider edits a number by dragging along a horizontal track.
type UISlider struct {
	Common[*UISlider]
	id       any
	label    string
	get      func() float32
	set      func(float32)
	min, max float32
	step     float32
	format   string
	labelW   float32
	onChange func(float32)

	track Base // laid out track rectangle
}

// Slider binds v, which also identifies the widget across frames.
func Slider(label string, v *float32, min, max float32) *UISlider {
	s := newSlider(v, label, min, max)
	s.get = func() float32 { return *v }
	s.set = func(x float32) { *v = x }
	return s
}

// SliderUint edits an integer in whole steps.
func SliderUint(label string, v *uint32, min, max uint32) *UISlider {
	s := newSlider(v, label, float32(min), float32(max))
	s.get = func() float32 { return float32(*v) }
	s.set = func(x float32) { *v = uint32(x) }
	s.step = 1
	s.format = "%.0f"
	return s
}

func newSlider(id any, label string, min, max float32) *UISlider {
	s := &UISlider{id: id, label: label, min: min, max: max, format: "%.2f"}
	s.Common = NewCommon(s)
	s.base.mode[0] = SizeModeExpand
	s.base.padding = [4]float32{0, 2, 0, 2}
	return s
}

func (s *UISlider) Step(step float32) *UISlider         { s.step = step; return s }
func (s *UISlider) Format(f string) *UISlider           { s.format = f; return s }
func (s *UISlider) LabelWidth(w float32) *UISlider      { s.labelW = w; return s }
func (s *UISlider) OnChange(fn func(float32)) *UISlider { s.onChange = fn; return s }
func (s *UISlider) Track() (x, y, w, h float32)         { return s.track.position[0], s.track.position[1], s.track.size[0], s.track.size[1] }
func (s *UISlider) Value() float32                      { return s.get() }

// sliderValue maps a cursor x over the track to a value in [min,max],
// snapped to step when step > 0.
func sliderValue(mx, trackX, trackW, min, max, step float32) float32 {
	if trackW <= 0 || max <= min {
		return min
	}
	t := clamp((mx-trackX)/trackW, 0, 1)
	v := min + t*(max-min)
	if step > 0 {
		v = min + math32.Floor((v-min)/step+0.5)*step
	}
	return clamp(v, min, max)
}

func sliderFraction(v, min, max float32) float32 {
	if max <= min {
		return 0
	}
	return clamp((v-min)/(max-min), 0, 1)
}

func (s *UISlider) valueText(v float32) string { return fmt.Sprintf(s.format, v) }

func (s *UISlider) columns(ctx *Context) (labelW, valueW float32) {
	labelW = s.labelW
	if labelW == 0 && s.label != "" {
		labelW, _ = ctx.Font.Measure(s.label)
		labelW += 8
	}
	// widest of the two ends keeps the track from jittering while dragging
	a, _ := ctx.Font.Measure(s.valueText(s.min))
	b, _ := ctx.Font.Measure(s.valueText(s.max))
	return labelW, maxf(a, b) + 8
}

func (s *UISlider) Layout(ctx *Context, constraints Constraints) LayoutResult {
	labelW, valueW := s.columns(ctx)
	content := [2]float32{labelW + sliderMinTrack + valueW, ctx.Font.LineHeight()}
	for a := 0; a < 2; a++ {
		s.base.size[a] = s.base.resolve(a, content[a]+s.base.padAlong(a), constraints)
	}
	return LayoutResult{Size: s.base.size}
}

func (s *UISlider) Place(ctx *Context, x, y, w, h float32) {
	s.base.position = [2]float32{x, y}
	s.base.size = [2]float32{w, h}
	labelW, valueW := s.columns(ctx)
	s.track.position = [2]float32{x + labelW, y + s.base.padding[1]}
	s.track.size = [2]float32{maxf(0, w-labelW-valueW), maxf(0, h-s.base.padAlong(1))}
}

func (s *UISlider) Draw(ctx *Context) {
	th := ctx.Theme
	it := ctx.interact(s.id, &s.track)
	tx, ty, tw, thh := s.Track()

	if it.held {
		mx, _ := ctx.mouse()
		if v := sliderValue(mx, tx, tw, s.min, s.max, s.step); v != s.get() {
			s.set(v)
			if s.onChange != nil {
				s.onChange(v)
			}
		}
	}
	v := s.get()

	bg := th.Widget
	if it.hovered || it.held {
		bg = th.WidgetHot
	}
	ctx.Painter.DrawRect(tx, ty, tw, thh, bg)
	frac := sliderFraction(v, s.min, s.max)
	ctx.Painter.DrawRect(tx, ty, tw*frac, thh, th.Accent.Scale(0.7))
	knob := th.SliderKnob
	ctx.Painter.DrawRect(tx+clamp(tw*frac-knob*0.5, 0, maxf(0, tw-knob)), ty, knob, thh, th.Accent)

	if s.label != "" {
		ctx.Font.Draw(ctx.Painter, s.base.position[0], ty, s.label, th.TextDim)
	}
	ctx.Font.Draw(ctx.Painter, tx+tw+8, ty, s.valueText(v), th.Text)
}
