package material

import (
	"encoding/binary"
	"math"
)

// std140 appends values with GLSL std140 alignment rules for the scalar and
// vec4 members our blocks use.
type std140 struct {
	start int
	buf   []byte
}

func newStd140(dst []byte) *std140 { return &std140{start: len(dst), buf: dst} }

func (w *std140) align(n int) {
	for (len(w.buf)-w.start)%n != 0 {
		w.buf = append(w.buf, 0)
	}
}

func (w *std140) float(f float32) {
	w.align(4)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(f))
}

func (w *std140) vec4(v [4]float32) {
	w.align(16)
	for _, f := range v {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(f))
	}
}

// bytes pads the block to its base alignment (16, the vec4 rule) and returns it.
func (w *std140) bytes() []byte {
	w.align(16)
	return w.buf
}
