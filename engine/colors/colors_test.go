package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinear(t *testing.T) {
	assert.Equal(t, [4]float32{1, 0, 0, 1}, Red.Linear())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, White.Linear())

	l := Gray.WithAlpha(0.5).Linear()
	assert.InDelta(t, 0.2140, l[0], 1e-3)
	assert.Equal(t, float32(0.5), l[3])

	back := FromLinear(l)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.5, back[i], 1e-4)
	}
}

func TestScale(t *testing.T) {
	c := RGB(0.5, 0.8, 0.1).Scale(1.5)
	assert.InDelta(t, 0.75, c[0], 1e-6)
	assert.Equal(t, float32(1), c[1])
	assert.Equal(t, float32(1), c[3])
}
