package profiler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameTimerAverage(t *testing.T) {
	ft := NewFrameTimer(4)
	assert.Zero(t, ft.Average())
	assert.Zero(t, ft.FPS())

	for _, ms := range []int{10, 20, 30} {
		ft.Add(time.Duration(ms) * time.Millisecond)
	}
	assert.Equal(t, 3, ft.Len())
	assert.Equal(t, 20*time.Millisecond, ft.Average())
	assert.Equal(t, 30*time.Millisecond, ft.Last())
	assert.InDelta(t, 50, ft.FPS(), 1e-9)

	// window slides: 10 falls out
	ft.Add(40 * time.Millisecond)
	ft.Add(50 * time.Millisecond)
	assert.Equal(t, 4, ft.Len())
	assert.Equal(t, 35*time.Millisecond, ft.Average())
	assert.Equal(t, 50*time.Millisecond, ft.Max())
	assert.Equal(t, 50*time.Millisecond, ft.Last())
}

func TestScopesAndSpeedscope(t *testing.T) {
	Init(64)
	Reset()
	require.True(t, Enabled())

	for i := 0; i < 3; i++ {
		outer := Start("frame")
		inner := Start("render")
		time.Sleep(time.Millisecond)
		inner()
		outer()
	}
	open := Start("unfinished")
	_ = open

	sum := Summary()
	require.Len(t, sum, 2)
	assert.Equal(t, "frame", sum[0].Name)
	assert.Equal(t, 3, sum[0].Calls)
	assert.GreaterOrEqual(t, sum[0].Total, sum[1].Total)
	assert.GreaterOrEqual(t, sum[1].Mean(), time.Millisecond)
	assert.GreaterOrEqual(t, sum[1].Max, sum[1].Mean())

	path := filepath.Join(t.TempDir(), "capture.speedscope.json")
	require.NoError(t, WriteSpeedscope(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc ssFile
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Profiles, 1)
	evs := doc.Profiles[0].Events
	// 3 x (2 opens + 2 closes) + the unfinished scope opened and auto-closed
	assert.Len(t, evs, 14)
	depth := 0
	for _, e := range evs {
		if e.Type == "O" {
			depth++
		} else {
			depth--
		}
		assert.GreaterOrEqual(t, depth, 0)
	}
	assert.Zero(t, depth)

	Reset()
	assert.Empty(t, Summary())
	assert.ErrorIs(t, WriteSpeedscope(path), errNoEvents)
}

func TestBalanceDropsStrayClose(t *testing.T) {
	evs := []evEntry{
		{AtNS: 0, FrameID: 1, Open: false},
		{AtNS: 1000, FrameID: 2, Open: true},
		{AtNS: 500, FrameID: 2, Open: false},
	}
	out, end := balance(evs)
	require.Len(t, out, 2)
	assert.Equal(t, "O", out[0].Type)
	assert.Equal(t, int64(1), out[0].At)
	// time never runs backwards
	assert.Equal(t, int64(1), out[1].At)
	assert.Equal(t, int64(1), end)
}

func TestReadMemory(t *testing.T) {
	m := ReadMemory()
	assert.Positive(t, m.Alloc)
	assert.Positive(t, m.Goroutines)
	assert.Positive(t, m.CPUs)
}
