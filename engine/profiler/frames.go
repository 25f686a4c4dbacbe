package profiler

import "time"

// FrameTimer keeps the last N frame durations.
type FrameTimer struct {
	ring  []time.Duration
	next  int
	count int
	sum   time.Duration
}

func NewFrameTimer(n int) *FrameTimer {
	if n <= 0 {
		n = 120
	}
	return &FrameTimer{ring: make([]time.Duration, n)}
}

func (t *FrameTimer) Add(d time.Duration) {
	if t.count == len(t.ring) {
		t.sum -= t.ring[t.next]
	} else {
		t.count++
	}
	t.ring[t.next] = d
	t.sum += d
	t.next = (t.next + 1) % len(t.ring)
}

func (t *FrameTimer) Len() int { return t.count }

func (t *FrameTimer) Last() time.Duration {
	if t.count == 0 {
		return 0
	}
	return t.ring[(t.next-1+len(t.ring))%len(t.ring)]
}

// Average is the mean over the frames currently in the window.
func (t *FrameTimer) Average() time.Duration {
	if t.count == 0 {
		return 0
	}
	return t.sum / time.Duration(t.count)
}

func (t *FrameTimer) Max() time.Duration {
	var m time.Duration
	for i := 0; i < t.count; i++ {
		m = max(m, t.ring[i])
	}
	return m
}

func (t *FrameTimer) FPS() float64 {
	avg := t.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
