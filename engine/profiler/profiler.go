// Package profiler records named scope timings, frame times and runtime
// memory figures for the debug overlay.
package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// -------- scopes --------

// Init enables scope recording with room for capacity open/close events.
// Until Init is called Start is a no-op.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	evrb.init(capacity)
}

func Enabled() bool { return evrb.ready.Load() }

// Start begins a scope and returns the func that ends it.
func Start(name string) func() {
	if !evrb.ready.Load() {
		return func() {}
	}
	id := intern(name)
	start := time.Now()
	evrb.push(evEntry{AtNS: start.UnixNano(), FrameID: id, Open: true})
	return func() {
		end := time.Now()
		d := end.Sub(start)
		if d < 0 {
			d = 0
		}
		evrb.push(evEntry{AtNS: start.UnixNano() + int64(d), FrameID: id, Open: false})
		accumulate(id, d)
	}
}

// ScopeStat aggregates every completed run of one scope since the last Reset.
type ScopeStat struct {
	Name  string
	Calls int
	Total time.Duration
	Max   time.Duration
}

func (s ScopeStat) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// Summary returns the scope stats ordered by total time, longest first.
func Summary() []ScopeStat {
	mu.Lock()
	defer mu.Unlock()
	out := make([]ScopeStat, 0, len(stats))
	for id, s := range stats {
		st := *s
		st.Name = frames[id]
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset drops the recorded events and scope stats. Names stay interned.
func Reset() {
	mu.Lock()
	clear(stats)
	mu.Unlock()
	if evrb.ready.Load() {
		evrb.write.Store(0)
	}
}

// ---------- event ring ----------

type evEntry struct {
	AtNS    int64
	FrameID int
	Open    bool
}

type evRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []evEntry
}

func (r *evRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.evs = make([]evEntry, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *evRing) push(e evEntry) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot keeps write order; the oldest events are lost once the ring wraps.
func (r *evRing) snapshot() []evEntry {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]evEntry, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var evrb evRing

// ---------- names and totals ----------

var (
	mu     sync.Mutex
	frames []string
	index  = map[string]int{}
	stats  = map[int]*ScopeStat{}
)

func intern(name string) int {
	mu.Lock()
	defer mu.Unlock()
	if id, ok := index[name]; ok {
		return id
	}
	id := len(frames)
	index[name] = id
	frames = append(frames, name)
	return id
}

func accumulate(id int, d time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	s, ok := stats[id]
	if !ok {
		s = &ScopeStat{}
		stats[id] = s
	}
	s.Calls++
	s.Total += d
	if d > s.Max {
		s.Max = d
	}
}

// -------- runtime --------

type Memory struct {
	Alloc      uint64 // bytes of live heap objects
	Mallocs    uint64
	NumGC      uint32
	Goroutines int
	CPUs       int
}

func ReadMemory() Memory {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Memory{
		Alloc:      m.Alloc,
		Mallocs:    m.Mallocs,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
	}
}

// -------- speedscope export --------

var errNoEvents = errors.New("profiler: no events recorded")

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since first event
	Frame int    `json:"frame"`
}

// WriteSpeedscope writes the recorded scopes as an evented speedscope
// profile (https://www.speedscope.app).
func WriteSpeedscope(path string) error {
	evs := evrb.snapshot()
	if len(evs) == 0 {
		return errNoEvents
	}
	mu.Lock()
	fs := make([]ssFrame, len(frames))
	for i, name := range frames {
		fs[i] = ssFrame{Name: name}
	}
	mu.Unlock()

	out, endUS := balance(evs)
	if len(out) == 0 {
		return errNoEvents
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "groveshade",
			Unit:     "microseconds",
			EndValue: endUS,
			Events:   out,
		}},
		Exporter: "groveshade-profiler",
		Name:     "groveshade capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("speedscope: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("speedscope: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("speedscope: %w", err)
	}
	return os.Rename(tmp, path)
}

// balance converts ring events to speedscope events: closes that do not
// match the innermost open scope are dropped and scopes still open at the
// end are closed at the last timestamp.
func balance(evs []evEntry) ([]ssEvent, int64) {
	base := evs[0].AtNS
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)
	lastUS, endUS := int64(0), int64(0)

	for _, e := range evs {
		atUS := max((e.AtNS-base)/1000, lastUS)
		if e.Open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.FrameID})
			stack = append(stack, e.FrameID)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.FrameID {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.FrameID})
		}
		lastUS = atUS
		endUS = max(endUS, atUS)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}
	return out, endUS
}
