//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const Enabled = true

// Init must be called once (e.g., on app start) with a capacity (#scope
// boundaries kept). Older entries are overwritten.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	ring.init(capacity)
}

// Start opens a named scope and returns the function that closes it.
//
//	defer profiler.Start("Layer2D.OnRender")()
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := names.intern(name)
	begin := time.Now().UnixNano()
	ring.push(mark{at: begin, id: id, open: true})
	return func() {
		end := max(time.Now().UnixNano(), begin)
		ring.push(mark{at: end, id: id})
	}
}

// OpenProfilerGraph writes the captured scopes as a speedscope file in the
// temp dir and launches the speedscope viewer on it.
func OpenProfilerGraph() (string, error) {
	marks := ring.snapshot()
	if len(marks) == 0 {
		return "", errors.New("profiler: no scopes recorded")
	}
	path := filepath.Join(os.TempDir(), "canopy.speedscope.json")
	if err := writeSpeedscope(path, marks, names.all()); err != nil {
		return "", fmt.Errorf("profiler: write %s: %w", path, err)
	}
	if err := exec.Command("speedscope", path).Start(); err != nil {
		log.Printf("profiler: launch speedscope: %v", err)
	}
	return path, nil
}

// ---------- scope ring ----------

type mark struct {
	at   int64 // unix nanos
	id   int
	open bool
}

type markRing struct {
	ready atomic.Bool
	size  uint64
	next  atomic.Uint64
	buf   []mark
}

func (r *markRing) init(capacity int) {
	r.size = uint64(capacity)
	r.buf = make([]mark, r.size)
	r.next.Store(0)
	r.ready.Store(true)
}

func (r *markRing) push(m mark) {
	i := r.next.Add(1) - 1
	r.buf[i%r.size] = m
}

// snapshot returns the retained marks in write order.
func (r *markRing) snapshot() []mark {
	n := r.next.Load()
	first := uint64(0)
	if n > r.size {
		first = n - r.size
	}
	out := make([]mark, 0, n-first)
	for k := first; k < n; k++ {
		out = append(out, r.buf[k%r.size])
	}
	return out
}

var ring markRing

// ---------- scope names ----------

type interner struct {
	mu    sync.Mutex
	list  []string
	index map[string]int
}

func (in *interner) intern(name string) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[name]; ok {
		return id
	}
	if in.index == nil {
		in.index = make(map[string]int)
	}
	id := len(in.list)
	in.index[name] = id
	in.list = append(in.list, name)
	return id
}

func (in *interner) all() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]string(nil), in.list...)
}

var names interner

// ---------- speedscope (evented profile) ----------

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
	At    int64  `json:"at"`   // µs since first mark
	Frame int    `json:"frame"`
}

func writeSpeedscope(path string, marks []mark, frameNames []string) error {
	frames := make([]ssFrame, len(frameNames))
	for i, n := range frameNames {
		frames[i] = ssFrame{Name: n}
	}

	base := marks[0].at
	var last int64
	events := make([]ssEvent, 0, len(marks))
	open := make([]int, 0, 64)
	for _, m := range marks {
		at := max((m.at-base)/1000, last) // keep µs monotonic
		if m.open {
			open = append(open, m.id)
		} else {
			// a close whose open was overwritten by the ring is dropped
			if len(open) == 0 || open[len(open)-1] != m.id {
				continue
			}
			open = open[:len(open)-1]
		}
		typ := "C"
		if m.open {
			typ = "O"
		}
		events = append(events, ssEvent{Type: typ, At: at, Frame: m.id})
		last = at
	}
	// speedscope wants balanced events
	for i := len(open) - 1; i >= 0; i-- {
		events = append(events, ssEvent{Type: "C", At: last, Frame: open[i]})
	}
	if len(events) == 0 {
		return errors.New("no balanced scopes")
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "canopy frame scopes",
			Unit:     "microseconds",
			EndValue: last,
			Events:   events,
		}},
		Exporter: "canopy-profiler",
		Name:     "canopy capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
