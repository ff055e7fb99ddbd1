package profiler

import (
	"runtime"
	"runtime/metrics"
	"strconv"
)

const (
	metricHeapObjects = "/memory/classes/heap/objects:bytes"
	metricHeapAllocs  = "/gc/heap/allocs:objects"
)

// Runtime reports Go heap usage. It is the engine's memory reporting
// collaborator.
type Runtime struct{}

func (Runtime) MemoryUsage() uint64 { return MemoryUsage() }

// MemoryUsage returns the bytes held by live and not-yet-swept heap objects.
// Unlike runtime.ReadMemStats it does not stop the world.
func MemoryUsage() uint64 { return readUint64(metricHeapObjects) }

// MemoryAllocs returns the cumulative count of heap allocations.
func MemoryAllocs() uint64 { return readUint64(metricHeapAllocs) }

func NumGoroutine() int { return runtime.NumGoroutine() }

func NumCPU() int { return runtime.NumCPU() }

func readUint64(name string) uint64 {
	s := [1]metrics.Sample{{Name: name}}
	metrics.Read(s[:])
	if s[0].Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return s[0].Value.Uint64()
}

// FormatBytes renders a byte count with one decimal, e.g. "12.3 MB".
func FormatBytes(n uint64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	var b []byte
	switch {
	case n >= gb:
		b = append(strconv.AppendFloat(b, float64(n)/gb, 'f', 1, 64), " GB"...)
	case n >= mb:
		b = append(strconv.AppendFloat(b, float64(n)/mb, 'f', 1, 64), " MB"...)
	case n >= kb:
		b = append(strconv.AppendFloat(b, float64(n)/kb, 'f', 1, 64), " KB"...)
	default:
		b = append(strconv.AppendUint(b, n, 10), " bytes"...)
	}
	return string(b)
}
