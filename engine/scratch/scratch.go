package scratch

import (
	"strconv"
	"unicode/utf8"
)

// Buffer is a reusable byte buffer for building per-frame strings without
// going through fmt. Single-threaded: the render thread owns it.
type Buffer struct{ b []byte }

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{b: make([]byte, 0, capacity)}
}

// Reset clears the buffer length without freeing memory.
func (s *Buffer) Reset()    { s.b = s.b[:0] }
func (s *Buffer) Len() int  { return len(s.b) }
func (s *Buffer) Cap() int  { return cap(s.b) }
func (s *Buffer) Mark() int { return len(s.b) }

// StringFrom copies everything written since mark into a new string.
func (s *Buffer) StringFrom(mark int) string { return string(s.b[mark:]) }

// BytesFrom returns the bytes produced since mark. Valid until the next
// Reset.
func (s *Buffer) BytesFrom(mark int) []byte { return s.b[mark:] }

// GrowTo increases capacity (and copies current contents) if needed.
// Prefer calling this during load, not every frame.
func (s *Buffer) GrowTo(minCapacity int) {
	if minCapacity <= cap(s.b) {
		return
	}
	nb := make([]byte, len(s.b), minCapacity)
	copy(nb, s.b)
	s.b = nb
}

// ----- Chainable append primitives -----

func (s *Buffer) S(str string) *Buffer { s.b = append(s.b, str...); return s }
func (s *Buffer) C(c byte) *Buffer     { s.b = append(s.b, c); return s }
func (s *Buffer) R(r rune) *Buffer     { s.b = utf8.AppendRune(s.b, r); return s }

// I appends a base-10 integer.
func (s *Buffer) I(v int) *Buffer { s.b = strconv.AppendInt(s.b, int64(v), 10); return s }

// U appends an unsigned base-10 integer.
func (s *Buffer) U(v uint64) *Buffer { s.b = strconv.AppendUint(s.b, v, 10); return s }

// F64 appends a float with prec digits after the decimal point.
// Example: F64(3.14159, 2) -> "3.14"
func (s *Buffer) F64(v float64, prec int) *Buffer {
	s.b = strconv.AppendFloat(s.b, v, 'f', prec, 64)
	return s
}

// Pad appends n copies of byte c.
func (s *Buffer) Pad(n int, c byte) *Buffer {
	for i := 0; i < n; i++ {
		s.b = append(s.b, c)
	}
	return s
}

// ----- Package-level frame buffer -----

// The engine owns one shared buffer: Init once at startup, Reset at the
// start of every frame.
var frame = NewBuffer(1024)

// Init replaces the shared buffer with one of the given capacity.
func Init(capacity int) { frame = NewBuffer(capacity) }

// Reset clears the shared buffer. Call once per frame.
func Reset() { frame.Reset() }

// F returns the shared buffer for chained appends.
// Example: m := scratch.Mark(); scratch.F().S("HP ").I(hp); s := scratch.StringFrom(m)
func F() *Buffer { return frame }

func Mark() int                  { return frame.Mark() }
func StringFrom(mark int) string { return frame.StringFrom(mark) }
func Len() int                   { return frame.Len() }
func Cap() int                   { return frame.Cap() }
