package scratch

// Arena hands out *T values that live until the next Reset. Values are
// carved from fixed-size chunks, so pointers stay valid while the arena
// grows. Reset zeroes every value handed out and keeps the chunks for
// the next pass.
type Arena[T any] struct {
	chunks    [][]T
	chunkSize int
	n         int
}

func NewArena[T any](chunkSize int) *Arena[T] {
	if chunkSize <= 0 {
		chunkSize = 64
	}
	return &Arena[T]{chunkSize: chunkSize}
}

// Alloc returns a zeroed *T owned by the arena.
func (a *Arena[T]) Alloc() *T {
	if a.chunkSize <= 0 {
		a.chunkSize = 64
	}
	ci, off := a.n/a.chunkSize, a.n%a.chunkSize
	if ci == len(a.chunks) {
		a.chunks = append(a.chunks, make([]T, a.chunkSize))
	}
	a.n++
	return &a.chunks[ci][off]
}

// Len is the number of live values.
func (a *Arena[T]) Len() int { return a.n }

// Each visits live values in allocation order.
func (a *Arena[T]) Each(f func(*T)) {
	for i := 0; i < a.n; i++ {
		f(&a.chunks[i/a.chunkSize][i%a.chunkSize])
	}
}

// Reset releases every value. Pointers returned by Alloc must not be used
// afterwards.
func (a *Arena[T]) Reset() {
	var zero T
	for i := 0; i < a.n; i++ {
		a.chunks[i/a.chunkSize][i%a.chunkSize] = zero
	}
	a.n = 0
}
