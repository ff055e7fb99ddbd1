package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "0 bytes"},
		{512, "512 bytes"},
		{1536, "1.5 KB"},
		{12_897_485, "12.3 MB"},
		{3 << 30, "3.0 GB"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatBytes(c.n), "FormatBytes(%d)", c.n)
	}
}

func TestRuntimeReportsHeap(t *testing.T) {
	keep := make([]byte, 1<<20)
	assert.Greater(t, Runtime{}.MemoryUsage(), uint64(0))
	assert.Greater(t, MemoryAllocs(), uint64(0))
	_ = keep[0]
}

func TestStartIsSafeWithoutInit(t *testing.T) {
	end := Start("scope")
	assert.NotNil(t, end)
	end()
}
