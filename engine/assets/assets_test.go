package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(2, 1, color.NRGBA{B: 255, A: 255})

	fsys := fstest.MapFS{"sprite.png": {Data: encodePNG(t, src)}}
	w, h, pix, err := LoadPNG(fsys, "sprite.png")
	require.NoError(t, err)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	require.Len(t, pix, 3*2*4)

	assert.Equal(t, []byte{255, 0, 0, 255}, pix[0:4])
	last := (1*3 + 2) * 4
	assert.Equal(t, []byte{0, 0, 255, 255}, pix[last:last+4])
}

func TestLoadPNGErrors(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("not a png")}}

	_, _, _, err := LoadPNG(fsys, "missing.png")
	assert.ErrorContains(t, err, "open")

	_, _, _, err = LoadPNG(fsys, "bad.png")
	assert.ErrorContains(t, err, "decode png")
}

func TestLoadShaderNullTerminates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.vert": {Data: []byte("void main(){}")},
		"b.frag": {Data: []byte("void main(){}\x00")},
	}
	a, err := LoadShader(fsys, "a.vert")
	require.NoError(t, err)
	assert.Equal(t, "void main(){}\x00", a)

	b, err := LoadShader(fsys, "b.frag")
	require.NoError(t, err)
	assert.Equal(t, "void main(){}\x00", b, "no double terminator")

	_, err = LoadShader(fsys, "nope")
	assert.Error(t, err)
}
