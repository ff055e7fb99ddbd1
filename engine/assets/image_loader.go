package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
)

// LoadPNG returns width, height, and tightly packed RGBA8 pixels
// (row-major, top-left origin) for the named file in fsys.
func LoadPNG(fsys fs.FS, name string) (w, h int, rgba []byte, err error) {
	f, err := fsys.Open(name)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %q: %w", name, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode png %q: %w", name, err)
	}

	m := toRGBA(img)
	w, h = m.Bounds().Dx(), m.Bounds().Dy()

	// Repack in tight rows (stride == 4*w)
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], m.Pix[y*m.Stride:y*m.Stride+w*4])
	}
	return w, h, out, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
