package text

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/hubastard/canopy/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Font is a glyph atlas rasterised at one pixel size.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Texture                  core.Texture
	AtlasW, AtlasH           int
	Face                     font.Face
	closeFace                func()
}

func (fa *Font) Close() {
	if fa != nil && fa.closeFace != nil {
		fa.closeFace()
		fa.closeFace = nil
	}
}

// LoadTTF reads a TrueType/OpenType file and builds its atlas.
func LoadTTF(r core.Renderer, path string, sizePx float32) (*Font, error) {
	ttfData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return ParseTTF(r, ttfData, sizePx)
}

// Atlas bounds and the gap kept around every glyph.
const (
	atlasMinSize = 512
	atlasMaxSize = 4096
	glyphPadding = 20
)

// glyphMetrics is one rune measured at the face's size, before packing.
type glyphMetrics struct {
	r      rune
	w, h   int
	adv    float32
	bx, by float32
}

// ParseTTF builds a monochrome (white) glyph atlas (alpha coverage) and
// uploads it as an RGBA texture.
func ParseTTF(r core.Renderer, ttfData []byte, sizePx float32) (*Font, error) {
	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	metrics := measureGlyphs(face)
	size, pos, err := packShelves(metrics)
	if err != nil {
		_ = face.Close()
		return nil, err
	}
	pix, glyphs := rasterize(face, metrics, pos, size)

	tex, err := r.CreateTexture(core.TextureDesc{
		Width: size, Height: size,
		Format:    core.TextureRGBA8,
		Pixels:    pix.Pix,
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("upload atlas: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	return &Font{
		SizePx:    sizePx,
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   float32(m.Height.Round()) - ascent + descent,
		Glyphs:    glyphs,
		Texture:   tex,
		AtlasW:    size,
		AtlasH:    size,
		Face:      face,
		closeFace: func() { _ = face.Close() },
	}, nil
}

// measureGlyphs covers printable Latin-1; runes the face lacks are skipped.
func measureGlyphs(face font.Face) []glyphMetrics {
	out := make([]glyphMetrics, 0, 224)
	for ch := rune(32); ch <= 255; ch++ {
		br, adv, ok := face.GlyphBounds(ch)
		if !ok {
			continue
		}
		out = append(out, glyphMetrics{
			r:   ch,
			w:   (br.Max.X - br.Min.X).Round(),
			h:   (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()), // baseline to top
		})
	}
	return out
}

// packShelves lays the non-empty glyphs out in rows, doubling the square
// atlas from atlasMinSize until everything fits.
func packShelves(metrics []glyphMetrics) (int, map[rune]image.Point, error) {
	for size := atlasMinSize; size <= atlasMaxSize; size *= 2 {
		if pos, ok := tryPack(metrics, size); ok {
			return size, pos, nil
		}
	}
	return 0, nil, fmt.Errorf("font atlas too large (>%d)", atlasMaxSize)
}

func tryPack(metrics []glyphMetrics, size int) (map[rune]image.Point, bool) {
	pos := make(map[rune]image.Point, len(metrics))
	x, y, rowH := glyphPadding, glyphPadding, 0
	for _, g := range metrics {
		if g.w == 0 || g.h == 0 {
			continue
		}
		if x+g.w+glyphPadding > size {
			x, y, rowH = glyphPadding, y+rowH+glyphPadding, 0
		}
		if x+g.w+glyphPadding > size || y+g.h+glyphPadding > size {
			return nil, false
		}
		pos[g.r] = image.Pt(x, y)
		x += g.w + glyphPadding
		rowH = max(rowH, g.h)
	}
	return pos, true
}

// rasterize draws every packed glyph white on transparent and returns the
// glyph table with atlas UVs.
func rasterize(face font.Face, metrics []glyphMetrics, pos map[rune]image.Point, size int) (*image.RGBA, map[rune]Glyph) {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	inv := 1 / float32(size)
	glyphs := make(map[rune]Glyph, len(metrics))
	for _, g := range metrics {
		glyph := Glyph{Rune: g.r, Advance: g.adv, BearingX: g.bx, BearingY: g.by, W: g.w, H: g.h}
		if p, ok := pos[g.r]; ok {
			// the drawer's dot sits on the baseline, left of the bearing
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			glyph.U0, glyph.V0 = float32(p.X)*inv, float32(p.Y)*inv
			glyph.U1, glyph.V1 = float32(p.X+g.w)*inv, float32(p.Y+g.h)*inv
		}
		glyphs[g.r] = glyph
	}
	return dst, glyphs
}

// Monospace returns a metrics-only font: every printable Latin-1 rune
// advances by advance pixels and has no bitmap. It measures text exactly
// like a real font but draws nothing, which suits headless runs.
func Monospace(sizePx, advance float32) *Font {
	glyphs := make(map[rune]Glyph, 224)
	for ch := rune(32); ch <= 255; ch++ {
		glyphs[ch] = Glyph{Rune: ch, Advance: advance}
	}
	return &Font{
		SizePx:  sizePx,
		Ascent:  sizePx * 0.8,
		Descent: -sizePx * 0.2,
		Glyphs:  glyphs,
	}
}
