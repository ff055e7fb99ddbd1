package text

import "github.com/hubastard/canopy/engine/gfx/renderer2d"

// walk advances a pen through s at the font's native size. visit, when
// set, sees every known glyph with its pen x and line index. Returns the
// widest line and the line count.
func walk(font *Font, s string, visit func(g *Glyph, penX float32, line int)) (width float32, lines int) {
	var penX float32
	prev := rune(-1)
	lines = 1
	for _, r := range s {
		if r == '\n' {
			width = max(width, penX)
			penX, prev = 0, -1
			lines++
			continue
		}
		g, ok := font.Glyphs[r]
		if !ok {
			if sp, ok := font.Glyphs[' ']; ok {
				penX += sp.Advance
			}
			prev = r
			continue
		}
		if prev >= 0 && font.Face != nil {
			penX += float32(font.Face.Kern(prev, r)) / 64
		}
		if visit != nil {
			visit(&g, penX, lines-1)
		}
		penX += g.Advance
		prev = r
	}
	return max(width, penX), lines
}

// DrawText draws s with its top-left corner at (x,y). Positive Y goes
// downward (matching the 2D projection).
func DrawText(b renderer2d.Batch, font *Font, x, y float32, s string, color [4]float32) {
	if font == nil || font.Texture == nil {
		return
	}
	lineH := LineHeight(font)
	walk(font, s, func(g *Glyph, penX float32, line int) {
		if g.W <= 0 || g.H <= 0 {
			return
		}
		w, h := float32(g.W), float32(g.H)
		left := x + penX + g.BearingX
		top := y + font.Ascent + float32(line)*lineH - g.BearingY
		b.DrawTexturedQuadUV(left+w/2, top+h/2, w, h, font.Texture, color, 0, g.U0, g.V0, g.U1, g.V1)
	})
}

// MeasureText returns the extent of s rendered at size pixels.
func MeasureText(font *Font, s string, size float32) (width, height float32) {
	if font == nil {
		return 0, 0
	}
	w, lines := walk(font, s, nil)
	scale := float32(1)
	if font.SizePx > 0 && size > 0 {
		scale = size / font.SizePx
	}
	return w * scale, LineHeight(font) * float32(lines) * scale
}

// Width is the rendered width of s at the font's native size.
func Width(font *Font, s string) float32 {
	if font == nil {
		return 0
	}
	w, _ := walk(font, s, nil)
	return w
}

func LineHeight(font *Font) float32 { return font.Ascent - font.Descent + font.LineGap }
