package renderer2d

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
)

// SubTexture2D is a UV rectangle inside a texture atlas. V grows downward
// from the top row of the image; the quad shader flips it for GL.
type SubTexture2D struct {
	Texture core.Texture
	U0, V0  float32 // top-left
	U1, V1  float32 // bottom-right
}

// FromPixels selects the w x h pixel rectangle at (x,y) of an atlasW x
// atlasH atlas.
func FromPixels(tex core.Texture, x, y, w, h, atlasW, atlasH int) SubTexture2D {
	sx, sy := 1/float32(atlasW), 1/float32(atlasH)
	return SubTexture2D{
		Texture: tex,
		U0:      float32(x) * sx,
		V0:      float32(y) * sy,
		U1:      float32(x+w) * sx,
		V1:      float32(y+h) * sy,
	}
}

// FromGrid selects cell (cx,cy) of a grid of cw x ch cells.
func FromGrid(tex core.Texture, cx, cy, cw, ch, atlasW, atlasH int) SubTexture2D {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch, atlasW, atlasH)
}

// Draw submits the region as a quad centred at (x,y).
func (s SubTexture2D) Draw(b Batch, x, y, w, h float32, tint colors.Color, rotationRad float32) {
	b.DrawTexturedQuadUV(x, y, w, h, s.Texture, tint, rotationRad, s.U0, s.V0, s.U1, s.V1)
}
