package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
)

// Sprite is a solid or textured rectangle positioned by its top-left
// corner. The texture is borrowed, never owned.
type Sprite struct {
	X, Y, W, H float32
	Color      colors.Color
	Texture    core.Texture
}

func NewSprite(x, y, w, h float32, color colors.Color) *Sprite {
	return &Sprite{X: x, Y: y, W: w, H: h, Color: color}
}

func NewTexturedSprite(x, y, w, h float32, tex core.Texture) *Sprite {
	return &Sprite{X: x, Y: y, W: w, H: h, Color: colors.White, Texture: tex}
}

func (s *Sprite) Submit(b renderer2d.Batch) {
	if s.W <= 0 || s.H <= 0 {
		return
	}
	cx, cy := s.X+s.W*0.5, s.Y+s.H*0.5
	if s.Texture != nil {
		b.DrawTexturedQuad(cx, cy, s.W, s.H, s.Texture, s.Color, 0)
		return
	}
	b.DrawQuad(cx, cy, s.W, s.H, s.Color, 0)
}

// Contains reports whether (x,y) lies inside the sprite.
func (s *Sprite) Contains(x, y float32) bool {
	return x >= s.X && x < s.X+s.W && y >= s.Y && y < s.Y+s.H
}
