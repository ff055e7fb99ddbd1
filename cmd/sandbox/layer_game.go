package main

import (
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/canopy/engine/assets"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/debug"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/layers"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/scene"
)

const spriteSize = 32

// gameLayer is a camera-driven 2D world with one spinning player sprite.
type gameLayer struct {
	*layers.Layer2D
	ctrl   *scene.OrthoController2D
	tex    core.Texture
	player renderer2d.SubTexture2D
	t      float32
}

func newGameLayer(e *core.Engine, r2d *renderer2d.Renderer2D, sprite string) (*gameLayer, error) {
	w, h := e.Window.FramebufferSize()
	cam := scene.NewOrtho2D(w, h)
	cam.SetZoom(4)

	pw, ph, pixels, err := loadSprite(sprite)
	if err != nil {
		return nil, err
	}
	tex, err := e.Renderer.CreateTexture(core.TextureDesc{
		Width:     pw,
		Height:    ph,
		Format:    core.TextureRGBA8,
		Pixels:    pixels,
		MinFilter: "linear",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		return nil, err
	}

	return &gameLayer{
		Layer2D: layers.NewLayer2D(r2d, cam),
		ctrl:    scene.NewOrthoController2D(cam),
		tex:     tex,
		player:  renderer2d.FromPixels(tex, 0, 0, min(pw, spriteSize), min(ph, spriteSize), pw, ph),
	}, nil
}

// loadSprite reads path as PNG, or generates a checkerboard when path is
// empty.
func loadSprite(path string) (int, int, []byte, error) {
	if path == "" {
		return spriteSize, spriteSize, checkerPixels(spriteSize, 4), nil
	}
	return assets.LoadPNG(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

func checkerPixels(size, cell int) []byte {
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := byte(60)
			if (x/cell+y/cell)%2 == 0 {
				c = 230
			}
			i := (y*size + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c, c/2+100, 90, 255
		}
	}
	return pix
}

func (l *gameLayer) OnUpdate(e *core.Engine, dt float64) {
	l.ctrl.Update(e, float32(dt))
	l.t += float32(dt)
}

func (l *gameLayer) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("gameLayer.OnRender")
	defer end()

	l.Render(e, func(b renderer2d.Batch) {
		l.player.Draw(b, 0, 0, spriteSize, spriteSize, colors.White, l.t)
	})

	// sprite sheet preview, in overlay pixels
	debug.DrawTexture(l.tex, mgl32.Vec2{16, 200}, mgl32.Vec2{64, 64})
}

func (l *gameLayer) OnEvent(e *core.Engine, ev core.Event) {
	d := core.NewEventDispatcher(ev)
	core.Dispatch(d, l.onKeyPressed)
	core.Dispatch(d, func(s *core.MouseScrolledEvent) bool { return l.ctrl.OnEvent(s) })
	core.HandleLayerEvent(e, l, ev)
}

func (l *gameLayer) onKeyPressed(k *core.KeyPressedEvent) bool {
	if k.Key == core.KeyP && k.Mods.Has(core.ModCtrl) && !k.Repeat {
		dumpProfile()
		return true
	}
	return false
}

func (l *gameLayer) OnResize(e *core.Engine, w, h int) bool {
	l.Camera.SetViewportPixels(w, h)
	return false
}
