// Package debug implements the in-game diagnostics overlay and its menu.
//
// The overlay is an ordinary layer: push it last so it draws on top and
// sees events first.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/gfx/renderer3d"
	"github.com/hubastard/canopy/engine/text"
)

// AppStats is the frame clock the overlay samples.
type AppStats interface {
	FPS() int
	FrameTime() float64 // milliseconds
}

// MemoryReporter reports bytes currently in use.
type MemoryReporter interface {
	MemoryUsage() uint64
}

type FontSource interface {
	Get(size float32) *text.Font
}

// StatsSource hands out the render-pass timings of the current frame.
// Stats may return nil when nothing was measured.
type StatsSource interface {
	Stats() *renderer3d.Stats
}

// Deps are the overlay's collaborators. Any of them may be nil; the
// labels that depend on a missing one simply stop updating.
type Deps struct {
	App    AppStats
	Memory MemoryReporter
	Fonts  FontSource
	Render StatsSource
	Menu   *Menu
}

var active *Overlay

// Active returns the overlay currently pushed on a layer stack, if any.
func Active() *Overlay { return active }

// DrawSprite draws r on the active overlay for the current frame only.
func DrawSprite(r renderer2d.Renderable) {
	if active != nil {
		active.DrawSprite(r)
	}
}

// DrawTexture draws tex on the active overlay for the current frame only.
// pos is the top-left corner in pixels.
func DrawTexture(tex core.Texture, pos, size mgl32.Vec2) {
	if active != nil {
		active.DrawTexture(tex, pos, size)
	}
}
