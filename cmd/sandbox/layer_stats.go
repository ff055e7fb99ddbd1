package main

import (
	"fmt"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/layers"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/scene"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

// statsLayer is the verbose diagnostics panel, toggled from the debug menu.
type statsLayer struct {
	*layers.Layer2D
	r2d   *renderer2d.Renderer2D
	fonts *text.FontManager
	show  *bool
	w, h  float32
}

func newStatsLayer(r2d *renderer2d.Renderer2D, fonts *text.FontManager, show *bool) *statsLayer {
	return &statsLayer{
		Layer2D: layers.NewLayer2D(r2d, scene.NewOrthoBounds(0, 1280, 720, 0, -1, 1)),
		r2d:     r2d,
		fonts:   fonts,
		show:    show,
		w:       1280,
		h:       720,
	}
}

func (l *statsLayer) OnInit(e *core.Engine) {
	l.OnResize(e, e.Window.FramebufferSize())
}

func (l *statsLayer) OnResize(e *core.Engine, w, h int) bool {
	if w > 0 && h > 0 {
		l.w, l.h = float32(w), float32(h)
		l.Camera.SetBounds(0, l.w, l.h, 0) // origin top-left
	}
	return false
}

func (l *statsLayer) OnEvent(e *core.Engine, ev core.Event) { core.HandleLayerEvent(e, l, ev) }

func (l *statsLayer) OnRender(e *core.Engine, alpha float64) {
	if !*l.show {
		return
	}
	end := profiler.Start("statsLayer.OnRender")
	defer end()

	// taken before our own scene resets the counters
	stats := l.r2d.Stats()
	heading := func(s string) *ui.UILabel { return ui.Label(s).Padding4(0, 24, 0, 0).Color(colors.Yellow) }

	l.Render(e, func(b renderer2d.Batch) {
		ui.View(
			ui.View(
				ui.Label(fmt.Sprintf("Frame: %d", e.FrameCount())),
				ui.Label(fmt.Sprintf("  %2.3f ms (%d FPS)", e.FrameTime(), e.FPS())),
				heading("2D Renderer"),
				ui.Label(fmt.Sprintf("  Draw Calls: %d", stats.DrawCalls)),
				ui.Label(fmt.Sprintf("  Quads: %d", stats.QuadCount)),
				ui.Label(fmt.Sprintf("  Vertices: %d", stats.TotalVertexCount())),
				ui.Label(fmt.Sprintf("  Textures: %d", stats.TextureCount)),
				heading("Memory"),
				ui.Label(fmt.Sprintf("  Usage: %s", profiler.FormatBytes(profiler.MemoryUsage()))),
				ui.Label(fmt.Sprintf("  Allocs: %d", profiler.MemoryAllocs())),
				ui.Label(fmt.Sprintf("  Goroutines: %d", profiler.NumGoroutine())),
				heading("CPU"),
				ui.Label(fmt.Sprintf("  Count: %d", profiler.NumCPU())),
				heading("GPU"),
				ui.Label(fmt.Sprintf("  Vendor: %s", e.Renderer.GPUVendor())),
				ui.Label(fmt.Sprintf("  Renderer: %s", e.Renderer.GPURenderer())),
				ui.Label(fmt.Sprintf("  Version: %s", e.Renderer.GPUVersion())),
			).
				FlowDirection(ui.LayoutVertical).
				Padding(24).
				BgColor(colors.Black.WithAlpha(0.5)),
		).
			Padding4(16, 240, 16, 16).
			FlowDirection(ui.LayoutVertical).
			Draw(&ui.Context{
				Viewport:    [4]float32{0, 0, l.w, l.h},
				DefaultFont: l.fonts.Get(16),
				Renderer:    b,
			})
	})
}
