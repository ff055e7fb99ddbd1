package debug

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/layers"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/scene"
	"github.com/hubastard/canopy/engine/scratch"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

// Layout in pixels, origin top-left.
const (
	edgePadding = 16

	largeFont = 24
	smallFont = 16

	fpsY       = 10
	frameTimeY = 38
	memoryY    = 66

	statsPanelY = 120
	statsPanelW = 200
	statsPanelH = 120
	statsTitleY = statsPanelY + 10
	meshTimeY   = statsPanelY + 42
	postTimeY   = statsPanelY + 66
	totalTimeY  = statsPanelY + 90
)

var statsPanelColor = colors.Hex(0x7f7f7f7f)

// Overlay is the debug layer. It shows frame rate, frame time, memory use
// and render-pass timings in the top right corner, toggles the debug menu
// with Ctrl+Tab and draws one-frame sprites queued through DrawSprite and
// DrawTexture.
type Overlay struct {
	*layers.Layer2D

	deps          Deps
	width, height float32
	margin        float32 // right edge labels align to

	fps, frameTime, memory        *ui.UILabel
	statsTitle                    *ui.UILabel
	meshTime, postTime, totalTime *ui.UILabel
	statsPanel                    *ui.Sprite

	queued  []renderer2d.Renderable
	sprites *scratch.Arena[ui.Sprite]
}

func NewOverlay(r layers.Renderer2D, deps Deps) *Overlay {
	o := &Overlay{
		Layer2D: layers.NewLayer2D(r, scene.NewOrthoBounds(0, 1280, 720, 0, -1, 1)),
		deps:    deps,
		sprites: scratch.NewArena[ui.Sprite](32),
	}
	o.resize(1280, 720)
	return o
}

func (o *Overlay) Menu() *Menu { return o.deps.Menu }

// SetStatsSource replaces the render timing source; nil freezes the
// render-stat labels.
func (o *Overlay) SetStatsSource(s StatsSource) { o.deps.Render = s }

// Margin is the x coordinate right-aligned labels end at.
func (o *Overlay) Margin() float32 { return o.margin }

func (o *Overlay) FPSLabel() *ui.UILabel       { return o.fps }
func (o *Overlay) FrameTimeLabel() *ui.UILabel { return o.frameTime }
func (o *Overlay) MemoryLabel() *ui.UILabel    { return o.memory }

// RenderStatLabels returns the mesh, post-effects and total labels.
func (o *Overlay) RenderStatLabels() [3]*ui.UILabel {
	return [3]*ui.UILabel{o.meshTime, o.postTime, o.totalTime}
}

// TransientCount is the number of one-frame renderables waiting for the
// next OnRender.
func (o *Overlay) TransientCount() int { return len(o.queued) + o.sprites.Len() }

func (o *Overlay) font(size float32) *text.Font {
	if o.deps.Fonts == nil {
		return nil
	}
	return o.deps.Fonts.Get(size)
}

func (o *Overlay) OnInit(e *core.Engine) {
	o.SetRenderTarget(core.RenderTargetScreen)

	large, small := o.font(largeFont), o.font(smallFont)
	o.fps = ui.Label("").Font(large)
	o.frameTime = ui.Label("").Font(large)
	o.memory = ui.Label("").Font(large)

	o.statsPanel = ui.NewSprite(0, statsPanelY, statsPanelW, statsPanelH, statsPanelColor)
	o.statsTitle = ui.Label("Render Stats").Font(small)
	o.meshTime = ui.Label("").Font(small)
	o.postTime = ui.Label("").Font(small)
	o.totalTime = ui.Label("").Font(small)

	o.Add(o.statsPanel)
	o.Add(o.statsTitle)
	o.Add(o.meshTime)
	o.Add(o.postTime)
	o.Add(o.totalTime)
	o.Add(o.fps)
	o.Add(o.memory)
	o.Add(o.frameTime)

	if e.Window != nil {
		w, h := e.Window.FramebufferSize()
		o.resize(w, h)
	} else {
		o.layout()
	}
	active = o
}

func (o *Overlay) OnTick(e *core.Engine) {
	if o.deps.App != nil {
		m := scratch.Mark()
		scratch.F().I(o.deps.App.FPS()).S(" fps")
		o.setRight(o.fps, scratch.StringFrom(m))
	}
	if o.deps.Memory != nil {
		o.setRight(o.memory, profiler.FormatBytes(o.deps.Memory.MemoryUsage()))
	}
}

func (o *Overlay) OnUpdate(e *core.Engine, dt float64) {
	if o.deps.Menu != nil {
		o.deps.Menu.OnUpdate()
	}
	if o.deps.App != nil {
		m := scratch.Mark()
		scratch.F().F64(o.deps.App.FrameTime(), 1).S(" ms")
		o.setRight(o.frameTime, scratch.StringFrom(m))
	}
	if o.deps.Render == nil {
		return
	}
	src := o.deps.Render.Stats()
	if src == nil {
		return
	}
	stats := *src
	o.setRight(o.meshTime, timing("Meshes: ", stats.MeshRenderTime))
	o.setRight(o.postTime, timing("Post FX: ", stats.PostEffectsRenderTime))
	o.setRight(o.totalTime, timing("Total: ", stats.TotalRenderTime))
}

func timing(prefix string, ms float64) string {
	m := scratch.Mark()
	scratch.F().S(prefix).F64(ms, 1).S("ms")
	return scratch.StringFrom(m)
}

func (o *Overlay) setRight(l *ui.UILabel, s string) {
	if l == nil {
		return
	}
	l.SetText(s)
	l.RightAlign(o.margin)
}

func (o *Overlay) OnEvent(e *core.Engine, ev core.Event) {
	d := core.NewEventDispatcher(ev)
	core.Dispatch(d, o.onKeyPressed)
	core.Dispatch(d, o.onMousePressed)
	core.Dispatch(d, o.onMouseReleased)
	core.Dispatch(d, o.onMouseMoved)
	core.HandleLayerEvent(e, o, ev)
}

func (o *Overlay) onKeyPressed(ev *core.KeyPressedEvent) bool {
	if ev.Repeat || o.deps.Menu == nil {
		return false
	}
	if ev.Mods == core.ModCtrl && ev.Key == core.KeyTab {
		o.deps.Menu.Toggle()
		return true
	}
	return false
}

func (o *Overlay) onMousePressed(ev *core.MousePressedEvent) bool {
	m := o.deps.Menu
	return m != nil && m.Visible() && m.OnMousePressed(ev)
}

func (o *Overlay) onMouseReleased(ev *core.MouseReleasedEvent) bool {
	m := o.deps.Menu
	return m != nil && m.Visible() && m.OnMouseReleased(ev)
}

func (o *Overlay) onMouseMoved(*core.MouseMovedEvent) bool { return false }

// OnResize keeps the overlay in pixel space and lets the resize through.
func (o *Overlay) OnResize(e *core.Engine, w, h int) bool {
	o.resize(w, h)
	return false
}

func (o *Overlay) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	o.width, o.height = float32(w), float32(h)
	o.margin = o.width - edgePadding
	o.Camera.SetBounds(0, o.width, o.height, 0)
	o.layout()
}

func (o *Overlay) layout() {
	place := func(l *ui.UILabel, y float32) {
		if l == nil {
			return
		}
		l.Node().SetPos(o.margin-l.Width(), y)
	}
	place(o.fps, fpsY)
	place(o.frameTime, frameTimeY)
	place(o.memory, memoryY)
	place(o.meshTime, meshTimeY)
	place(o.postTime, postTimeY)
	place(o.totalTime, totalTimeY)

	if o.statsPanel != nil {
		o.statsPanel.X = o.margin - statsPanelW + 8
	}
	if o.statsTitle != nil {
		o.statsTitle.Node().SetPos(o.margin-statsPanelW+20, statsTitleY)
	}
}

func (o *Overlay) OnRender(e *core.Engine, alpha float64) {
	o.Render(e, func(b renderer2d.Batch) {
		if m := o.deps.Menu; m != nil && m.Visible() {
			m.Render(&ui.Context{
				Viewport:    [4]float32{0, 0, o.width, o.height},
				DefaultFont: o.font(smallFont),
				Renderer:    b,
			})
		}
		for _, r := range o.queued {
			r.Submit(b)
		}
		o.sprites.Each(func(s *ui.Sprite) { s.Submit(b) })
	})

	clear(o.queued)
	o.queued = o.queued[:0]
	o.sprites.Reset()
}

// DrawSprite queues r for the next OnRender only. The overlay never takes
// ownership of r.
func (o *Overlay) DrawSprite(r renderer2d.Renderable) {
	if r != nil {
		o.queued = append(o.queued, r)
	}
}

// DrawTexture draws tex at pos (top-left, pixels) with the given size for
// the next OnRender only.
func (o *Overlay) DrawTexture(tex core.Texture, pos, size mgl32.Vec2) {
	s := o.sprites.Alloc()
	*s = ui.Sprite{X: pos.X(), Y: pos.Y(), W: size.X(), H: size.Y(), Color: colors.White, Texture: tex}
}

func (o *Overlay) OnDetach(e *core.Engine) {
	if active == o {
		active = nil
	}
	o.Layer2D.OnDetach(e)
	clear(o.queued)
	o.queued = o.queued[:0]
	o.sprites.Reset()
	o.fps, o.frameTime, o.memory = nil, nil, nil
	o.statsTitle, o.meshTime, o.postTime, o.totalTime = nil, nil, nil, nil
	o.statsPanel = nil
}
