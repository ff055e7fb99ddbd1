package core

import (
	"time"

	"github.com/hubastard/canopy/engine/scratch"
)

// Engine exposes core services to the App and its layers.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Layers   *LayerStack
	Config   Config

	app   App
	start time.Time

	tick  time.Duration
	accum time.Duration

	frameTime  time.Duration
	frames     int
	fps        int
	fpsWindow  time.Duration
	frameCount uint64
}

func NewEngine(cfg Config, win Window, rend Renderer) *Engine {
	cfg = cfg.WithDefaults()
	scratch.Init(cfg.ScratchCapacity)
	return &Engine{
		Window:   win,
		Renderer: rend,
		Input:    NewInput(),
		Layers:   NewLayerStack(),
		Config:   cfg,
		start:    time.Now(),
		tick:     cfg.TickInterval(),
	}
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// FPS is the number of frames presented during the last full second.
func (e *Engine) FPS() int { return e.fps }

// FrameTime is the duration of the last frame in milliseconds.
func (e *Engine) FrameTime() float64 { return float64(e.frameTime) / float64(time.Millisecond) }

// FrameCount is the number of frames stepped so far.
func (e *Engine) FrameCount() uint64 { return e.frameCount }

// SetApp installs the application hooks driven by Step and HandleEvent.
func (e *Engine) SetApp(app App) { e.app = app }

func (e *Engine) PushLayer(l Layer) bool { return e.Layers.Push(e, l) }

func (e *Engine) PopLayer() (Layer, bool) { return e.Layers.Pop(e) }

// HandleEvent routes one event from the input backend: input state first,
// then the layer stack top-down, then the App if nothing handled it.
func (e *Engine) HandleEvent(ev Event) {
	if ev == nil {
		return
	}
	e.Input.Handle(ev)
	if r, ok := ev.(*ResizeEvent); ok && e.Renderer != nil && r.W > 0 && r.H > 0 {
		e.Renderer.Resize(r.W, r.H)
	}

	if !e.Layers.OnEvent(e, ev) && e.app != nil {
		e.app.OnEvent(e, ev)
	}

	if _, ok := ev.(*CloseRequestedEvent); ok && !ev.Handled() && e.Window != nil {
		e.Window.RequestClose()
	}
}

// Step runs one frame: fixed ticks, update, event poll, render, present.
func (e *Engine) Step(frame time.Duration) {
	scratch.Reset()
	e.Layers.Flush(e)

	e.frameTime = frame
	e.accum += frame

	steps := 0
	for e.accum >= e.tick && steps < e.Config.MaxTicksPerFrame {
		e.Layers.OnTick(e)
		e.accum -= e.tick
		steps++
	}
	if e.accum >= e.tick {
		// Too far behind; drop the backlog instead of spiralling.
		e.accum %= e.tick
	}

	dt := frame.Seconds()
	e.Layers.OnUpdate(e, dt)
	if e.app != nil {
		e.app.OnUpdate(e, dt)
	}

	// Poll OS events (platform will emit via callbacks)
	if e.Window != nil {
		e.Window.PollEvents()
	}

	// Interpolation factor for rendering
	alpha := float64(e.accum) / float64(e.tick)

	if e.Renderer != nil {
		c := e.Config.ClearColor
		e.Renderer.SetRenderTarget(RenderTargetScreen)
		e.Renderer.Clear(c[0], c[1], c[2], c[3])
	}
	e.Layers.OnRender(e, alpha)
	if e.app != nil {
		e.app.OnRender(e, alpha)
	}

	if e.Window != nil {
		e.Window.SwapBuffers()
	}

	e.countFrame(frame)
}

func (e *Engine) countFrame(frame time.Duration) {
	e.frameCount++
	e.frames++
	e.fpsWindow += frame
	if e.fpsWindow >= time.Second {
		e.fps = e.frames
		e.frames = 0
		e.fpsWindow %= time.Second
	}
}
