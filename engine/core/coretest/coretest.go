// Package coretest provides recording fakes of the engine's platform
// contracts for use in tests.
package coretest

import (
	"github.com/hubastard/canopy/engine/core"
)

type Texture struct {
	ID   uint32
	W, H int
	Desc core.TextureDesc
}

func (t *Texture) Width() int  { return t.W }
func (t *Texture) Height() int { return t.H }

type Pipeline struct {
	ID   uint32
	Desc core.PipelineDesc
}

func (p *Pipeline) PipelineID() uint32 { return p.ID }

type Mesh struct {
	Desc     core.MeshDesc
	Vertices []float32
	Indices  []uint32
	Updates  int
}

func (m *Mesh) IndexCount() int { return len(m.Indices) }

// Renderer records every call made by the code under test.
type Renderer struct {
	Width, Height int
	Targets       []core.RenderTarget // every SetRenderTarget call, in order
	Draws         []core.DrawCmd
	Clears        int
	Textures      []*Texture
	Pipelines     []*Pipeline
	Meshes        []*Mesh
	Buffer        *Texture // off-screen colour target, created on first use
	ShutDown      bool

	// Err, when set, is returned by the Create* methods.
	Err error

	nextID uint32
}

func NewRenderer() *Renderer { return &Renderer{Width: 1280, Height: 720} }

func (r *Renderer) Init() error              { return nil }
func (r *Renderer) Resize(w, h int)          { r.Width, r.Height = w, h }
func (r *Renderer) Clear(_, _, _, _ float32) { r.Clears++ }
func (r *Renderer) GPUVendor() string        { return "coretest" }
func (r *Renderer) GPURenderer() string      { return "recording renderer" }
func (r *Renderer) GPUVersion() string       { return "0" }
func (r *Renderer) Shutdown()                { r.ShutDown = true }

func (r *Renderer) SetRenderTarget(t core.RenderTarget) {
	r.Targets = append(r.Targets, t)
	if t == core.RenderTargetBuffer && r.Buffer == nil {
		r.nextID++
		r.Buffer = &Texture{ID: r.nextID, W: r.Width, H: r.Height}
	}
}

func (r *Renderer) BufferTexture() core.Texture {
	if r.Buffer == nil {
		return nil
	}
	return r.Buffer
}

// Target is the last render target requested, screen by default.
func (r *Renderer) Target() core.RenderTarget {
	if len(r.Targets) == 0 {
		return core.RenderTargetScreen
	}
	return r.Targets[len(r.Targets)-1]
}

func (r *Renderer) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.nextID++
	t := &Texture{ID: r.nextID, W: desc.Width, H: desc.Height, Desc: desc}
	r.Textures = append(r.Textures, t)
	return t, nil
}

func (r *Renderer) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.nextID++
	p := &Pipeline{ID: r.nextID, Desc: desc}
	r.Pipelines = append(r.Pipelines, p)
	return p, nil
}

func (r *Renderer) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	m := &Mesh{Desc: desc, Vertices: desc.Vertices, Indices: desc.Indices}
	r.Meshes = append(r.Meshes, m)
	return m, nil
}

func (r *Renderer) UpdateMesh(m core.Mesh, vertices []float32, indices []uint32) error {
	fm := m.(*Mesh)
	fm.Vertices = append(fm.Vertices[:0:0], vertices...)
	fm.Indices = append(fm.Indices[:0:0], indices...)
	fm.Updates++
	return nil
}

// Draw records a copy of cmd; the maps are cloned because callers reuse them.
func (r *Renderer) Draw(cmd core.DrawCmd) {
	c := cmd
	if cmd.Uniforms != nil {
		c.Uniforms = make(map[string]any, len(cmd.Uniforms))
		for k, v := range cmd.Uniforms {
			c.Uniforms[k] = v
		}
	}
	if cmd.Samplers != nil {
		c.Samplers = make(map[string]core.Texture, len(cmd.Samplers))
		for k, v := range cmd.Samplers {
			c.Samplers[k] = v
		}
	}
	r.Draws = append(r.Draws, c)
}

// Window is a scripted core.Window. Events queued with Queue are delivered
// to the engine callback on the next PollEvents.
type Window struct {
	W, H     int
	Title    string
	Swaps    int
	Polls    int
	Closed   bool
	callback func(core.Event)
	queue    []core.Event
}

func NewWindow(w, h int) *Window { return &Window{W: w, H: h} }

func (w *Window) Queue(evs ...core.Event) { w.queue = append(w.queue, evs...) }

func (w *Window) PollEvents() {
	w.Polls++
	evs := w.queue
	w.queue = nil
	for _, ev := range evs {
		w.Emit(ev)
	}
}

// Emit delivers ev immediately, as a platform callback would.
func (w *Window) Emit(ev core.Event) {
	if w.callback != nil {
		w.callback(ev)
	}
}

func (w *Window) SwapBuffers()                         { w.Swaps++ }
func (w *Window) ShouldClose() bool                    { return w.Closed }
func (w *Window) RequestClose()                        { w.Closed = true }
func (w *Window) FramebufferSize() (int, int)          { return w.W, w.H }
func (w *Window) SetTitle(title string)                { w.Title = title }
func (w *Window) SetEventCallback(cb func(core.Event)) { w.callback = cb }

// NewEngine returns an engine backed by a fake window and renderer.
func NewEngine() (*core.Engine, *Window, *Renderer) {
	win := NewWindow(1280, 720)
	rend := NewRenderer()
	e := core.NewEngine(core.Config{Width: win.W, Height: win.H}, win, rend)
	win.SetEventCallback(e.HandleEvent)
	return e, win, rend
}
