package core

import "time"

// App defines the game/application hooks. Layers do most of the work; the
// App sees what the layer stack leaves unhandled.
type App interface {
	OnStart(e *Engine)                 // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called once per frame after the layers
	OnRender(e *Engine, alpha float64) // called after the layers rendered
	OnEvent(e *Engine, ev Event)       // events no layer handled
	OnShutdown(e *Engine)              // before exit
}

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Renderer abstraction implemented by the graphics backend.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	SetRenderTarget(t RenderTarget)
	// BufferTexture is the colour attachment of the off-screen target, nil
	// until RenderTargetBuffer has been selected once.
	BufferTexture() Texture

	CreateTexture(desc TextureDesc) (Texture, error)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)

	GPUVendor() string
	GPURenderer() string
	GPUVersion() string

	Shutdown()
}

// RenderTarget selects where draw calls land.
type RenderTarget int

const (
	RenderTargetScreen RenderTarget = iota // default framebuffer
	RenderTargetBuffer                     // off-screen buffer used by post effects
)

type Texture interface {
	Width() int
	Height() int
}

type Pipeline interface{ PipelineID() uint32 }

type Mesh interface{ IndexCount() int }

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte
	MinFilter     string // "nearest" | "linear"
	MagFilter     string
	WrapU, WrapV  string // "clamp" | "repeat"
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
	Dynamic  bool
}

// DrawCmd is one draw call. Uniform values may be float32, int32,
// [2]float32, [3]float32, [4]float32 or [16]float32.
type DrawCmd struct {
	Pipe     Pipeline
	Mesh     Mesh
	Uniforms map[string]any
	Samplers map[string]Texture
}

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor [4]float32 // RGBA

	TickRate         int // fixed OnTick rate in Hz
	MaxTicksPerFrame int // catch-up cap against the spiral of death
	ScratchCapacity  int // initial per-frame scratch buffer size in bytes
	FontName         string
}

// WithDefaults fills zero fields.
func (c Config) WithDefaults() Config {
	if c.Title == "" {
		c.Title = "canopy"
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.TickRate <= 0 {
		c.TickRate = 60
	}
	if c.MaxTicksPerFrame <= 0 {
		c.MaxTicksPerFrame = 10
	}
	if c.ScratchCapacity <= 0 {
		c.ScratchCapacity = 4 << 10
	}
	return c
}

// TickInterval is the fixed OnTick step.
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}
