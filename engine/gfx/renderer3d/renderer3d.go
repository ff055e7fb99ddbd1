package renderer3d

import (
	"embed"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/canopy/engine/assets"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
)

//go:embed shaders
var shaderFS embed.FS

// Vertex: pos3 + normal3 => 6 floats
const vStride = 6

var MeshVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 3, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 3, Type: core.AttribFloat32, Offset: 3 * 4}, // normal
	},
}

// Stats holds the timings of the last rendered frame in milliseconds.
type Stats struct {
	MeshRenderTime        float64
	PostEffectsRenderTime float64
	TotalRenderTime       float64
	DrawCalls             int
}

// Command draws one mesh with a model transform and flat colour.
type Command struct {
	Mesh  core.Mesh
	Model mgl32.Mat4
	Color colors.Color
}

// PostEffect runs after the mesh pass, in registration order.
type PostEffect struct {
	Name  string
	Apply func(r core.Renderer)
}

// Renderer is a 3D pipeline. Stats may return nil when the renderer does
// not measure itself.
type Renderer interface {
	Begin(viewProj mgl32.Mat4)
	Submit(cmd Command)
	End()
	Resize(w, h int)
	Stats() *Stats
}

// ForwardRenderer draws every submitted mesh in one pass, then applies the
// post effects.
type ForwardRenderer struct {
	r        core.Renderer
	pipe     core.Pipeline
	target   core.RenderTarget
	clear    colors.Color
	queue    []Command
	effects  []PostEffect
	vp       mgl32.Mat4
	lightDir mgl32.Vec3
	width    int
	height   int
	uniforms map[string]any
	stats    Stats
	now      func() time.Time
}

func NewForwardRenderer(r core.Renderer) (*ForwardRenderer, error) {
	vs, err := assets.LoadShader(shaderFS, "shaders/mesh.vert")
	if err != nil {
		return nil, err
	}
	fs, err := assets.LoadShader(shaderFS, "shaders/mesh.frag")
	if err != nil {
		return nil, err
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vs,
		FragmentSource: fs,
		DepthTest:      true,
	})
	if err != nil {
		return nil, err
	}
	return &ForwardRenderer{
		r:        r,
		pipe:     pipe,
		lightDir: mgl32.Vec3{-0.4, -1, -0.6},
		uniforms: make(map[string]any, 4),
		now:      time.Now,
	}, nil
}

// SetClock replaces the time source used to measure the passes.
func (fr *ForwardRenderer) SetClock(now func() time.Time) { fr.now = now }

// SetRenderTarget selects where the mesh pass lands. The off-screen buffer
// is cleared to the clear colour at the start of every pass; a composite
// effect is expected to bring it to the screen.
func (fr *ForwardRenderer) SetRenderTarget(t core.RenderTarget) { fr.target = t }
func (fr *ForwardRenderer) SetClearColor(c colors.Color)        { fr.clear = c }
func (fr *ForwardRenderer) SetLightDir(d mgl32.Vec3)            { fr.lightDir = d }
func (fr *ForwardRenderer) AddPostEffect(e PostEffect)          { fr.effects = append(fr.effects, e) }
func (fr *ForwardRenderer) PostEffects() []PostEffect           { return fr.effects }

func (fr *ForwardRenderer) Resize(w, h int) { fr.width, fr.height = w, h }

// Size is the last viewport passed to Resize.
func (fr *ForwardRenderer) Size() (int, int) { return fr.width, fr.height }

func (fr *ForwardRenderer) Stats() *Stats { return &fr.stats }

func (fr *ForwardRenderer) Begin(viewProj mgl32.Mat4) {
	fr.vp = viewProj
	fr.queue = fr.queue[:0]
}

func (fr *ForwardRenderer) Submit(cmd Command) {
	if cmd.Mesh == nil || cmd.Mesh.IndexCount() == 0 {
		return
	}
	fr.queue = append(fr.queue, cmd)
}

func (fr *ForwardRenderer) End() {
	start := fr.now()
	fr.r.SetRenderTarget(fr.target)
	if fr.target == core.RenderTargetBuffer {
		fr.r.Clear(fr.clear[0], fr.clear[1], fr.clear[2], fr.clear[3])
	}

	draws := 0
	for _, cmd := range fr.queue {
		clear(fr.uniforms)
		fr.uniforms["uMVP"] = [16]float32(fr.vp.Mul4(cmd.Model))
		fr.uniforms["uModel"] = [16]float32(cmd.Model)
		fr.uniforms["uColor"] = [4]float32(cmd.Color)
		fr.uniforms["uLightDir"] = [3]float32(fr.lightDir)
		fr.r.Draw(core.DrawCmd{Pipe: fr.pipe, Mesh: cmd.Mesh, Uniforms: fr.uniforms})
		draws++
	}
	meshDone := fr.now()

	for _, e := range fr.effects {
		if e.Apply != nil {
			e.Apply(fr.r)
		}
	}
	end := fr.now()

	fr.stats = Stats{
		MeshRenderTime:        ms(meshDone.Sub(start)),
		PostEffectsRenderTime: ms(end.Sub(meshDone)),
		TotalRenderTime:       ms(end.Sub(start)),
		DrawCalls:             draws,
	}
	fr.queue = fr.queue[:0]
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
