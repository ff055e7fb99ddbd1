package renderer2d

import (
	"embed"
	"log"
	"math"
	"strconv"

	"github.com/hubastard/canopy/engine/assets"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
)

//go:embed shaders/quad.vert shaders/quad.frag
var shaderFS embed.FS

// Sampler slots per draw call; slot 0 always holds the white texture.
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1.
const (
	vStride      = 9
	vertsPerQuad = 4
	indsPerQuad  = 6
)

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Unit quad corners TL, TR, BL, BR with their UV selectors. Positive Y
// goes down so the top edge is at -0.5.
var unitQuad = [vertsPerQuad]struct{ x, y, u, v float32 }{
	{-0.5, -0.5, 0, 0},
	{0.5, -0.5, 1, 0},
	{-0.5, 0.5, 0, 1},
	{0.5, 0.5, 1, 1},
}

var samplerNames = func() (names [maxTexSlots]string) {
	for i := range names {
		names[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	return names
}()

// Batch is the drawing surface renderables submit quads into. Positions
// are quad centres; positive Y goes down.
type Batch interface {
	DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32)
	DrawTexturedQuad(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32)
	DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32)
}

// Renderable is anything a 2D layer can own and draw.
type Renderable interface {
	Submit(b Batch)
}

// Destroyer is implemented by renderables holding resources that must be
// released when their owner goes away.
type Destroyer interface {
	Destroy()
}

// Statistics counts what one scene (BeginScene..EndScene) produced.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }
func (s Statistics) TotalIndexCount() int  { return s.QuadCount * indsPerQuad }

// pending is the geometry and texture set of the draw call being built.
type pending struct {
	verts    []float32
	inds     []uint32
	quads    int
	textures [maxTexSlots]core.Texture
	slots    int
}

// Renderer2D batches quads into as few draw calls as the quad capacity and
// sampler slots allow.
type Renderer2D struct {
	r        core.Renderer
	pipe     core.Pipeline
	mesh     core.Mesh
	white    core.Texture
	target   core.RenderTarget
	maxQuads int

	batch pending
	vp    [16]float32
	stats Statistics

	samplers map[string]core.Texture
	uniforms map[string]any
	extra    map[string]any
}

// New creates a renderer using the built-in quad shaders.
func New(r core.Renderer, maxQuads int) (*Renderer2D, error) {
	vs, err := assets.LoadShader(shaderFS, "shaders/quad.vert")
	if err != nil {
		return nil, err
	}
	fs, err := assets.LoadShader(shaderFS, "shaders/quad.frag")
	if err != nil {
		return nil, err
	}
	return NewWithShaders(r, vs, fs, maxQuads)
}

// NewWithShaders creates the renderer around a custom quad pipeline. The
// shaders must accept the quad vertex layout and the uVP / uTex[16]
// uniforms.
func NewWithShaders(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}
	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, err
	}
	// sized for the largest batch, refilled by every flush
	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
		Dynamic:  true,
	})
	if err != nil {
		return nil, err
	}

	rd := &Renderer2D{
		r:        r,
		pipe:     pipe,
		mesh:     mesh,
		white:    white,
		maxQuads: maxQuads,
		batch: pending{
			verts: make([]float32, 0, maxQuads*vertsPerQuad*vStride),
			inds:  make([]uint32, 0, maxQuads*indsPerQuad),
		},
		samplers: make(map[string]core.Texture, maxTexSlots),
		uniforms: make(map[string]any, 4),
	}
	rd.reset()
	return rd, nil
}

// SetRenderTarget selects the target used by the next BeginScene.
func (rd *Renderer2D) SetRenderTarget(t core.RenderTarget) { rd.target = t }
func (rd *Renderer2D) RenderTarget() core.RenderTarget     { return rd.target }

func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd.r.SetRenderTarget(rd.target)
	rd.vp = vp
	rd.stats = Statistics{}
	rd.reset()
}

func (rd *Renderer2D) EndScene() { rd.flush() }

// Submit queues a renderable into the current scene.
func (rd *Renderer2D) Submit(r Renderable) { r.Submit(rd) }

// Stats describes the last scene, or the current one while it is open.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// SetUniform adds a uniform sent with every draw call until it is
// overwritten or removed with a nil value.
func (rd *Renderer2D) SetUniform(name string, value any) {
	if value == nil {
		delete(rd.extra, name)
		return
	}
	if rd.extra == nil {
		rd.extra = make(map[string]any)
	}
	rd.extra[name] = value
}

func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.DrawTexturedQuadUV(x, y, w, h, rd.white, color, rotationRad, 0, 0, 1, 1)
}

func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32) {
	rd.DrawTexturedQuadUV(x, y, w, h, tex, tint, rotationRad, 0, 0, 1, 1)
}

// DrawTexturedQuadUV draws the (u0,v0)-(u1,v1) region of tex. A nil tex
// draws a solid quad.
func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32) {
	if tex == nil {
		tex = rd.white
	}
	if rd.batch.quads >= rd.maxQuads {
		rd.flush()
	}
	slot := rd.slot(tex)

	b := &rd.batch
	base := uint32(len(b.verts) / vStride)
	sin, cos := math.Sincos(float64(rotationRad))
	s, c := float32(sin), float32(cos)
	for _, p := range unitQuad {
		px, py := p.x*w, p.y*h
		b.verts = append(b.verts,
			px*c-py*s+x, px*s+py*c+y,
			tint[0], tint[1], tint[2], tint[3],
			u0+(u1-u0)*p.u, v0+(v1-v0)*p.v,
			slot,
		)
	}
	b.inds = append(b.inds, base, base+2, base+1, base+1, base+2, base+3)
	b.quads++
	rd.stats.QuadCount++
}

// slot returns the sampler index of tex in the current batch, flushing
// first when every slot is taken.
func (rd *Renderer2D) slot(tex core.Texture) float32 {
	b := &rd.batch
	for i := 0; i < b.slots; i++ {
		if b.textures[i] == tex {
			return float32(i)
		}
	}
	if b.slots == maxTexSlots {
		rd.flush()
	}
	b.textures[b.slots] = tex
	b.slots++
	rd.stats.TextureCount = max(rd.stats.TextureCount, b.slots)
	return float32(b.slots - 1)
}

func (rd *Renderer2D) flush() {
	b := &rd.batch
	if b.quads == 0 {
		return
	}
	if err := rd.r.UpdateMesh(rd.mesh, b.verts, b.inds); err != nil {
		log.Printf("renderer2d: upload batch: %v", err)
		rd.reset()
		return
	}

	clear(rd.samplers)
	for i, tex := range b.textures[:b.slots] {
		rd.samplers[samplerNames[i]] = tex
	}
	clear(rd.uniforms)
	rd.uniforms["uVP"] = rd.vp
	for k, v := range rd.extra {
		rd.uniforms[k] = v
	}

	rd.r.Draw(core.DrawCmd{Pipe: rd.pipe, Mesh: rd.mesh, Uniforms: rd.uniforms, Samplers: rd.samplers})
	rd.stats.DrawCalls++
	rd.reset()
}

func (rd *Renderer2D) reset() {
	b := &rd.batch
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.quads = 0
	clear(b.textures[:])
	b.textures[0] = rd.white
	b.slots = 1
}
