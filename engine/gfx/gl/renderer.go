package glbackend

import (
	"log"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/canopy/engine/core"
)

// RendererGL implements core.Renderer on an OpenGL 3.3 core context. The
// context must be current on the calling thread.
type RendererGL struct {
	win    core.Window
	width  int
	height int
	target core.RenderTarget

	offscreen framebuffer

	textures  []*texture
	pipelines []*pipeline
	meshes    []*mesh
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	if err := gl.Init(); err != nil {
		return err
	}
	log.Printf("GL: %s (%s, %s)", r.GPUVersion(), r.GPURenderer(), r.GPUVendor())

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if r.win != nil {
		r.Resize(r.win.FramebufferSize())
	}
	return nil
}

func (r *RendererGL) Shutdown() {
	r.offscreen.release()
	for _, m := range r.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteVertexArrays(1, &m.vao)
	}
	for _, t := range r.textures {
		gl.DeleteTextures(1, &t.id)
	}
	for _, p := range r.pipelines {
		gl.DeleteProgram(p.program)
	}
	r.meshes, r.textures, r.pipelines = nil, nil, nil
}

func (r *RendererGL) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.width, r.height = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
	if r.offscreen.fbo != 0 {
		if err := r.offscreen.resize(w, h); err != nil {
			log.Printf("GL: offscreen target: %v", err)
		}
	}
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetRenderTarget binds the default framebuffer or the off-screen buffer,
// creating the latter on first use.
func (r *RendererGL) SetRenderTarget(t core.RenderTarget) {
	r.target = t
	if t != core.RenderTargetBuffer {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	if r.offscreen.fbo == 0 {
		if err := r.offscreen.resize(r.width, r.height); err != nil {
			log.Printf("GL: offscreen target: %v", err)
			r.target = core.RenderTargetScreen
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			return
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.offscreen.fbo)
}

// BufferTexture is the colour attachment of the off-screen target, nil
// until RenderTargetBuffer has been selected once.
func (r *RendererGL) BufferTexture() core.Texture {
	if r.offscreen.fbo == 0 {
		return nil
	}
	return &r.offscreen.color
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok {
		return
	}
	m, ok := cmd.Mesh.(*mesh)
	if !ok || m.indexCount == 0 {
		return
	}

	if p.depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if p.blend {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}

	gl.UseProgram(p.program)
	for name, v := range cmd.Uniforms {
		setUniform(p.location(name), v)
	}
	unit := int32(0)
	for name, t := range cmd.Samplers {
		tex, ok := t.(*texture)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.Uniform1i(p.location(name), unit)
		unit++
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(m.indexCount), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func setUniform(loc int32, v any) {
	if loc < 0 {
		return
	}
	switch u := v.(type) {
	case float32:
		gl.Uniform1f(loc, u)
	case int32:
		gl.Uniform1i(loc, u)
	case [2]float32:
		gl.Uniform2f(loc, u[0], u[1])
	case [3]float32:
		gl.Uniform3f(loc, u[0], u[1], u[2])
	case [4]float32:
		gl.Uniform4f(loc, u[0], u[1], u[2], u[3])
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &u[0])
	}
}

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }
