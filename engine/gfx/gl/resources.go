package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/canopy/engine/core"
)

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) Width() int  { return t.w }
func (t *texture) Height() int { return t.h }

type pipeline struct {
	program   uint32
	depthTest bool
	blend     bool
	locations map[string]int32
}

func (p *pipeline) PipelineID() uint32 { return p.program }

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

type mesh struct {
	vao, vbo, ebo uint32
	indexCount    int
	vertCap       int // floats
	indCap        int
	usage         uint32
}

func (m *mesh) IndexCount() int { return m.indexCount }

func filter(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("create texture: invalid size %dx%d", desc.Width, desc.Height)
	}
	if desc.Pixels != nil && len(desc.Pixels) < desc.Width*desc.Height*4 {
		return nil, fmt.Errorf("create texture: %d bytes for %dx%d RGBA", len(desc.Pixels), desc.Width, desc.Height)
	}
	t := &texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(desc.WrapV))

	var pix unsafe.Pointer
	if len(desc.Pixels) > 0 {
		pix = gl.Ptr(desc.Pixels)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.textures = append(r.textures, t)
	return t, nil
}

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}
	p := &pipeline{
		program:   prog,
		depthTest: desc.DepthTest,
		blend:     desc.Blend,
		locations: make(map[string]int32),
	}
	r.pipelines = append(r.pipelines, p)
	return p, nil
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.Layout.Stride <= 0 {
		return nil, fmt.Errorf("create mesh: vertex layout has no stride")
	}
	m := &mesh{usage: gl.STATIC_DRAW}
	if desc.Dynamic {
		m.usage = gl.DYNAMIC_DRAW
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	m.vertCap = len(desc.Vertices)
	gl.BufferData(gl.ARRAY_BUFFER, m.vertCap*4, ptr(desc.Vertices), m.usage)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	m.indCap = len(desc.Indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, m.indCap*4, ptr(desc.Indices), m.usage)

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointerWithOffset(uint32(a.Location), int32(a.Size), gl.FLOAT, false, int32(desc.Layout.Stride), uintptr(a.Offset))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	m.indexCount = len(desc.Indices)
	if desc.Dynamic {
		// dynamic meshes start empty until the first UpdateMesh
		m.indexCount = 0
	}
	r.meshes = append(r.meshes, m)
	return m, nil
}

func (r *RendererGL) UpdateMesh(cm core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := cm.(*mesh)
	if !ok {
		return fmt.Errorf("update mesh: foreign mesh %T", cm)
	}
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > m.vertCap {
		m.vertCap = len(vertices)
		gl.BufferData(gl.ARRAY_BUFFER, m.vertCap*4, ptr(vertices), m.usage)
	} else if len(vertices) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(indices) > m.indCap {
		m.indCap = len(indices)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, m.indCap*4, ptr(indices), m.usage)
	} else if len(indices) > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	m.indexCount = len(indices)
	return nil
}

func ptr[T float32 | uint32](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return gl.Ptr(s)
}
