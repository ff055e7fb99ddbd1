package renderer3d

import (
	"fmt"

	"github.com/hubastard/canopy/engine/assets"
	"github.com/hubastard/canopy/engine/core"
)

var fullscreenLayout = core.VertexLayout{
	Stride: 2 * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},
	},
}

// NewFullscreenEffect builds a post effect drawing one blended triangle
// over the whole target with fragSrc. uniforms is sent unchanged on every
// draw and may be mutated between frames.
func NewFullscreenEffect(r core.Renderer, name, fragSrc string, uniforms map[string]any) (PostEffect, error) {
	pipe, tri, err := fullscreenPass(r, name, fragSrc, true)
	if err != nil {
		return PostEffect{}, err
	}
	return PostEffect{
		Name: name,
		Apply: func(r core.Renderer) {
			r.Draw(core.DrawCmd{Pipe: pipe, Mesh: tri, Uniforms: uniforms})
		},
	}, nil
}

// NewComposite copies the off-screen buffer onto the screen and leaves the
// screen bound, so effects added after it draw over the composited frame.
// Until the buffer exists it does nothing.
func NewComposite(r core.Renderer) (PostEffect, error) {
	fs, err := assets.LoadShader(shaderFS, "shaders/composite.frag")
	if err != nil {
		return PostEffect{}, err
	}
	pipe, tri, err := fullscreenPass(r, "composite", fs, false)
	if err != nil {
		return PostEffect{}, err
	}
	samplers := make(map[string]core.Texture, 1)
	return PostEffect{
		Name: "composite",
		Apply: func(r core.Renderer) {
			scene := r.BufferTexture()
			if scene == nil {
				return
			}
			samplers["uScene"] = scene
			r.SetRenderTarget(core.RenderTargetScreen)
			r.Draw(core.DrawCmd{Pipe: pipe, Mesh: tri, Samplers: samplers})
		},
	}, nil
}

func fullscreenPass(r core.Renderer, name, fragSrc string, blend bool) (core.Pipeline, core.Mesh, error) {
	vs, err := assets.LoadShader(shaderFS, "shaders/fullscreen.vert")
	if err != nil {
		return nil, nil, err
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vs,
		FragmentSource: fragSrc,
		Blend:          blend,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s pipeline: %w", name, err)
	}
	tri, err := r.CreateMesh(core.MeshDesc{
		Vertices: []float32{-1, -1, 3, -1, -1, 3},
		Indices:  []uint32{0, 1, 2},
		Layout:   fullscreenLayout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s mesh: %w", name, err)
	}
	return pipe, tri, nil
}

// NewVignette darkens the edges of the frame; strength is in [0,1].
func NewVignette(r core.Renderer, strength float32) (PostEffect, error) {
	fs, err := assets.LoadShader(shaderFS, "shaders/vignette.frag")
	if err != nil {
		return PostEffect{}, err
	}
	return NewFullscreenEffect(r, "vignette", fs, map[string]any{"uStrength": strength})
}
