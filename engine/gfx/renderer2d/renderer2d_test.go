package renderer2d_test

import (
	"testing"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/core/coretest"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, maxQuads int) (*renderer2d.Renderer2D, *coretest.Renderer) {
	t.Helper()
	backend := coretest.NewRenderer()
	r2d, err := renderer2d.New(backend, maxQuads)
	require.NoError(t, err)
	return r2d, backend
}

func TestNewCreatesResources(t *testing.T) {
	_, backend := newRenderer(t, 8)

	require.Len(t, backend.Pipelines, 1)
	assert.True(t, backend.Pipelines[0].Desc.Blend)
	assert.Contains(t, backend.Pipelines[0].Desc.VertexSource, "uVP")

	require.Len(t, backend.Textures, 1, "white texture")
	assert.Equal(t, 1, backend.Textures[0].W)

	require.Len(t, backend.Meshes, 1)
	assert.True(t, backend.Meshes[0].Desc.Dynamic)
	assert.Len(t, backend.Meshes[0].Desc.Indices, 8*6)
}

func TestBatchesQuadsIntoOneDraw(t *testing.T) {
	r2d, backend := newRenderer(t, 100)

	vp := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	r2d.BeginScene(vp)
	r2d.DrawQuad(0, 0, 10, 10, colors.Red, 0)
	r2d.DrawQuad(20, 0, 10, 10, colors.Green, 0)
	r2d.DrawQuad(40, 0, 10, 10, colors.Blue, 0)
	r2d.EndScene()

	require.Len(t, backend.Draws, 1)
	assert.Equal(t, vp, backend.Draws[0].Uniforms["uVP"])
	assert.Contains(t, backend.Draws[0].Samplers, "uTex[0]")
	assert.Equal(t, 3*6, backend.Draws[0].Mesh.IndexCount())

	stats := r2d.Stats()
	assert.Equal(t, 1, stats.DrawCalls)
	assert.Equal(t, 3, stats.QuadCount)
	assert.Equal(t, 12, stats.TotalVertexCount())
	assert.Equal(t, 18, stats.TotalIndexCount())
}

func TestFlushesWhenQuadCapacityIsReached(t *testing.T) {
	r2d, backend := newRenderer(t, 2)

	r2d.BeginScene([16]float32{})
	for i := 0; i < 5; i++ {
		r2d.DrawQuad(float32(i), 0, 1, 1, colors.White, 0)
	}
	r2d.EndScene()

	assert.Len(t, backend.Draws, 3)
	assert.Equal(t, 5, r2d.Stats().QuadCount)
}

func TestFlushesWhenTextureSlotsRunOut(t *testing.T) {
	r2d, backend := newRenderer(t, 100)

	r2d.BeginScene([16]float32{})
	// slot 0 is the white texture, so the 16th distinct texture overflows
	for i := 0; i < 16; i++ {
		tex, err := backend.CreateTexture(core.TextureDesc{Width: 2, Height: 2})
		require.NoError(t, err)
		r2d.DrawTexturedQuad(0, 0, 1, 1, tex, colors.White, 0)
	}
	r2d.EndScene()

	assert.Len(t, backend.Draws, 2)
	assert.Len(t, backend.Draws[0].Samplers, 16)
}

func TestBeginSceneAppliesRenderTarget(t *testing.T) {
	r2d, backend := newRenderer(t, 10)

	r2d.BeginScene([16]float32{})
	r2d.EndScene()
	assert.Equal(t, core.RenderTargetScreen, backend.Target())

	r2d.SetRenderTarget(core.RenderTargetBuffer)
	r2d.BeginScene([16]float32{})
	assert.Equal(t, core.RenderTargetBuffer, backend.Target())
	assert.Empty(t, backend.Draws, "empty scenes do not draw")
}

type quadRenderable struct{ n int }

func (q *quadRenderable) Submit(b renderer2d.Batch) {
	q.n++
	b.DrawQuad(0, 0, 1, 1, colors.White, 0)
}

func TestSubmitRenderable(t *testing.T) {
	r2d, _ := newRenderer(t, 10)
	q := &quadRenderable{}

	r2d.BeginScene([16]float32{})
	r2d.Submit(q)
	r2d.Submit(q)
	r2d.EndScene()

	assert.Equal(t, 2, q.n)
	assert.Equal(t, 2, r2d.Stats().QuadCount)
}

func TestExtraUniforms(t *testing.T) {
	r2d, backend := newRenderer(t, 10)
	r2d.SetUniform("uTime", float32(1.5))

	r2d.BeginScene([16]float32{})
	r2d.DrawQuad(0, 0, 1, 1, colors.White, 0)
	r2d.EndScene()

	r2d.SetUniform("uTime", nil)
	r2d.BeginScene([16]float32{})
	r2d.DrawQuad(0, 0, 1, 1, colors.White, 0)
	r2d.EndScene()

	require.Len(t, backend.Draws, 2)
	assert.Equal(t, float32(1.5), backend.Draws[0].Uniforms["uTime"])
	assert.NotContains(t, backend.Draws[1].Uniforms, "uTime")
}

func TestFromPixels(t *testing.T) {
	sub := renderer2d.FromGrid(nil, 1, 0, 32, 32, 128, 64)
	assert.Equal(t, float32(0.25), sub.U0)
	assert.Equal(t, float32(0), sub.V0)
	assert.Equal(t, float32(0.5), sub.U1)
	assert.Equal(t, float32(0.5), sub.V1)
}

type uvBatch struct{ u0, v0, u1, v1 float32 }

func (b *uvBatch) DrawQuad(_, _, _, _ float32, _ colors.Color, _ float32)                       {}
func (b *uvBatch) DrawTexturedQuad(_, _, _, _ float32, _ core.Texture, _ colors.Color, _ float32) {}
func (b *uvBatch) DrawTexturedQuadUV(_, _, _, _ float32, _ core.Texture, _ colors.Color, _ float32, u0, v0, u1, v1 float32) {
	b.u0, b.v0, b.u1, b.v1 = u0, v0, u1, v1
}

func TestSubTextureDrawPassesRegion(t *testing.T) {
	sub := renderer2d.FromPixels(nil, 0, 16, 16, 16, 32, 32)
	b := &uvBatch{}
	sub.Draw(b, 0, 0, 1, 1, colors.White, 0)
	assert.Equal(t, uvBatch{0, 0.5, 0.5, 1}, *b)
}
