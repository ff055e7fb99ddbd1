package renderer3d_test

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/core/coretest"
	"github.com/hubastard/canopy/engine/gfx/renderer3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppedClock returns base plus each offset in turn.
func steppedClock(offsets ...time.Duration) func() time.Time {
	base := time.Unix(1000, 0)
	i := 0
	return func() time.Time {
		d := offsets[min(i, len(offsets)-1)]
		i++
		return base.Add(d)
	}
}

func newForward(t *testing.T) (*renderer3d.ForwardRenderer, *coretest.Renderer) {
	t.Helper()
	backend := coretest.NewRenderer()
	fr, err := renderer3d.NewForwardRenderer(backend)
	require.NoError(t, err)
	return fr, backend
}

func TestForwardRendererTimesPasses(t *testing.T) {
	fr, backend := newForward(t)
	cube, err := renderer3d.Cube(backend)
	require.NoError(t, err)

	var applied []string
	fr.AddPostEffect(renderer3d.PostEffect{Name: "a", Apply: func(core.Renderer) { applied = append(applied, "a") }})
	fr.AddPostEffect(renderer3d.PostEffect{Name: "b", Apply: func(core.Renderer) { applied = append(applied, "b") }})
	fr.SetClock(steppedClock(0, 2500*time.Microsecond, 3700*time.Microsecond))

	fr.Begin(mgl32.Ident4())
	fr.Submit(renderer3d.Command{Mesh: cube, Model: mgl32.Translate3D(1, 2, 3), Color: colors.Red})
	fr.Submit(renderer3d.Command{Mesh: cube, Model: mgl32.Ident4(), Color: colors.Blue})
	fr.End()

	stats := fr.Stats()
	require.NotNil(t, stats)
	assert.InDelta(t, 2.5, stats.MeshRenderTime, 1e-9)
	assert.InDelta(t, 1.2, stats.PostEffectsRenderTime, 1e-9)
	assert.InDelta(t, 3.7, stats.TotalRenderTime, 1e-9)
	assert.Equal(t, 2, stats.DrawCalls)
	assert.Equal(t, []string{"a", "b"}, applied)

	require.Len(t, backend.Draws, 2)
	assert.Equal(t, [4]float32(colors.Red), backend.Draws[0].Uniforms["uColor"])
	assert.Equal(t, [16]float32(mgl32.Translate3D(1, 2, 3)), backend.Draws[0].Uniforms["uMVP"])
	assert.True(t, backend.Pipelines[0].Desc.DepthTest)
}

func TestForwardRendererSkipsEmptyMeshes(t *testing.T) {
	fr, backend := newForward(t)

	fr.Begin(mgl32.Ident4())
	fr.Submit(renderer3d.Command{})
	fr.End()

	assert.Empty(t, backend.Draws)
	assert.Zero(t, fr.Stats().DrawCalls)
}

func TestForwardRendererTargetAndResize(t *testing.T) {
	fr, backend := newForward(t)
	fr.SetRenderTarget(core.RenderTargetBuffer)
	fr.Resize(640, 480)

	fr.Begin(mgl32.Ident4())
	fr.End()

	assert.Equal(t, core.RenderTargetBuffer, backend.Target())
	w, h := fr.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestOffscreenPassIsCompositedToScreen(t *testing.T) {
	fr, backend := newForward(t)
	cube, err := renderer3d.Cube(backend)
	require.NoError(t, err)
	composite, err := renderer3d.NewComposite(backend)
	require.NoError(t, err)
	vignette, err := renderer3d.NewVignette(backend, 0.5)
	require.NoError(t, err)

	fr.SetRenderTarget(core.RenderTargetBuffer)
	fr.SetClearColor(colors.DarkGray)
	fr.AddPostEffect(composite)
	fr.AddPostEffect(vignette)

	fr.Begin(mgl32.Ident4())
	fr.Submit(renderer3d.Command{Mesh: cube, Model: mgl32.Ident4(), Color: colors.Red})
	fr.End()

	assert.Equal(t, []core.RenderTarget{core.RenderTargetBuffer, core.RenderTargetScreen}, backend.Targets)
	assert.Equal(t, 1, backend.Clears, "the buffer is cleared before the mesh pass")
	require.Len(t, backend.Draws, 3)

	blit := backend.Draws[1]
	require.NotNil(t, backend.Buffer)
	assert.Same(t, backend.Buffer, blit.Samplers["uScene"])
	assert.Equal(t, 3, blit.Mesh.IndexCount())
	assert.False(t, backend.Pipelines[1].Desc.Blend, "composite overwrites the screen")
	assert.Equal(t, float32(0.5), backend.Draws[2].Uniforms["uStrength"])
	assert.Equal(t, 1, fr.Stats().DrawCalls)
}

func TestCompositeWithoutBufferDoesNothing(t *testing.T) {
	backend := coretest.NewRenderer()
	fx, err := renderer3d.NewComposite(backend)
	require.NoError(t, err)
	assert.Equal(t, "composite", fx.Name)

	fx.Apply(backend)

	assert.Empty(t, backend.Draws)
	assert.Empty(t, backend.Targets)
}

func TestScreenPassIsNotCleared(t *testing.T) {
	fr, backend := newForward(t)
	fr.Begin(mgl32.Ident4())
	fr.End()
	assert.Zero(t, backend.Clears)
	assert.Nil(t, backend.BufferTexture())
}

func TestCube(t *testing.T) {
	backend := coretest.NewRenderer()
	cube, err := renderer3d.Cube(backend)
	require.NoError(t, err)

	assert.Equal(t, 36, cube.IndexCount())
	m := backend.Meshes[0]
	assert.Len(t, m.Desc.Vertices, 24*6)
	for i := 0; i < len(m.Desc.Vertices); i += 6 {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, 0.5, abs(m.Desc.Vertices[i+k]), 1e-6)
		}
	}
}

func TestVignette(t *testing.T) {
	backend := coretest.NewRenderer()
	fx, err := renderer3d.NewVignette(backend, 0.6)
	require.NoError(t, err)
	assert.Equal(t, "vignette", fx.Name)

	fx.Apply(backend)
	require.Len(t, backend.Draws, 1)
	assert.Equal(t, float32(0.6), backend.Draws[0].Uniforms["uStrength"])
	assert.True(t, backend.Pipelines[0].Desc.Blend)
	assert.Equal(t, 3, backend.Draws[0].Mesh.IndexCount())
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
