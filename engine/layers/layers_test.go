package layers_test

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/core/coretest"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/gfx/renderer3d"
	"github.com/hubastard/canopy/engine/layers"
	"github.com/hubastard/canopy/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder2D logs every call as a short string.
type recorder2D struct{ calls []string }

func (r *recorder2D) DrawQuad(x, y, w, h float32, _ colors.Color, _ float32) {
	r.calls = append(r.calls, fmt.Sprintf("quad %g,%g", x, y))
}

func (r *recorder2D) DrawTexturedQuad(x, y, w, h float32, _ core.Texture, _ colors.Color, _ float32) {
	r.calls = append(r.calls, fmt.Sprintf("tex %g,%g", x, y))
}

func (r *recorder2D) DrawTexturedQuadUV(x, y, w, h float32, _ core.Texture, _ colors.Color, _ float32, _, _, _, _ float32) {
	r.calls = append(r.calls, fmt.Sprintf("texuv %g,%g", x, y))
}

func (r *recorder2D) SetRenderTarget(t core.RenderTarget) {
	r.calls = append(r.calls, fmt.Sprintf("target %d", t))
}

func (r *recorder2D) BeginScene(vp [16]float32) { r.calls = append(r.calls, "begin") }
func (r *recorder2D) EndScene()                 { r.calls = append(r.calls, "end") }

type dot struct {
	x         float32
	destroyed int
}

func (d *dot) Submit(b renderer2d.Batch) { b.DrawQuad(d.x, 0, 1, 1, colors.White, 0) }
func (d *dot) Destroy()                  { d.destroyed++ }

type plain struct{}

func (plain) Submit(b renderer2d.Batch) {}

func TestLayer2DRenderOrder(t *testing.T) {
	e, _, _ := coretest.NewEngine()
	rec := &recorder2D{}
	l := layers.NewLayer2D(rec, scene.NewOrthoBounds(0, 100, 100, 0, -1, 1))
	l.Add(&dot{x: 1})
	l.Add(&dot{x: 2})
	l.SetRenderTarget(core.RenderTargetBuffer)

	l.Render(e, func(b renderer2d.Batch) { b.DrawQuad(3, 0, 1, 1, colors.Red, 0) })

	assert.Equal(t, []string{
		fmt.Sprintf("target %d", core.RenderTargetBuffer),
		"begin", "quad 1,0", "quad 2,0", "quad 3,0", "end",
	}, rec.calls)
}

func TestLayer2DOwnership(t *testing.T) {
	e, _, _ := coretest.NewEngine()
	l := layers.NewLayer2D(&recorder2D{}, nil)

	kept, given := &dot{}, &dot{}
	l.Add(kept)
	l.Add(kept)
	l.Add(given)
	l.Add(plain{})
	require.Len(t, l.Renderables(), 3)

	assert.True(t, l.Remove(given))
	assert.False(t, l.Remove(given))

	l.OnDetach(e)
	assert.Equal(t, 1, kept.destroyed)
	assert.Zero(t, given.destroyed, "removed renderables belong to the caller")
	assert.Empty(t, l.Renderables())
}

func TestLayer2DWithoutCameraUsesIdentity(t *testing.T) {
	e, _, backend := coretest.NewEngine()
	r2d, err := renderer2d.New(backend, 16)
	require.NoError(t, err)

	l := layers.NewLayer2D(r2d, nil)
	l.Add(&dot{})
	l.OnRender(e, 0)

	require.Len(t, backend.Draws, 1)
	assert.Equal(t, [16]float32(mgl32.Ident4()), backend.Draws[0].Uniforms["uVP"])
}

// lowest records resizes that reach the bottom of the stack.
type lowest struct {
	layers.Layer2D
	resized [][2]int
}

func (l *lowest) OnEvent(e *core.Engine, ev core.Event) { core.HandleLayerEvent(e, l, ev) }
func (l *lowest) OnResize(e *core.Engine, w, h int) bool {
	l.resized = append(l.resized, [2]int{w, h})
	return true
}

func newScene() *scene.Scene {
	return scene.New(scene.NewPerspectiveCamera(60, 100, 100))
}

func TestLayer3DDefaultRenderer(t *testing.T) {
	e, _, backend := coretest.NewEngine()
	s := newScene()
	cube, err := renderer3d.Cube(backend)
	require.NoError(t, err)
	s.Add(scene.NewEntity("cube", cube))

	l := layers.NewLayer3D(s, nil)
	assert.Nil(t, l.Stats(), "no renderer before init")

	require.True(t, e.PushLayer(l))
	require.NotNil(t, l.Renderer())
	assert.InDelta(t, 1280.0/720.0, s.Camera.Aspect, 1e-6, "init adopts the framebuffer size")

	l.OnRender(e, 0)
	require.NotNil(t, l.Stats())
	assert.Equal(t, 1, l.Stats().DrawCalls)
	assert.Len(t, backend.Draws, 1)
}

func TestLayer3DResizePropagates(t *testing.T) {
	e, _, _ := coretest.NewEngine()
	bottom := &lowest{}
	s := newScene()
	l := layers.NewLayer3D(s, nil)
	e.PushLayer(bottom)
	e.PushLayer(l)

	e.HandleEvent(&core.ResizeEvent{W: 1600, H: 900})

	assert.InDelta(t, 16.0/9.0, s.Camera.Aspect, 1e-6)
	w, h := l.Renderer().(*renderer3d.ForwardRenderer).Size()
	assert.Equal(t, [2]int{1600, 900}, [2]int{w, h})
	assert.Equal(t, [][2]int{{1600, 900}}, bottom.resized, "3D layers do not consume resizes")
}

type silentRenderer struct{ begun int }

func (r *silentRenderer) Begin(mgl32.Mat4)          { r.begun++ }
func (r *silentRenderer) Submit(renderer3d.Command) {}
func (r *silentRenderer) End()                      {}
func (r *silentRenderer) Resize(int, int)           {}
func (r *silentRenderer) Stats() *renderer3d.Stats  { return nil }

func TestLayer3DCustomRendererWithoutStats(t *testing.T) {
	e, _, _ := coretest.NewEngine()
	r := &silentRenderer{}
	l := layers.NewLayer3D(newScene(), r)
	e.PushLayer(l)
	l.OnRender(e, 0)

	assert.Same(t, r, l.Renderer())
	assert.Nil(t, l.Stats())
	assert.Equal(t, 1, r.begun)

	l.OnDetach(e)
	assert.Zero(t, l.Scene.Len())
}
