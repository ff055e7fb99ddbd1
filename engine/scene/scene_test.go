package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/core/coretest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(vp [16]float32, x, y float32) (float32, float32) {
	p := mgl32.Mat4(vp).Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return p.X(), p.Y()
}

func TestOrthoBoundsPixelSpace(t *testing.T) {
	cam := NewOrthoBounds(0, 800, 600, 0, -1, 1)
	vp := cam.VP()

	x, y := project(vp, 0, 0)
	assert.InDelta(t, -1, x, 1e-5)
	assert.InDelta(t, 1, y, 1e-5, "top-left is the top of clip space")

	x, y = project(vp, 800, 600)
	assert.InDelta(t, 1, x, 1e-5)
	assert.InDelta(t, -1, y, 1e-5)

	assert.Equal(t, float32(800), cam.Width())
	assert.Equal(t, float32(600), cam.Height())
}

func TestOrthoSetBoundsMarksDirty(t *testing.T) {
	cam := NewOrthoBounds(0, 100, 100, 0, -1, 1)
	cam.SetBounds(0, 200, 100, 0)
	x, _ := project(cam.VP(), 200, 0)
	assert.InDelta(t, 1, x, 1e-5)
}

func TestOrthoCentredMoveAndZoom(t *testing.T) {
	cam := NewOrtho2D(200, 100)
	cam.Move(50, 0)
	x, _ := project(cam.VP(), 50, 0)
	assert.InDelta(t, 0, x, 1e-5, "camera position maps to the centre")

	cam.SetZoom(2)
	x, _ = project(cam.VP(), 100, 0)
	assert.InDelta(t, 1, x, 1e-5)

	cam.SetZoom(0)
	assert.Equal(t, float32(0.05), cam.Zoom)
}

func TestPerspectiveViewport(t *testing.T) {
	cam := NewPerspectiveCamera(60, 1600, 900)
	assert.InDelta(t, 16.0/9.0, cam.Aspect, 1e-6)

	cam.SetViewport(0, 0)
	assert.InDelta(t, 16.0/9.0, cam.Aspect, 1e-6)

	cam.LookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	p := cam.VP().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p.X()/p.W(), 1e-5)
	assert.InDelta(t, 0, p.Y()/p.W(), 1e-5)
}

func TestSceneEntities(t *testing.T) {
	s := New(NewPerspectiveCamera(45, 4, 3))
	a := s.Add(NewEntity("a", nil))
	b := s.Add(NewEntity("b", nil))
	require.Equal(t, 2, s.Len())
	assert.Equal(t, mgl32.Ident4(), a.Transform)

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.Equal(t, []*Entity{b}, s.Entities())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestControllerKeys(t *testing.T) {
	e, _, _ := coretest.NewEngine()
	cam := NewOrtho2D(100, 100)
	cc := NewOrthoController2D(cam)

	e.Input.Handle(&core.KeyPressedEvent{Key: core.KeyD})
	cc.Update(e, 0.5)
	assert.InDelta(t, cc.MoveSpeed*0.5, cam.X, 1e-4)

	e.Input.Handle(&core.KeyReleasedEvent{Key: core.KeyD})
	e.Input.Handle(&core.KeyPressedEvent{Key: core.KeyQ})
	cc.Update(e, 1)
	assert.InDelta(t, cc.RotSpeed, cam.RotationRad, 1e-5)
}

func TestControllerWheel(t *testing.T) {
	cam := NewOrtho2D(100, 100)
	cc := NewOrthoController2D(cam)

	assert.True(t, cc.OnEvent(&core.MouseScrolledEvent{YOff: 1}))
	assert.InDelta(t, cc.ZoomSpeed, cam.Zoom, 1e-5)
	assert.False(t, cc.OnEvent(&core.MouseScrolledEvent{}))
	assert.False(t, cc.OnEvent(&core.MouseMovedEvent{}))
}
