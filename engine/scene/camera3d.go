package scene

import "github.com/go-gl/mathgl/mgl32"

// PerspectiveCamera looks from Position at Target.
type PerspectiveCamera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32 // degrees
	Aspect   float32
	Near     float32
	Far      float32
}

func NewPerspectiveCamera(fovY float32, width, height int) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Position: mgl32.Vec3{0, 0, 5},
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     fovY,
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. Degenerate sizes (a minimised
// window) keep the previous aspect.
func (c *PerspectiveCamera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *PerspectiveCamera) LookAt(eye, target mgl32.Vec3) {
	c.Position = eye
	c.Target = target
}

func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *PerspectiveCamera) VP() mgl32.Mat4 { return c.Projection().Mul4(c.View()) }
