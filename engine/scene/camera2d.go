package scene

import "github.com/go-gl/mathgl/mgl32"

// OrthoCamera2D provides an orthographic camera with position, rotation, zoom.
type OrthoCamera2D struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
	X, Y                     float32
	RotationRad              float32
	Zoom                     float32 // 1 = no zoom
	vp                       mgl32.Mat4
	dirty                    bool
}

// NewOrtho2D centres the camera on the origin of a width x height view.
func NewOrtho2D(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Near: -1, Far: 1, Zoom: 1}
	c.SetViewportPixels(width, height)
	c.Recalculate()
	return c
}

// NewOrthoBounds builds a camera from explicit bounds. Passing bottom > top
// gives a Y-down pixel space, e.g. NewOrthoBounds(0, w, h, 0, -1, 1).
func NewOrthoBounds(left, right, bottom, top, near, far float32) *OrthoCamera2D {
	c := &OrthoCamera2D{
		Left: left, Right: right,
		Bottom: bottom, Top: top,
		Near: near, Far: far,
		Zoom: 1,
	}
	c.Recalculate()
	return c
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	halfW := float32(w) * 0.5
	halfH := float32(h) * 0.5
	c.SetBounds(-halfW, halfW, -halfH, halfH)
}

func (c *OrthoCamera2D) SetBounds(left, right, bottom, top float32) {
	c.Left, c.Right = left, right
	c.Bottom, c.Top = bottom, top
	c.dirty = true
}

// Width and Height are the extents of the bounds regardless of axis direction.
func (c *OrthoCamera2D) Width() float32  { return abs(c.Right - c.Left) }
func (c *OrthoCamera2D) Height() float32 { return abs(c.Top - c.Bottom) }

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (c *OrthoCamera2D) Move(dx, dy float32) { c.X += dx; c.Y += dy; c.dirty = true }
func (c *OrthoCamera2D) Rotate(dRad float32) { c.RotationRad += dRad; c.dirty = true }
func (c *OrthoCamera2D) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
	c.dirty = true
}

func (c *OrthoCamera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return [16]float32(c.vp)
}

func (c *OrthoCamera2D) Recalculate() {
	z := c.Zoom
	if z == 0 {
		z = 1
	}
	proj := mgl32.Ortho(c.Left/z, c.Right/z, c.Bottom/z, c.Top/z, c.Near, c.Far)

	// view = R(-rot) * T(-pos)
	view := mgl32.HomogRotate3DZ(-c.RotationRad).Mul4(mgl32.Translate3D(-c.X, -c.Y, 0))

	c.vp = proj.Mul4(view)
	c.dirty = false
}
