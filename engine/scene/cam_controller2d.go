package scene

import "github.com/hubastard/canopy/engine/core"

// OrthoController2D: WASD move, Q/E rotate, Z/X zoom in/out, wheel zoom.
type OrthoController2D struct {
	MoveSpeed float32 // world units per second
	RotSpeed  float32 // radians per second
	ZoomSpeed float32 // zoom factor per second
	Camera    *OrthoCamera2D
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{
		MoveSpeed: 300,
		RotSpeed:  2.0,
		ZoomSpeed: 1.2,
		Camera:    cam,
	}
}

func (cc *OrthoController2D) Update(e *core.Engine, dt float32) {
	in := e.Input
	speed := cc.MoveSpeed * dt / cc.Camera.Zoom
	rot := cc.RotSpeed * dt

	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(speed, 0)
	}

	if in.IsKeyDown(core.KeyQ) {
		cc.Camera.Rotate(rot)
	}
	if in.IsKeyDown(core.KeyE) {
		cc.Camera.Rotate(-rot)
	}

	if in.IsKeyDown(core.KeyZ) {
		cc.Camera.SetZoom(cc.Camera.Zoom * (1 + (cc.ZoomSpeed-1)*dt))
	}
	if in.IsKeyDown(core.KeyX) {
		cc.Camera.SetZoom(cc.Camera.Zoom / (1 + (cc.ZoomSpeed-1)*dt))
	}
}

// OnEvent zooms on mouse wheel and reports whether it consumed ev.
func (cc *OrthoController2D) OnEvent(ev core.Event) bool {
	d := core.NewEventDispatcher(ev)
	core.Dispatch(d, func(s *core.MouseScrolledEvent) bool {
		if s.YOff > 0 {
			cc.Camera.SetZoom(cc.Camera.Zoom * cc.ZoomSpeed)
		} else if s.YOff < 0 {
			cc.Camera.SetZoom(cc.Camera.Zoom / cc.ZoomSpeed)
		}
		return s.YOff != 0
	})
	return ev.Handled()
}
