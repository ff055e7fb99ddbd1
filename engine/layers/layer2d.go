// Package layers provides the stock 2D and 3D layers.
package layers

import (
	"slices"

	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/scene"
)

// Renderer2D is the part of the quad batcher a Layer2D drives.
type Renderer2D interface {
	renderer2d.Batch
	SetRenderTarget(t core.RenderTarget)
	BeginScene(vp [16]float32)
	EndScene()
}

var identity = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// Layer2D owns a list of renderables drawn through an orthographic camera.
//
// Types embedding Layer2D that override OnResize must also override
// OnEvent and pass themselves to core.HandleLayerEvent.
type Layer2D struct {
	Renderer Renderer2D
	Camera   *scene.OrthoCamera2D

	target      core.RenderTarget
	renderables []renderer2d.Renderable
}

func NewLayer2D(r Renderer2D, cam *scene.OrthoCamera2D) *Layer2D {
	return &Layer2D{Renderer: r, Camera: cam}
}

// Add transfers ownership of r to the layer and returns it. Adding a
// renderable the layer already owns does nothing.
func (l *Layer2D) Add(r renderer2d.Renderable) renderer2d.Renderable {
	if r != nil && !slices.Contains(l.renderables, r) {
		l.renderables = append(l.renderables, r)
	}
	return r
}

// Remove hands r back to the caller without destroying it.
func (l *Layer2D) Remove(r renderer2d.Renderable) bool {
	i := slices.Index(l.renderables, r)
	if i < 0 {
		return false
	}
	l.renderables = slices.Delete(l.renderables, i, i+1)
	return true
}

func (l *Layer2D) Renderables() []renderer2d.Renderable { return l.renderables }

func (l *Layer2D) SetRenderTarget(t core.RenderTarget) { l.target = t }
func (l *Layer2D) RenderTarget() core.RenderTarget     { return l.target }

// Render draws the owned renderables, then extra, in one scene.
func (l *Layer2D) Render(e *core.Engine, extra func(b renderer2d.Batch)) {
	if l.Renderer == nil {
		return
	}
	vp := identity
	if l.Camera != nil {
		vp = l.Camera.VP()
	}
	l.Renderer.SetRenderTarget(l.target)
	l.Renderer.BeginScene(vp)
	for _, r := range l.renderables {
		r.Submit(l.Renderer)
	}
	if extra != nil {
		extra(l.Renderer)
	}
	l.Renderer.EndScene()
}

func (l *Layer2D) OnInit(e *core.Engine)              {}
func (l *Layer2D) OnTick(e *core.Engine)              {}
func (l *Layer2D) OnUpdate(e *core.Engine, _ float64) {}
func (l *Layer2D) OnRender(e *core.Engine, _ float64) { l.Render(e, nil) }
func (l *Layer2D) OnEvent(e *core.Engine, ev core.Event) {
	core.HandleLayerEvent(e, l, ev)
}
func (l *Layer2D) OnResize(e *core.Engine, w, h int) bool { return false }

// OnDetach destroys every owned renderable that holds resources.
func (l *Layer2D) OnDetach(e *core.Engine) {
	for _, r := range l.renderables {
		if d, ok := r.(renderer2d.Destroyer); ok {
			d.Destroy()
		}
	}
	l.renderables = nil
}
