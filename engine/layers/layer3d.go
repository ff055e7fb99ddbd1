package layers

import (
	"log"

	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/renderer3d"
	"github.com/hubastard/canopy/engine/scene"
)

// Layer3D draws a scene through a perspective camera.
type Layer3D struct {
	Scene    *scene.Scene
	renderer renderer3d.Renderer
}

// NewLayer3D binds s to r. A nil r is replaced by a ForwardRenderer built
// on the engine renderer when the layer is initialised.
func NewLayer3D(s *scene.Scene, r renderer3d.Renderer) *Layer3D {
	return &Layer3D{Scene: s, renderer: r}
}

func (l *Layer3D) Renderer() renderer3d.Renderer { return l.renderer }

// Stats is the renderer's per-frame timing snapshot, nil without one.
func (l *Layer3D) Stats() *renderer3d.Stats {
	if l.renderer == nil {
		return nil
	}
	return l.renderer.Stats()
}

func (l *Layer3D) OnInit(e *core.Engine) {
	if l.renderer == nil && e.Renderer != nil {
		fr, err := renderer3d.NewForwardRenderer(e.Renderer)
		if err != nil {
			log.Printf("layer3d: default renderer: %v", err)
		} else {
			l.renderer = fr
		}
	}
	if e.Window != nil {
		w, h := e.Window.FramebufferSize()
		l.OnResize(e, w, h)
	}
}

func (l *Layer3D) OnTick(e *core.Engine)              {}
func (l *Layer3D) OnUpdate(e *core.Engine, _ float64) {}

func (l *Layer3D) OnRender(e *core.Engine, _ float64) {
	if l.renderer == nil || l.Scene == nil || l.Scene.Camera == nil {
		return
	}
	l.renderer.Begin(l.Scene.Camera.VP())
	for _, ent := range l.Scene.Entities() {
		l.renderer.Submit(renderer3d.Command{Mesh: ent.Mesh, Model: ent.Transform, Color: ent.Color})
	}
	l.renderer.End()
}

func (l *Layer3D) OnEvent(e *core.Engine, ev core.Event) { core.HandleLayerEvent(e, l, ev) }

// OnResize never consumes the event so lower layers see it too.
func (l *Layer3D) OnResize(e *core.Engine, w, h int) bool {
	if l.Scene != nil && l.Scene.Camera != nil {
		l.Scene.Camera.SetViewport(w, h)
	}
	if l.renderer != nil {
		l.renderer.Resize(w, h)
	}
	return false
}

func (l *Layer3D) OnDetach(e *core.Engine) {
	if l.Scene != nil {
		l.Scene.Clear()
	}
}
