package core

// Layer is one slice of the screen. Hooks run on the render thread in
// frame order: OnTick (fixed step), OnUpdate (per frame), events as they
// arrive, OnRender.
type Layer interface {
	OnInit(e *Engine)
	OnTick(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	// OnEvent must finish with HandleLayerEvent(e, l, ev) unless the layer
	// marked the event handled.
	OnEvent(e *Engine, ev Event)
	// OnResize returns true to consume the resize.
	OnResize(e *Engine, w, h int) bool
	// OnDetach releases everything the layer owns.
	OnDetach(e *Engine)
}

type LayerState uint8

const (
	LayerUninitialized LayerState = iota
	LayerInitialized
	LayerActive
	LayerDestroyed
)

func (s LayerState) String() string {
	switch s {
	case LayerUninitialized:
		return "Uninitialized"
	case LayerInitialized:
		return "Initialized"
	case LayerActive:
		return "Active"
	case LayerDestroyed:
		return "Destroyed"
	}
	return "Invalid"
}

// HandleLayerEvent is the generic bookkeeping shared by every layer.
// Handled events stop here; resizes are routed to l.OnResize.
func HandleLayerEvent(e *Engine, l Layer, ev Event) {
	if ev == nil || ev.Handled() {
		return
	}
	d := NewEventDispatcher(ev)
	Dispatch(d, func(r *ResizeEvent) bool { return l.OnResize(e, r.W, r.H) })
}
