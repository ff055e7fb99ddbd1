package core

// EventDispatcher routes a single event to typed handlers.
//
//	d := core.NewEventDispatcher(ev)
//	core.Dispatch(d, l.onKeyPressed)
//	core.Dispatch(d, l.onMousePressed)
//
// Only the first Dispatch whose type matches runs; later calls on the same
// dispatcher are skipped.
type EventDispatcher struct {
	ev      Event
	matched bool
}

func NewEventDispatcher(ev Event) *EventDispatcher { return &EventDispatcher{ev: ev} }

// Event returns the event being dispatched.
func (d *EventDispatcher) Event() Event { return d.ev }

// Matched reports whether a handler already ran on this dispatcher.
func (d *EventDispatcher) Matched() bool { return d.matched }

// Dispatch invokes h when the event's concrete type is T and ORs the
// handler's result into the event's handled flag. A type mismatch leaves
// the event untouched. Returns true when h ran.
func Dispatch[T Event](d *EventDispatcher, h func(T) bool) bool {
	if d == nil || d.matched || d.ev == nil {
		return false
	}
	ev, ok := d.ev.(T)
	if !ok {
		return false
	}
	d.matched = true
	if h(ev) {
		d.ev.SetHandled(true)
	}
	return true
}
