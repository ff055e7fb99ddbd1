package core

// EventKind tags the concrete type behind an Event.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventKeyPressed
	EventKeyReleased
	EventMousePressed
	EventMouseReleased
	EventMouseMoved
	EventMouseScrolled
	EventResize
	EventCloseRequested
)

var eventKindNames = [...]string{
	EventUnknown:        "Unknown",
	EventKeyPressed:     "KeyPressed",
	EventKeyReleased:    "KeyReleased",
	EventMousePressed:   "MousePressed",
	EventMouseReleased:  "MouseReleased",
	EventMouseMoved:     "MouseMoved",
	EventMouseScrolled:  "MouseScrolled",
	EventResize:         "Resize",
	EventCloseRequested: "CloseRequested",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "Unknown"
	}
	return eventKindNames[k]
}

// Event is a transient input/window notification. Events travel by pointer
// so layers can mark them handled; they are only valid during dispatch.
type Event interface {
	Kind() EventKind
	Handled() bool
	SetHandled(handled bool)
}

// EventBase carries the handled flag shared by all events.
type EventBase struct{ handled bool }

func (b *EventBase) Handled() bool           { return b.handled }
func (b *EventBase) SetHandled(handled bool) { b.handled = handled }

type KeyPressedEvent struct {
	EventBase
	Key    Key
	Mods   Mod
	Repeat bool
}

func (*KeyPressedEvent) Kind() EventKind { return EventKeyPressed }

type KeyReleasedEvent struct {
	EventBase
	Key  Key
	Mods Mod
}

func (*KeyReleasedEvent) Kind() EventKind { return EventKeyReleased }

type MousePressedEvent struct {
	EventBase
	Button MouseButton
	X, Y   float64
	Mods   Mod
}

func (*MousePressedEvent) Kind() EventKind { return EventMousePressed }

type MouseReleasedEvent struct {
	EventBase
	Button MouseButton
	X, Y   float64
	Mods   Mod
}

func (*MouseReleasedEvent) Kind() EventKind { return EventMouseReleased }

type MouseMovedEvent struct {
	EventBase
	X, Y float64
}

func (*MouseMovedEvent) Kind() EventKind { return EventMouseMoved }

type MouseScrolledEvent struct {
	EventBase
	XOff, YOff float64
}

func (*MouseScrolledEvent) Kind() EventKind { return EventMouseScrolled }

type ResizeEvent struct {
	EventBase
	W, H int
}

func (*ResizeEvent) Kind() EventKind { return EventResize }

type CloseRequestedEvent struct{ EventBase }

func (*CloseRequestedEvent) Kind() EventKind { return EventCloseRequested }
