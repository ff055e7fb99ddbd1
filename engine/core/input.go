package core

import "github.com/kamstrup/intmap"

// Input tracks the latest key, button and cursor state seen by the engine.
type Input struct {
	keys           *intmap.Map[Key, bool]
	buttons        *intmap.Map[MouseButton, bool]
	mods           Mod
	mouseX, mouseY float64
}

func NewInput() *Input {
	return &Input{
		keys:    intmap.New[Key, bool](64),
		buttons: intmap.New[MouseButton, bool](4),
	}
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case *KeyPressedEvent:
		in.keys.Put(e.Key, true)
		in.mods = e.Mods
	case *KeyReleasedEvent:
		in.keys.Del(e.Key)
		in.mods = e.Mods
	case *MousePressedEvent:
		in.buttons.Put(e.Button, true)
		in.mouseX, in.mouseY = e.X, e.Y
	case *MouseReleasedEvent:
		in.buttons.Del(e.Button)
		in.mouseX, in.mouseY = e.X, e.Y
	case *MouseMovedEvent:
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

func (in *Input) IsKeyDown(k Key) bool {
	down, _ := in.keys.Get(k)
	return down
}

func (in *Input) IsMouseDown(b MouseButton) bool {
	down, _ := in.buttons.Get(b)
	return down
}

func (in *Input) Mods() Mod                 { return in.mods }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }
