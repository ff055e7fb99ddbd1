package core

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyTab
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyA
	KeyD
	KeyE
	KeyP
	KeyQ
	KeyS
	KeyW
	KeyX
	KeyZ
	KeyF1
	KeyF2
	KeyF3
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// Has reports whether every bit of m2 is set in m.
func (m Mod) Has(m2 Mod) bool { return m&m2 == m2 }

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)
