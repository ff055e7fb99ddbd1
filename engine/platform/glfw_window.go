package platform

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/canopy/engine/core"
)

// GLFWWindow implements core.Window and pushes translated events to the
// engine's callback.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(core.Event)
}

// Must be called on the main thread before any GL calls.
func NewGLFWWindow(cfg core.Config) (*GLFWWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	gw := &GLFWWindow{w: win}

	win.SetCloseCallback(func(*glfw.Window) { gw.emit(&core.CloseRequestedEvent{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(&core.ResizeEvent{W: w, H: h})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		x, y = gw.toPixels(x, y)
		gw.emit(&core.MouseMovedEvent{X: x, Y: y})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		if action == glfw.Release {
			gw.emit(&core.KeyReleasedEvent{Key: k, Mods: translateMods(mods)})
			return
		}
		gw.emit(&core.KeyPressedEvent{Key: k, Mods: translateMods(mods), Repeat: action == glfw.Repeat})
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		x, y := gw.toPixels(w.GetCursorPos())
		if action == glfw.Release {
			gw.emit(&core.MouseReleasedEvent{Button: b, X: x, Y: y, Mods: translateMods(mods)})
			return
		}
		gw.emit(&core.MousePressedEvent{Button: b, X: x, Y: y, Mods: translateMods(mods)})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(&core.MouseScrolledEvent{XOff: xoff, YOff: yoff})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// toPixels maps a cursor position from window (screen) coordinates to
// framebuffer pixels, the space layers lay out in. They differ on HiDPI
// displays.
func (g *GLFWWindow) toPixels(x, y float64) (float64, float64) {
	ww, wh := g.w.GetSize()
	fw, fh := g.w.GetFramebufferSize()
	return scaleCursor(x, y, ww, wh, fw, fh)
}

func scaleCursor(x, y float64, winW, winH, fbW, fbH int) (float64, float64) {
	if winW > 0 && fbW > 0 {
		x *= float64(fbW) / float64(winW)
	}
	if winH > 0 && fbH > 0 {
		y *= float64(fbH) / float64(winH)
	}
	return x, y
}

// Destroy releases the window and terminates GLFW.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

var keyMap = map[glfw.Key]core.Key{
	glfw.KeyEscape:    core.KeyEscape,
	glfw.KeySpace:     core.KeySpace,
	glfw.KeyTab:       core.KeyTab,
	glfw.KeyEnter:     core.KeyEnter,
	glfw.KeyBackspace: core.KeyBackspace,
	glfw.KeyUp:        core.KeyUp,
	glfw.KeyDown:      core.KeyDown,
	glfw.KeyLeft:      core.KeyLeft,
	glfw.KeyRight:     core.KeyRight,
	glfw.KeyA:         core.KeyA,
	glfw.KeyD:         core.KeyD,
	glfw.KeyE:         core.KeyE,
	glfw.KeyP:         core.KeyP,
	glfw.KeyQ:         core.KeyQ,
	glfw.KeyS:         core.KeyS,
	glfw.KeyW:         core.KeyW,
	glfw.KeyX:         core.KeyX,
	glfw.KeyZ:         core.KeyZ,
	glfw.KeyF1:        core.KeyF1,
	glfw.KeyF2:        core.KeyF2,
	glfw.KeyF3:        core.KeyF3,
}

func translateKey(k glfw.Key) core.Key {
	if ck, ok := keyMap[k]; ok {
		return ck
	}
	return core.KeyUnknown
}

func translateButton(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft, true
	case glfw.MouseButtonRight:
		return core.MouseRight, true
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle, true
	default:
		return 0, false
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
