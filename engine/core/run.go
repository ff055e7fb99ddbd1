package core

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	cfg = cfg.WithDefaults()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := NewEngine(cfg, win, rend)
	eng.SetApp(app)
	win.SetEventCallback(eng.HandleEvent)

	app.OnStart(eng)

	prev := time.Now()
	for !win.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		eng.Step(frame)
	}

	app.OnShutdown(eng)
	eng.Layers.Clear(eng)
	log.Printf("engine exit after %d frames (%s)", eng.FrameCount(), eng.Uptime().Round(time.Millisecond))
	return nil
}
