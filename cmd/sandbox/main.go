package main

import (
	"flag"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/debug"
	glbackend "github.com/hubastard/canopy/engine/gfx/gl"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/gfx/renderer3d"
	"github.com/hubastard/canopy/engine/layers"
	"github.com/hubastard/canopy/engine/platform"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/scene"
	"github.com/hubastard/canopy/engine/text"
)

type App struct {
	sprite string

	fonts *text.FontManager
	r2d   *renderer2d.Renderer2D
	world *scene.Scene
	cubes []*scene.Entity
	menu  *debug.Menu

	spin      bool
	spinSpeed float32
	angle     float32
	showStats bool
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 10) // ~1K scope samples

	var err error
	a.r2d, err = renderer2d.New(e.Renderer, 10000)
	if err != nil {
		log.Fatal(err)
	}
	a.fonts = text.NewFontManager(e.Renderer, e.Config.FontName)

	// 3D scene: a row of cubes behind everything else
	w, h := e.Window.FramebufferSize()
	cam := scene.NewPerspectiveCamera(60, w, h)
	cam.LookAt(mgl32.Vec3{0, 2, 6}, mgl32.Vec3{})
	a.world = scene.New(cam)

	cube, err := renderer3d.Cube(e.Renderer)
	if err != nil {
		log.Fatal(err)
	}
	palette := []colors.Color{colors.Red, colors.Green, colors.Blue}
	for i, c := range palette {
		ent := scene.NewEntity("cube", cube)
		ent.Color = c
		ent.Transform = mgl32.Translate3D(float32(i-1)*2, 0, 0)
		a.cubes = append(a.cubes, a.world.Add(ent))
	}

	fr, err := renderer3d.NewForwardRenderer(e.Renderer)
	if err != nil {
		log.Fatal(err)
	}
	// The scene goes to the off-screen buffer and is composited onto the
	// screen; everything above it draws straight to the screen.
	if composite, err := renderer3d.NewComposite(e.Renderer); err != nil {
		log.Printf("sandbox: composite: %v", err)
	} else {
		fr.SetRenderTarget(core.RenderTargetBuffer)
		fr.SetClearColor(e.Config.ClearColor)
		fr.AddPostEffect(composite)
	}
	if vignette, err := renderer3d.NewVignette(e.Renderer, 0.6); err != nil {
		log.Printf("sandbox: vignette: %v", err)
	} else {
		fr.AddPostEffect(vignette)
	}
	world := layers.NewLayer3D(a.world, fr)
	e.PushLayer(world)

	game, err := newGameLayer(e, a.r2d, a.sprite)
	if err != nil {
		log.Fatal(err)
	}
	e.PushLayer(game)

	e.PushLayer(newStatsLayer(a.r2d, a.fonts, &a.showStats))

	a.spin, a.spinSpeed = true, 1
	a.menu = debug.NewMenu()
	a.menu.AddBool("Spin cubes", &a.spin)
	a.menu.AddFloat("Spin speed", &a.spinSpeed, 0, 5, 0.5)
	a.menu.AddBool("Stats panel", &a.showStats)
	a.menu.AddAction("Dump profile", dumpProfile)
	a.menu.AddAction("Quit", e.Window.RequestClose)

	e.PushLayer(debug.NewOverlay(a.r2d, debug.Deps{
		App:    e,
		Memory: profiler.Runtime{},
		Fonts:  a.fonts,
		Render: world,
		Menu:   a.menu,
	}))
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	if !a.spin {
		return
	}
	a.angle += a.spinSpeed * float32(dt)
	for i, c := range a.cubes {
		c.Transform = mgl32.Translate3D(float32(i-1)*2, 0, 0).Mul4(mgl32.HomogRotate3DY(a.angle * float32(i+1)))
	}
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	core.Dispatch(core.NewEventDispatcher(ev), func(k *core.KeyPressedEvent) bool {
		if k.Key == core.KeyEscape {
			e.Window.RequestClose()
			return true
		}
		return false
	})
}

func (a *App) OnShutdown(e *core.Engine) {
	if a.fonts != nil {
		a.fonts.Close()
	}
}

func dumpProfile() {
	if path, err := profiler.OpenProfilerGraph(); err == nil {
		log.Println("speedscope dump:", path)
	} else {
		log.Println("profiler dump error:", err)
	}
}

func main() {
	cfg := core.Config{ClearColor: colors.DarkGray}
	flag.StringVar(&cfg.Title, "title", "Canopy Sandbox", "window title")
	flag.IntVar(&cfg.Width, "width", 1280, "window width in pixels")
	flag.IntVar(&cfg.Height, "height", 720, "window height in pixels")
	flag.BoolVar(&cfg.VSync, "vsync", true, "wait for vertical sync")
	flag.StringVar(&cfg.FontName, "font", "", "system font file for the overlay (default Go Mono)")
	sprite := flag.String("sprite", "", "PNG used for the player sprite (default generated)")
	flag.Parse()

	app := &App{sprite: *sprite}

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		var err error
		win, err = platform.NewGLFWWindow(cfg)
		return win, err
	}
	newRenderer := func(w core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(w, cfg)
	}

	err := core.Run(app, cfg, newWindow, newRenderer)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		log.Fatal(err)
	}
}
