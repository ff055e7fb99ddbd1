package core_test

import (
	"github.com/hubastard/canopy/engine/core"
)

// recLayer is a layer that logs every hook into a shared journal.
type recLayer struct {
	name    string
	journal *[]string

	consume  func(ev core.Event) bool
	onUpdate func(e *core.Engine)
	onEvent  func(e *core.Engine, ev core.Event)
	resize   bool
}

func newRecLayer(name string, journal *[]string) *recLayer {
	return &recLayer{name: name, journal: journal}
}

func (p *recLayer) log(s string) { *p.journal = append(*p.journal, p.name+"."+s) }

func (p *recLayer) OnInit(e *core.Engine)              { p.log("init") }
func (p *recLayer) OnTick(e *core.Engine)              { p.log("tick") }
func (p *recLayer) OnRender(e *core.Engine, _ float64) { p.log("render") }
func (p *recLayer) OnDetach(e *core.Engine)            { p.log("detach") }

func (p *recLayer) OnUpdate(e *core.Engine, _ float64) {
	p.log("update")
	if p.onUpdate != nil {
		p.onUpdate(e)
	}
}

func (p *recLayer) OnEvent(e *core.Engine, ev core.Event) {
	p.log("event:" + ev.Kind().String())
	if p.onEvent != nil {
		p.onEvent(e, ev)
	}
	if p.consume != nil && p.consume(ev) {
		ev.SetHandled(true)
		return
	}
	core.HandleLayerEvent(e, p, ev)
}

func (p *recLayer) OnResize(e *core.Engine, w, h int) bool {
	p.log("resize")
	return p.resize
}

// recordingApp logs the App hooks into the same journal.
type recordingApp struct {
	journal *[]string
}

func (a *recordingApp) log(s string) { *a.journal = append(*a.journal, "app."+s) }

func (a *recordingApp) OnStart(e *core.Engine)             { a.log("start") }
func (a *recordingApp) OnUpdate(e *core.Engine, _ float64) { a.log("update") }
func (a *recordingApp) OnRender(e *core.Engine, _ float64) { a.log("render") }
func (a *recordingApp) OnEvent(e *core.Engine, ev core.Event) {
	a.log("event:" + ev.Kind().String())
}
func (a *recordingApp) OnShutdown(e *core.Engine) { a.log("shutdown") }
