package debug

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/scratch"
	"github.com/hubastard/canopy/engine/ui"
)

type ItemKind uint8

const (
	ItemBool ItemKind = iota
	ItemAction
	ItemFloat
)

// Item is one entry of the debug menu. It points at state owned by the
// caller.
type Item struct {
	Name string
	Kind ItemKind

	Bool   *bool
	Action func()

	Float          *float32
	Min, Max, Step float32

	button *ui.UIButton
}

// Caption is the text shown for the item, e.g. "[x] Wireframe" or
// "Speed: 1.5".
func (it *Item) Caption() string {
	m := scratch.Mark()
	b := scratch.F()
	switch it.Kind {
	case ItemBool:
		if it.Bool != nil && *it.Bool {
			b.S("[x] ")
		} else {
			b.S("[ ] ")
		}
		b.S(it.Name)
	case ItemFloat:
		b.S(it.Name).S(": ")
		if it.Float != nil {
			b.F64(float64(*it.Float), 1)
		}
	default:
		b.S(it.Name)
	}
	return scratch.StringFrom(m)
}

// activate applies a click. back steps floats down instead of up.
func (it *Item) activate(back bool) {
	switch it.Kind {
	case ItemBool:
		if it.Bool != nil {
			*it.Bool = !*it.Bool
		}
	case ItemAction:
		if it.Action != nil {
			it.Action()
		}
	case ItemFloat:
		if it.Float == nil {
			return
		}
		v := *it.Float + it.Step
		if back {
			v = *it.Float - it.Step
		}
		*it.Float = min(max(v, it.Min), it.Max)
	}
}

var (
	menuPanelColor  = colors.Black.WithAlpha(0.6)
	menuButtonColor = colors.DarkGray
)

// Menu is the debug menu. It is hidden until toggled; while visible it
// draws its items as a column of buttons and consumes clicks on them.
type Menu struct {
	X, Y float32 // top-left corner in pixels

	items    []*Item
	visible  bool
	view     *ui.UIView
	dirty    bool
	captured bool
}

func NewMenu() *Menu { return &Menu{X: 16, Y: 16} }

func (m *Menu) Visible() bool     { return m.visible }
func (m *Menu) SetVisible(v bool) { m.visible = v; m.captured = false }
func (m *Menu) Toggle()           { m.SetVisible(!m.visible) }
func (m *Menu) Items() []*Item    { return m.items }

func (m *Menu) AddBool(name string, v *bool) *Item {
	return m.add(&Item{Name: name, Kind: ItemBool, Bool: v})
}

func (m *Menu) AddAction(name string, f func()) *Item {
	return m.add(&Item{Name: name, Kind: ItemAction, Action: f})
}

// AddFloat adds a value stepped by step on click (down with Shift held)
// and clamped to [lo, hi].
func (m *Menu) AddFloat(name string, v *float32, lo, hi, step float32) *Item {
	return m.add(&Item{Name: name, Kind: ItemFloat, Float: v, Min: lo, Max: hi, Step: step})
}

func (m *Menu) add(it *Item) *Item {
	m.items = append(m.items, it)
	m.dirty = true
	return it
}

// OnUpdate refreshes the captions from the values they point at.
func (m *Menu) OnUpdate() {
	for _, it := range m.items {
		if it.button == nil {
			continue
		}
		if c := it.Caption(); c != it.button.Caption() {
			it.button.SetCaption(c)
		}
	}
}

func (m *Menu) build() {
	kids := make([]ui.UIElement, 0, len(m.items))
	for _, it := range m.items {
		it.button = ui.Button(it.Caption()).
			BgColor(menuButtonColor).
			TextColor(colors.White).
			Padding2(10, 6)
		kids = append(kids, it.button)
	}
	m.view = ui.View(kids...).
		FlowDirection(ui.LayoutVertical).
		AlignCross(ui.AlignStretch).
		Gap(4).
		Padding(8).
		BgColor(menuPanelColor)
	m.dirty = false
}

// Render lays the menu out at (X, Y) and draws it.
func (m *Menu) Render(ctx *ui.Context) {
	if m.view == nil || m.dirty {
		m.build()
	}
	local := *ctx
	local.Viewport = [4]float32{
		ctx.Viewport[0] + m.X,
		ctx.Viewport[1] + m.Y,
		max(ctx.Viewport[2]-m.X, 0),
		max(ctx.Viewport[3]-m.Y, 0),
	}
	m.view.Draw(&local)
}

// OnMousePressed returns true when the press lands on the menu, running
// the item under the cursor if there is one.
func (m *Menu) OnMousePressed(ev *core.MousePressedEvent) bool {
	if !m.visible || m.view == nil {
		return false
	}
	x, y := float32(ev.X), float32(ev.Y)
	if !m.view.Node().Contains(x, y) {
		return false
	}
	m.captured = true
	if ev.Button != core.MouseLeft {
		return true
	}
	// children are built in item order
	if i, _ := m.view.ChildAt(x, y); i >= 0 && i < len(m.items) {
		m.items[i].activate(ev.Mods.Has(core.ModShift))
	}
	return true
}

// OnMouseReleased returns true when the matching press was taken by the
// menu.
func (m *Menu) OnMouseReleased(ev *core.MouseReleasedEvent) bool {
	if !m.captured {
		return false
	}
	m.captured = false
	return true
}
