package ui

import (
	"github.com/hubastard/canopy/engine/colors"
)

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

type LayoutDirection int

const (
	LayoutHorizontal LayoutDirection = iota
	LayoutVertical
)

// UIView is a flex container: children flow along the main axis separated
// by gap. Children that expand along the main axis split whatever space
// the fixed ones leave, so they collapse inside a view that only fits its
// content.
type UIView struct {
	Common[*UIView]
	gap        float32
	mainAlign  Align
	crossAlign Align
	flow       LayoutDirection
}

func View(children ...UIElement) *UIView {
	v := &UIView{gap: 10}
	v.Common = NewCommon(v)
	v.base.adopt(v, children)
	return v
}

func (v *UIView) BgColor(color colors.Color) *UIView              { v.base.color = color; return v }
func (v *UIView) FlowDirection(direction LayoutDirection) *UIView { v.flow = direction; return v }
func (v *UIView) Gap(g float32) *UIView                           { v.gap = g; return v }
func (v *UIView) AlignMain(a Align) *UIView                       { v.mainAlign = a; return v }
func (v *UIView) AlignCross(a Align) *UIView                      { v.crossAlign = a; return v }

func (v *UIView) axes() (main, cross axis) {
	if v.flow == LayoutVertical {
		return axisY, axisX
	}
	return axisX, axisY
}

func (v *UIView) Layout(ctx *Context, c Constraints) LayoutResult {
	b := &v.base
	main, cross := v.axes()
	inner := b.inner(c)

	sizes := make([][2]float32, len(b.children))
	var used, crossMax float32
	expanding := 0
	for i, k := range b.children {
		sizes[i] = k.Layout(ctx, inner).Size
		n := k.Node()
		if n.sizing[cross] != SizeModeExpand {
			crossMax = max(crossMax, sizes[i][cross])
		}
		if n.sizing[main] == SizeModeExpand {
			expanding++ // sized from the leftover space below
			continue
		}
		used += sizes[i][main]
	}
	if n := len(b.children); n > 1 {
		used += v.gap * float32(n-1)
	}

	b.size[main] = b.resolve(main, used+b.pad(main), c)
	b.size[cross] = b.resolve(cross, crossMax+b.pad(cross), c)
	innerMain := max(0, b.size[main]-b.pad(main))
	innerCross := max(0, b.size[cross]-b.pad(cross))

	free := max(0, innerMain-used)
	if expanding > 0 {
		share := free / float32(expanding)
		for i, k := range b.children {
			if k.Node().sizing[main] == SizeModeExpand {
				sizes[i][main] = share
			}
		}
		free = 0
	}

	cursor := b.position[main] + b.padding[main]
	switch v.mainAlign {
	case AlignCenter:
		cursor += free / 2
	case AlignEnd:
		cursor += free
	}

	for i, k := range b.children {
		n := k.Node()
		size := sizes[i]
		if v.crossAlign == AlignStretch || n.sizing[cross] == SizeModeExpand {
			size[cross] = innerCross
		}
		size[cross] = clamp(size[cross], 0, innerCross)

		var pos [2]float32
		pos[main] = cursor
		pos[cross] = b.position[cross] + b.padding[cross]
		switch v.crossAlign {
		case AlignCenter:
			pos[cross] += (innerCross - size[cross]) / 2
		case AlignEnd:
			pos[cross] += innerCross - size[cross]
		}
		n.moveTo(pos)
		n.size = size
		cursor += size[main] + v.gap
	}

	return LayoutResult{Size: b.size}
}

// ChildAt returns the index and element of the direct child under (x,y),
// or -1 and nil.
func (v *UIView) ChildAt(x, y float32) (int, UIElement) {
	for i, k := range v.base.children {
		if k.Node().Contains(x, y) {
			return i, k
		}
	}
	return -1, nil
}

// Draw lays the tree out when v is the root, then draws it.
func (v *UIView) Draw(ctx *Context) {
	if v.base.parent == nil {
		v.base.SetPos(ctx.Viewport[0], ctx.Viewport[1])
		v.Layout(ctx, Constraints{Max: [2]float32{ctx.Viewport[2], ctx.Viewport[3]}})
	}
	v.base.drawBackground(ctx.Renderer)
	for _, k := range v.base.children {
		k.Draw(ctx)
	}
}
