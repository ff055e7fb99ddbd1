package ui

import (
	"math"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/text"
)

type SizeMode int

const (
	SizeModeFit SizeMode = iota
	SizeModeFixed
	SizeModeExpand
)

// axis indexes the [2]float32 pairs below: 0 is x, 1 is y.
type axis int

const (
	axisX axis = 0
	axisY axis = 1
)

// Constraints bound a layout pass. A zero Max means unbounded.
type Constraints struct {
	Min [2]float32
	Max [2]float32
}

type LayoutResult struct {
	Size [2]float32
}

// Context carries what a widget tree needs to lay itself out and draw.
type Context struct {
	Viewport    [4]float32 // x, y, w, h
	DefaultFont *text.Font
	Renderer    renderer2d.Batch
}

type UIElement interface {
	Node() *Base
	Layout(ctx *Context, constraints Constraints) LayoutResult
	Draw(ctx *Context)
}

// Base is the box every widget embeds: rectangle, sizing rules, padding
// and the tree links.
type Base struct {
	parent   UIElement
	children []UIElement
	position [2]float32
	size     [2]float32
	color    colors.Color
	sizing   [2]SizeMode
	fixed    [2]float32
	padding  [4]float32 // left, top, right, bottom
}

func (b *Base) Parent() UIElement       { return b.parent }
func (b *Base) Children() []UIElement   { return b.children }
func (b *Base) Pos() (x, y float32)     { return b.position[0], b.position[1] }
func (b *Base) Size() (w, h float32)    { return b.size[0], b.size[1] }
func (b *Base) SetPos(x, y float32)     { b.position = [2]float32{x, y} }
func (b *Base) SetSize(w, h float32)    { b.size = [2]float32{w, h} }
func (b *Base) SetColor(c colors.Color) { b.color = c }
func (b *Base) Padding() [4]float32     { return b.padding }

// Contains reports whether (x,y) lies inside the laid-out rectangle.
func (b *Base) Contains(x, y float32) bool {
	return x >= b.position[0] && x < b.position[0]+b.size[0] &&
		y >= b.position[1] && y < b.position[1]+b.size[1]
}

func (b *Base) SetPadding(l, t, r, btm float32) {
	b.padding = [4]float32{l, t, r, btm}
}

func (b *Base) adopt(owner UIElement, kids []UIElement) {
	for _, k := range kids {
		k.Node().parent = owner
	}
	b.children = append(b.children, kids...)
}

// moveTo places the box at pos and drags the already laid-out subtree
// along with it.
func (b *Base) moveTo(pos [2]float32) {
	dx, dy := pos[0]-b.position[0], pos[1]-b.position[1]
	b.position = pos
	if dx != 0 || dy != 0 {
		b.shift(dx, dy)
	}
}

func (b *Base) shift(dx, dy float32) {
	for _, k := range b.children {
		n := k.Node()
		n.position[0] += dx
		n.position[1] += dy
		n.shift(dx, dy)
	}
}

// pad is the padding along a, both sides.
func (b *Base) pad(a axis) float32 { return b.padding[a] + b.padding[a+2] }

// inner shrinks c by the padding for laying out children.
func (b *Base) inner(c Constraints) Constraints {
	return Constraints{Max: [2]float32{
		max(0, unbounded(c.Max[0])-b.pad(axisX)),
		max(0, unbounded(c.Max[1])-b.pad(axisY)),
	}}
}

// resolve picks the outer size along a for the given content size
// (padding included).
func (b *Base) resolve(a axis, content float32, c Constraints) float32 {
	hi := unbounded(c.Max[a])
	switch b.sizing[a] {
	case SizeModeFixed:
		if b.fixed[a] > 0 {
			content = b.fixed[a]
		}
	case SizeModeExpand:
		content = hi
	}
	return clamp(content, c.Min[a], hi)
}

// fit runs the common leaf sizing: content plus padding, resolved on both
// axes, stored as the box size.
func (b *Base) fit(w, h float32, c Constraints) LayoutResult {
	b.size = [2]float32{
		b.resolve(axisX, w+b.pad(axisX), c),
		b.resolve(axisY, h+b.pad(axisY), c),
	}
	return LayoutResult{Size: b.size}
}

func (b *Base) drawBackground(r renderer2d.Batch) {
	if b.color[3] <= 0 || b.size[0] <= 0 || b.size[1] <= 0 {
		return
	}
	r.DrawQuad(b.position[0]+b.size[0]/2, b.position[1]+b.size[1]/2, b.size[0], b.size[1], b.color, 0)
}

func unbounded(v float32) float32 {
	if v == 0 {
		return math.MaxFloat32
	}
	return v
}

func clamp(v, lo, hi float32) float32 { return min(max(v, lo), hi) }

// ------ Helper ------

// Common gives widgets the chainable setters, returning the owner.
type Common[T any] struct {
	owner T
	base  Base
}

func NewCommon[T any](owner T) Common[T] { return Common[T]{owner: owner} }

func (c *Common[T]) Node() *Base              { return &c.base }
func (c *Common[T]) Position(x, y float32) T  { c.base.SetPos(x, y); return c.owner }
func (c *Common[T]) Size(w, h float32) T      { c.base.SetSize(w, h); return c.owner }
func (c *Common[T]) Color(col colors.Color) T { c.base.SetColor(col); return c.owner }

func (c *Common[T]) WidthFixed(w float32) T  { return c.setSizing(axisX, SizeModeFixed, w) }
func (c *Common[T]) HeightFixed(h float32) T { return c.setSizing(axisY, SizeModeFixed, h) }
func (c *Common[T]) WidthExpand() T          { return c.setSizing(axisX, SizeModeExpand, 0) }
func (c *Common[T]) HeightExpand() T         { return c.setSizing(axisY, SizeModeExpand, 0) }

func (c *Common[T]) setSizing(a axis, mode SizeMode, v float32) T {
	c.base.sizing[a], c.base.fixed[a] = mode, v
	return c.owner
}

func (c *Common[T]) Padding(all float32) T { return c.Padding4(all, all, all, all) }

func (c *Common[T]) Padding2(horizontal, vertical float32) T {
	return c.Padding4(horizontal, vertical, horizontal, vertical)
}

func (c *Common[T]) Padding4(left, top, right, bottom float32) T {
	c.base.SetPadding(left, top, right, bottom)
	return c.owner
}

func (c *Common[T]) Children(kids ...UIElement) T {
	c.base.adopt(any(c.owner).(UIElement), kids)
	return c.owner
}
