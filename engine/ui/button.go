package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

// UIButton is a padded, filled box around one label. Hit-testing is left
// to the owner through Node().Contains.
type UIButton struct {
	Common[*UIButton]
	label *UILabel
}

func Button(caption string) *UIButton {
	b := &UIButton{label: Label(caption).Color(colors.Black)}
	b.Common = NewCommon(b)
	b.base.adopt(b, []UIElement{b.label})
	b.base.color = colors.White
	b.base.SetPadding(10, 10, 10, 10)
	return b
}

func (b *UIButton) BgColor(color colors.Color) *UIButton   { b.base.color = color; return b }
func (b *UIButton) TextColor(color colors.Color) *UIButton { b.label.Color(color); return b }
func (b *UIButton) FontSize(size float32) *UIButton        { b.label.FontSize(size); return b }
func (b *UIButton) Font(font *text.Font) *UIButton         { b.label.Font(font); return b }

func (b *UIButton) Caption() string       { return b.label.Text() }
func (b *UIButton) SetCaption(str string) { b.label.SetText(str) }

func (b *UIButton) Layout(ctx *Context, c Constraints) LayoutResult {
	content := b.label.Layout(ctx, b.base.inner(c)).Size
	return b.base.fit(content[0], content[1], c)
}

func (b *UIButton) Draw(ctx *Context) {
	b.base.drawBackground(ctx.Renderer)
	b.label.base.SetPos(b.base.position[0]+b.base.padding[0], b.base.position[1]+b.base.padding[1])
	b.label.Draw(ctx)
}
