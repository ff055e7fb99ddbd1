package ui

import (
	"testing"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quad struct {
	cx, cy, w, h float32
	textured     bool
}

type recordingBatch struct{ quads []quad }

func (b *recordingBatch) DrawQuad(x, y, w, h float32, _ colors.Color, _ float32) {
	b.quads = append(b.quads, quad{x, y, w, h, false})
}

func (b *recordingBatch) DrawTexturedQuad(x, y, w, h float32, _ core.Texture, _ colors.Color, _ float32) {
	b.quads = append(b.quads, quad{x, y, w, h, true})
}

func (b *recordingBatch) DrawTexturedQuadUV(x, y, w, h float32, _ core.Texture, _ colors.Color, _ float32, _, _, _, _ float32) {
	b.quads = append(b.quads, quad{x, y, w, h, true})
}

func TestLabelRightAlign(t *testing.T) {
	font := text.Monospace(16, 9)
	const margin = 300

	for _, s := range []string{"", "a", "60 fps", "Post FX: 12.5ms", "a much longer caption than the others"} {
		l := Label(s).Font(font)
		l.RightAlign(margin)
		x, _ := l.Node().Pos()
		assert.InDelta(t, margin, x+l.Width(), 1e-4, "caption %q", s)
	}
}

func TestLabelSetText(t *testing.T) {
	l := Label("old").Font(text.Monospace(10, 5))
	l.SetText("newer")
	assert.Equal(t, "newer", l.Text())
	assert.Equal(t, float32(25), l.Width())
}

func TestLabelWithoutFont(t *testing.T) {
	l := Label("orphan")
	assert.Equal(t, float32(0), l.Width())
	l.RightAlign(100)
	x, _ := l.Node().Pos()
	assert.Equal(t, float32(100), x)

	b := &recordingBatch{}
	l.Submit(b)
	assert.Empty(t, b.quads)
}

func TestSpriteSubmitUsesCentre(t *testing.T) {
	b := &recordingBatch{}
	NewSprite(10, 20, 30, 40, colors.Red).Submit(b)
	NewTexturedSprite(0, 0, 8, 8, &fakeTexture{}).Submit(b)
	NewSprite(0, 0, 0, 10, colors.Red).Submit(b)

	require.Len(t, b.quads, 2, "empty sprite draws nothing")
	assert.Equal(t, quad{25, 40, 30, 40, false}, b.quads[0])
	assert.True(t, b.quads[1].textured)
}

func TestSpriteContains(t *testing.T) {
	s := NewSprite(10, 10, 5, 5, colors.White)
	assert.True(t, s.Contains(10, 10))
	assert.True(t, s.Contains(14.9, 14.9))
	assert.False(t, s.Contains(15, 12))
	assert.False(t, s.Contains(9, 12))
}

func TestVerticalViewStacksButtons(t *testing.T) {
	font := text.Monospace(16, 8)
	a := Button("one").Font(font)
	b := Button("two").Font(font)
	root := View(a, b).FlowDirection(LayoutVertical).Gap(4).Padding(10)

	batch := &recordingBatch{}
	root.Draw(&Context{Viewport: [4]float32{0, 0, 800, 600}, DefaultFont: font, Renderer: batch})

	ax, ay := a.Node().Pos()
	_, ah := a.Node().Size()
	bx, by := b.Node().Pos()
	assert.Equal(t, float32(10), ax)
	assert.Equal(t, ax, bx)
	assert.Equal(t, ay+ah+4, by)

	assert.True(t, a.Node().Contains(ax+1, ay+1))
	assert.False(t, a.Node().Contains(bx+1, by+1))
	assert.Equal(t, "two", b.Caption())
}

type fakeTexture struct{}

func (*fakeTexture) Width() int  { return 8 }
func (*fakeTexture) Height() int { return 8 }

func TestNestedViewFollowsParent(t *testing.T) {
	font := text.Monospace(16, 8)
	btn := Button("a").Font(font)
	inner := View(btn).Padding(5)
	root := View(Label("title").Font(font), inner).FlowDirection(LayoutVertical).Padding(10).Gap(4)

	root.Draw(&Context{Viewport: [4]float32{100, 50, 800, 600}, DefaultFont: font, Renderer: &recordingBatch{}})

	ix, iy := inner.Node().Pos()
	assert.InDelta(t, 110, ix, 1e-3)
	assert.InDelta(t, 50+10+text.LineHeight(font)+4, iy, 1e-3)

	bx, by := btn.Node().Pos()
	assert.InDelta(t, ix+5, bx, 1e-3)
	assert.InDelta(t, iy+5, by, 1e-3)
	assert.Same(t, inner, btn.Node().Parent())
}

func TestExpandingChildTakesFreeSpace(t *testing.T) {
	font := text.Monospace(16, 8)
	a := Button("a").Font(font)
	b := Button("b").Font(font).WidthExpand()
	root := View(a, b).Gap(0).WidthExpand()

	root.Draw(&Context{Viewport: [4]float32{0, 0, 800, 600}, DefaultFont: font, Renderer: &recordingBatch{}})

	aw, _ := a.Node().Size()
	bx, _ := b.Node().Pos()
	bw, _ := b.Node().Size()
	assert.Equal(t, float32(28), aw, "caption plus padding")
	assert.Equal(t, aw, bx)
	assert.Equal(t, float32(800), aw+bw)
}

func TestChildAt(t *testing.T) {
	font := text.Monospace(16, 8)
	a, b := Button("one").Font(font), Button("two").Font(font)
	root := View(a, b).FlowDirection(LayoutVertical)
	root.Draw(&Context{Viewport: [4]float32{0, 0, 800, 600}, DefaultFont: font, Renderer: &recordingBatch{}})

	x, y := b.Node().Pos()
	i, el := root.ChildAt(x+1, y+1)
	assert.Equal(t, 1, i)
	assert.Same(t, b, el)

	i, el = root.ChildAt(700, 500)
	assert.Equal(t, -1, i)
	assert.Nil(t, el)
}

func TestWrappedLabelBreaksAtWords(t *testing.T) {
	font := text.Monospace(10, 10)
	l := Label("aa bb cc").Font(font).MaxWidth(50)
	res := l.Layout(&Context{DefaultFont: font}, Constraints{})

	assert.Equal(t, float32(50), res.Size[0], "two words per line")
	assert.InDelta(t, 2*text.LineHeight(font), res.Size[1], 1e-4)
}
