package ui

import (
	"strings"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/text"
)

// UILabel is a line (or word-wrapped block) of text. It works both inside
// a laid-out tree and standalone as a renderer2d.Renderable.
type UILabel struct {
	Common[*UILabel]
	text     string
	fontSize float32
	font     *text.Font
	wrap     bool
	maxWidth float32
	wrapped  string // text as last laid out, "" until then
}

func Label(str string) *UILabel {
	l := &UILabel{text: str, fontSize: 16}
	l.Common = NewCommon(l)
	l.base.color = colors.White
	return l
}

func (l *UILabel) FontSize(size float32) *UILabel { l.fontSize = size; return l }
func (l *UILabel) Color(c colors.Color) *UILabel  { l.base.color = c; return l }
func (l *UILabel) Wrap(enabled bool) *UILabel     { l.wrap = enabled; return l }

// MaxWidth caps the wrap width; a positive width turns wrapping on.
func (l *UILabel) MaxWidth(width float32) *UILabel {
	l.maxWidth = width
	l.wrap = l.wrap || width > 0
	return l
}

// Font sets the label's font and adopts its native pixel size.
func (l *UILabel) Font(font *text.Font) *UILabel {
	l.font = font
	if font != nil {
		l.fontSize = font.SizePx
	}
	return l
}

func (l *UILabel) Text() string { return l.text }

// SetText replaces the caption; the next Layout or Submit picks it up.
func (l *UILabel) SetText(str string) {
	l.text = str
	l.wrapped = ""
}

// Width is the unwrapped width of the caption in the label's font.
func (l *UILabel) Width() float32 {
	if l.font == nil || l.text == "" {
		return 0
	}
	w, _ := text.MeasureText(l.font, l.text, l.fontSize)
	return w
}

// RightAlign moves the label horizontally so its text ends at margin.
func (l *UILabel) RightAlign(margin float32) {
	l.base.position[0] = margin - l.Width()
}

// Submit draws the label at its own position, outside any layout pass.
func (l *UILabel) Submit(b renderer2d.Batch) {
	if l.text == "" || l.font == nil || l.base.color[3] <= 0 {
		return
	}
	text.DrawText(b, l.font, l.base.position[0], l.base.position[1], l.text, l.base.color)
}

func (l *UILabel) Layout(ctx *Context, c Constraints) LayoutResult {
	if l.font == nil {
		l.font = ctx.DefaultFont
	}
	if l.font == nil {
		return LayoutResult{}
	}

	limit := c.Max[0]
	if l.maxWidth > 0 && (limit == 0 || l.maxWidth < limit) {
		limit = l.maxWidth
	}
	if limit > 0 {
		limit = max(0, limit-l.base.pad(axisX))
	}

	l.wrapped = l.text
	if l.wrap && limit > 0 {
		l.wrapped = l.wrapWords(limit)
	}
	var w, h float32
	if l.wrapped != "" {
		w, h = text.MeasureText(l.font, l.wrapped, l.fontSize)
	}
	return l.base.fit(w, h, c)
}

func (l *UILabel) Draw(ctx *Context) {
	s := l.wrapped
	if s == "" {
		s = l.text
	}
	if s == "" || l.font == nil || l.base.color[3] <= 0 {
		return
	}
	text.DrawText(ctx.Renderer, l.font, l.base.position[0]+l.base.padding[0], l.base.position[1]+l.base.padding[1], s, l.base.color)
}

// wrapWords greedily breaks every paragraph of the caption so no line
// exceeds limit, except single words longer than limit.
func (l *UILabel) wrapWords(limit float32) string {
	measure := func(s string) float32 {
		w, _ := text.MeasureText(l.font, s, l.fontSize)
		return w
	}
	space := measure(" ")

	var out []string
	for _, para := range strings.Split(l.text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line, lineW := words[0], measure(words[0])
		for _, word := range words[1:] {
			ww := measure(word)
			if lineW+space+ww > limit {
				out = append(out, line)
				line, lineW = word, ww
				continue
			}
			line += " " + word
			lineW += space + ww
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
