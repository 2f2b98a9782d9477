package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"wavescope/hal"
	"wavescope/scopekit/fonts/font8x16"
	"wavescope/scopekit/plot"

	"tinygo.org/x/tinyfont"
)

// handlePanic logs v with the current stack, paints it on the display and
// returns it as an error so the host loop stops.
func handlePanic(h hal.HAL, v any) error {
	stack := debug.Stack()
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("wavescope panic: %v", v))
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	lines := []string{
		"wavescope panic:",
		fmt.Sprintf("panic: %v", v),
		"stack:",
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	paintPanic(h, lines)

	return fmt.Errorf("app: panic: %v", v)
}

func paintPanic(h hal.HAL, lines []string) {
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	font := font8x16.Font
	fontHeight := int16(font.GetYAdvance())
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 || fontHeight <= 0 {
		return
	}

	fb.ClearRGB(255, 255, 255)
	fb.Lock()
	s, err := plot.FromFramebuffer(fb)
	if err != nil {
		fb.Unlock()
		_ = fb.Present()
		return
	}
	d := panicDisplay{s: s}

	fg := color.RGBA{A: 255}
	maxW, maxH := int16(s.Rect.Dx()), int16(s.Rect.Dy())
	cols := maxW / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
draw:
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				break draw
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(d, font, fontWidth, 0, y, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	fb.Unlock()
	_ = fb.Present()
}

func drawTextLine(d panicDisplay, font tinyfont.Fonter, fontWidth, x0, y0 int16, s string, fg color.RGBA) {
	x := x0
	for _, r := range s {
		tinyfont.DrawChar(d, font, x, y0, r, fg)
		x += fontWidth
	}
}

// panicDisplay adapts a framebuffer surface to drivers.Displayer.
type panicDisplay struct {
	s *plot.Surface
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.s.Rect.Dx()), int16(d.s.Rect.Dy())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.s.Set(d.s.Rect.Min.X+int(x), d.s.Rect.Min.Y+int(y), c)
}

func (d panicDisplay) Display() error { return nil }

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
