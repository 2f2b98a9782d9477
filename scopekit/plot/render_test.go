package plot

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"wavescope/hal"
)

func newTestSurface() *Surface {
	return NewSurface(image.Rect(0, 0, MinWidth, MinHeight))
}

func render(t *testing.T, ring *Ring, status string) *Surface {
	t.Helper()
	s := newTestSurface()
	if err := NewRenderer().Render(s, ring, status); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return s
}

func TestLayoutConstants(t *testing.T) {
	if CenterY != 430 || StripTop != 390 || StripBottom != 470 {
		t.Fatalf("layout: center=%d top=%d bottom=%d", CenterY, StripTop, StripBottom)
	}
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		name string
		smp  Sample
		want band
	}{
		{"zero", Sample{0, 0}, band{y0: 430, y1: 430}},
		{"symmetric", Sample{-2, 2}, band{y0: 410, y1: 450}},
		{"upper clip", Sample{0, 5}, band{y0: 390, y1: 430, clip0: true}},
		{"lower clip", Sample{-5, 0}, band{y0: 430, y1: 470, clip1: true}},
		{"exact bound", Sample{-4, 4}, band{y0: 390, y1: 470}},
		{"truncates toward zero", Sample{0, 0.1875}, band{y0: 429, y1: 430}},
		// Max below zero is never clamped, so the top edge can drop under the strip.
		{"unclamped low max", Sample{-12, -8}, band{y0: 510, y1: 470, clip1: true}},
		{"unclamped high min", Sample{8, 12}, band{y0: 390, y1: 350, clip0: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bandOf(tt.smp); got != tt.want {
				t.Fatalf("bandOf(%+v)=%+v, want %+v", tt.smp, got, tt.want)
			}
		})
	}
}

func TestRenderFlatLine(t *testing.T) {
	s := render(t, NewRing(), "")
	p := DefaultPalette
	for x := 0; x < Columns; x++ {
		for y := StripTop; y <= StripBottom; y++ {
			want := p.Background
			if y == CenterY {
				want = p.Axis
			}
			if got := s.Pixel(x, y); got != want {
				t.Fatalf("pixel(%d,%d)=%#08x, want %#08x", x, y, uint32(got), uint32(want))
			}
		}
	}
}

func TestRenderClipHighlights(t *testing.T) {
	r := NewRing()
	if err := r.Push(0, 5); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := r.Push(-5, 0); err != nil {
		t.Fatalf("Push: %v", err)
	}
	s := render(t, r, "")
	p := DefaultPalette

	upper := Columns - 2
	lower := Columns - 1

	if got := s.Pixel(upper, StripTop); got != p.Clip {
		t.Fatalf("upper clip pixel=%#08x", uint32(got))
	}
	if got := s.Pixel(upper, StripTop+1); got != p.Fill {
		t.Fatalf("upper fill pixel=%#08x", uint32(got))
	}
	if got := s.Pixel(upper, StripBottom); got != p.Background {
		t.Fatalf("upper column bottom=%#08x", uint32(got))
	}

	if got := s.Pixel(lower, CenterY+StripHeight/2); got != p.Clip {
		t.Fatalf("lower clip pixel=%#08x", uint32(got))
	}
	if got := s.Pixel(lower, CenterY+1); got != p.Fill {
		t.Fatalf("lower fill pixel=%#08x", uint32(got))
	}
	if got := s.Pixel(lower, StripTop); got != p.Background {
		t.Fatalf("lower column top=%#08x", uint32(got))
	}

	for _, x := range []int{upper, lower} {
		if got := s.Pixel(x, CenterY); got != p.Axis {
			t.Fatalf("axis at column %d=%#08x", x, uint32(got))
		}
	}
	if got := s.Pixel(0, StripTop); got == p.Clip {
		t.Fatal("unexpected clip pixel in zero column")
	}
}

func TestRenderNewestSampleIsRightmost(t *testing.T) {
	r := NewRing()
	for i := 0; i < 3*Columns+17; i++ {
		if err := r.Push(0, 0); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	if err := r.Push(-2, 2); err != nil {
		t.Fatalf("Push: %v", err)
	}
	s := render(t, r, "")
	p := DefaultPalette

	if got := s.Pixel(Columns-1, 410); got != p.Fill {
		t.Fatalf("newest column top=%#08x, want fill", uint32(got))
	}
	if got := s.Pixel(Columns-2, 410); got != p.Background {
		t.Fatalf("previous column=%#08x, want background", uint32(got))
	}
}

func TestRenderEmptyStatusLeavesTextArea(t *testing.T) {
	s := render(t, NewRing(), "")
	for y := 0; y < StripTop; y++ {
		for x := 0; x < MinWidth; x++ {
			if got := s.Pixel(x, y); got != 0 {
				t.Fatalf("pixel(%d,%d)=%#08x, want untouched", x, y, uint32(got))
			}
		}
	}
	for x := 0; x < Columns; x++ {
		if s.Pixel(x, StripTop) == 0 || s.Pixel(x, StripBottom) == 0 {
			t.Fatalf("strip column %d not painted", x)
		}
	}
}

func TestRenderNewlineMovesDown(t *testing.T) {
	s := render(t, NewRing(), "A\nB")
	text := DefaultPalette.Text

	// 'A' row 0 lights columns 1..3, drawn at 2x.
	if got := s.Pixel(TextX+2, TextY); got != text {
		t.Fatalf("A pixel=%#08x", uint32(got))
	}
	if got := s.Pixel(TextX, TextY); got != 0 {
		t.Fatalf("A background pixel=%#08x", uint32(got))
	}
	// 'B' row 0 lights columns 0..3 on the next line.
	if got := s.Pixel(TextX, TextY+20); got != text {
		t.Fatalf("B pixel=%#08x", uint32(got))
	}
	if got := s.Pixel(TextX+7, TextY+21); got != text {
		t.Fatalf("B pixel=%#08x", uint32(got))
	}
	// Nothing is drawn where a glyph for '\n' would have gone.
	for y := TextY; y < TextY+16; y++ {
		for x := TextX + 16; x < TextX+32; x++ {
			if got := s.Pixel(x, y); got != 0 {
				t.Fatalf("pixel(%d,%d)=%#08x after newline", x, y, uint32(got))
			}
		}
	}

	onlyA := render(t, NewRing(), "A")
	for y := TextY; y < TextY+16; y++ {
		for x := TextX; x < TextX+16; x++ {
			if s.Pixel(x, y) != onlyA.Pixel(x, y) {
				t.Fatalf("A cell differs at (%d,%d)", x, y)
			}
		}
	}
}

func TestRenderTextIsTransparent(t *testing.T) {
	s := newTestSurface()
	s.Fill(0x00123456)
	if err := NewRenderer().Render(s, NewRing(), "A"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := s.Pixel(TextX, TextY); got != 0x00123456 {
		t.Fatalf("unset glyph bit overwrote pixel: %#08x", uint32(got))
	}
}

func TestRenderSkipsControlAndNonASCII(t *testing.T) {
	plain := render(t, NewRing(), "AB")
	noisy := render(t, NewRing(), "A\t\x01é\rB")
	if !bytes.Equal(plain.Pix, noisy.Pix) {
		t.Fatal("skipped runes changed the output")
	}
}

func TestRenderTextClippedAtEdge(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'W'
	}
	render(t, NewRing(), string(long)+"\n"+string(long))
}

func TestRenderIdempotent(t *testing.T) {
	r := NewRing()
	for i := 0; i < 900; i++ {
		v := float32(i%37) - 18
		if err := r.Push(v/3, v); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	s := newTestSurface()
	rd := NewRenderer()
	if err := rd.Render(s, r, "status\nline"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	first := s.Clone()
	if err := rd.Render(s, r, "status\nline"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first.Pix, s.Pix) {
		t.Fatal("second render differs")
	}
}

func TestRenderRejectsSmallSurface(t *testing.T) {
	tests := []struct {
		name string
		s    *Surface
	}{
		{"nil", nil},
		{"narrow", NewSurface(image.Rect(0, 0, MinWidth-1, MinHeight))},
		{"short", NewSurface(image.Rect(0, 0, MinWidth, MinHeight-1))},
		{"short pix", &Surface{Pix: make([]byte, 16), Stride: MinWidth * 4, Rect: image.Rect(0, 0, MinWidth, MinHeight)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRenderer().Render(tt.s, NewRing(), "x")
			if !errors.Is(err, ErrInvalidSurfaceSize) {
				t.Fatalf("err=%v, want ErrInvalidSurfaceSize", err)
			}
			if tt.s == nil {
				return
			}
			for _, b := range tt.s.Pix {
				if b != 0 {
					t.Fatal("rejected render wrote pixels")
				}
			}
		})
	}
}

func TestRenderOffsetSurface(t *testing.T) {
	s := NewSurface(image.Rect(100, 50, 100+MinWidth, 50+MinHeight))
	if err := NewRenderer().Render(s, NewRing(), "A"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := s.Pixel(100, 50+CenterY); got != DefaultPalette.Axis {
		t.Fatalf("axis=%#08x", uint32(got))
	}
	if got := s.Pixel(100+TextX+2, 50+TextY); got != DefaultPalette.Text {
		t.Fatalf("text=%#08x", uint32(got))
	}
}

type fakeFramebuffer struct {
	hal.Framebuffer
	format hal.PixelFormat
}

func (f fakeFramebuffer) Format() hal.PixelFormat { return f.format }
func (f fakeFramebuffer) Lock()                   {}
func (f fakeFramebuffer) Unlock()                 {}

func TestPaintFramebuffer(t *testing.T) {
	h, _ := hal.NewHeadless()
	fb := h.Display().Framebuffer()
	r := NewRing()
	if err := r.Push(0, 5); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := NewRenderer().Paint(fb, r, "OK"); err != nil {
		t.Fatalf("Paint: %v", err)
	}

	s, err := FromFramebuffer(fb)
	if err != nil {
		t.Fatalf("FromFramebuffer: %v", err)
	}
	if got := s.Pixel(Columns-1, StripTop); got != DefaultPalette.Clip {
		t.Fatalf("clip pixel=%#08x", uint32(got))
	}
	if got := s.Pixel(0, CenterY); got != DefaultPalette.Axis {
		t.Fatalf("axis pixel=%#08x", uint32(got))
	}

	err = NewRenderer().Paint(fakeFramebuffer{format: hal.PixelFormatRGB565}, r, "")
	if !errors.Is(err, ErrPixelFormat) {
		t.Fatalf("RGB565 paint err=%v, want ErrPixelFormat", err)
	}
}

func TestPenFits(t *testing.T) {
	info := NewRenderer().Font.GetGlyph('A').Info()
	tests := []struct {
		x, y int
		want bool
	}{
		{TextX, TextY, true},
		{32767 - 16, 0, true},
		{32767 - 15, 0, false},
		{0, 32767 - 16, true},
		{0, 32767 - 15, false},
		{40000, 8, false},
		{-32769, 0, false},
	}
	for _, tt := range tests {
		if got := penFits(tt.x, tt.y, info); got != tt.want {
			t.Errorf("penFits(%d,%d)=%v want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
