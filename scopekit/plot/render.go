package plot

import (
	"fmt"
	"math"

	"wavescope/hal"
	"wavescope/scopekit/fonts/font8x16"

	"tinygo.org/x/tinyfont"
)

// Frame layout. All coordinates are relative to the surface origin.
const (
	MinWidth  = Columns
	MinHeight = 480

	StripHeight = 80
	CenterY     = MinHeight - StripHeight/2 - 10
	StripTop    = CenterY - StripHeight/2
	StripBottom = MinHeight - 10 // inclusive

	TextX = 8
	TextY = 8

	// sampleScale maps sample units to half-strip units, inverted so that
	// positive values plot upward.
	sampleScale = -0.25

	// offsetLimit bounds the scaled offset before integer conversion. It is
	// far outside any real surface, so clipping it changes no visible pixel.
	offsetLimit = 1 << 20
)

// Palette holds the packed colors used by the renderer.
type Palette struct {
	Background Color
	Fill       Color
	Clip       Color
	Axis       Color
	Text       Color
}

// DefaultPalette is the dark scope palette with red clip marks.
var DefaultPalette = Palette{
	Background: 0x18181818,
	Fill:       0x44444444,
	Clip:       0xFFFF0000,
	Axis:       0x66666666,
	Text:       0x88888888,
}

// Renderer paints a Ring and a status string onto a Surface.
//
// A Renderer holds no frame state; rendering the same ring twice yields the
// same pixels. It is not safe to render into one surface from two goroutines.
type Renderer struct {
	Palette Palette
	Font    tinyfont.Fonter
}

// NewRenderer returns a renderer with DefaultPalette and the 8x16 font.
func NewRenderer() *Renderer {
	return &Renderer{Palette: DefaultPalette, Font: font8x16.Font}
}

// Render paints the waveform strip for ring and then overlays status.
//
// The surface must be at least MinWidth x MinHeight; otherwise no pixel is
// written and ErrInvalidSurfaceSize is returned. A nil ring renders as empty.
// Glyphs are addressed in int16, so text past 32767 px on either axis is
// not drawn.
func (r *Renderer) Render(s *Surface, ring *Ring, status string) error {
	if err := checkSurface(s); err != nil {
		return err
	}
	if ring == nil {
		ring = &Ring{}
	}
	r.drawStrip(s, ring)
	r.drawText(s, status)
	return nil
}

// Paint renders into fb under its lock and presents it after releasing the lock.
func (r *Renderer) Paint(fb hal.Framebuffer, ring *Ring, status string) error {
	if fb == nil {
		return fmt.Errorf("%w: no framebuffer", ErrInvalidSurfaceSize)
	}
	if err := r.paintLocked(fb, ring, status); err != nil {
		return err
	}
	return fb.Present()
}

func (r *Renderer) paintLocked(fb hal.Framebuffer, ring *Ring, status string) error {
	fb.Lock()
	defer fb.Unlock()

	s, err := FromFramebuffer(fb)
	if err != nil {
		return err
	}
	return r.Render(s, ring, status)
}

func checkSurface(s *Surface) error {
	if s == nil {
		return fmt.Errorf("%w: nil surface", ErrInvalidSurfaceSize)
	}
	w, h := s.Rect.Dx(), s.Rect.Dy()
	if w < MinWidth || h < MinHeight {
		return fmt.Errorf("%w: %dx%d, need %dx%d", ErrInvalidSurfaceSize, w, h, MinWidth, MinHeight)
	}
	if s.Stride < w*bytesPerPixel || len(s.Pix) < s.Stride*(h-1)+w*bytesPerPixel {
		return fmt.Errorf("%w: stride=%d len=%d for %dx%d", ErrInvalidSurfaceSize, s.Stride, len(s.Pix), w, h)
	}
	return nil
}

// band is the vertical span one sample covers.
type band struct {
	y0, y1       int
	clip0, clip1 bool
}

// bandOf maps a sample to its span. The max value sets the upper edge and
// may only clip at the top; the min value sets the lower edge and may only
// clip at the bottom. A sample far enough below zero can therefore push y0
// past the bottom of the strip (and likewise y1 above it).
func bandOf(smp Sample) band {
	s0 := smp.Max * sampleScale
	s1 := smp.Min * sampleScale
	var b band
	if s0 < -1 {
		s0 = -1
		b.clip0 = true
	}
	if s1 > 1 {
		s1 = 1
		b.clip1 = true
	}
	b.y0 = CenterY + scaledOffset(s0)
	b.y1 = CenterY + scaledOffset(s1)
	return b
}

// Clipped reports whether smp runs off the top or bottom of the strip.
func Clipped(smp Sample) (top, bottom bool) {
	b := bandOf(smp)
	return b.clip0, b.clip1
}

// scaledOffset converts a half-strip fraction to pixels, truncating toward zero.
func scaledOffset(v float32) int {
	p := v * StripHeight / 2
	if p > offsetLimit {
		return offsetLimit
	}
	if p < -offsetLimit {
		return -offsetLimit
	}
	return int(p)
}

func (r *Renderer) drawStrip(s *Surface, ring *Ring) {
	for i := 0; i < Columns; i++ {
		r.drawColumn(s, columnOf(i, ring.cursor), ring.buf[i])
	}
}

func (r *Renderer) drawColumn(s *Surface, x int, smp Sample) {
	ox, oy := s.Rect.Min.X, s.Rect.Min.Y
	h := s.Rect.Dy()
	b := bandOf(smp)
	p := r.Palette

	for y := StripTop; y < min(b.y0, h); y++ {
		s.SetPixel(ox+x, oy+y, p.Background)
	}
	for y := max(b.y0, 0); y <= min(b.y1, h-1); y++ {
		s.SetPixel(ox+x, oy+y, p.Fill)
	}
	for y := max(b.y1+1, 0); y <= min(StripBottom, h-1); y++ {
		s.SetPixel(ox+x, oy+y, p.Background)
	}
	if b.clip0 {
		s.SetPixel(ox+x, oy+StripTop, p.Clip)
	}
	if b.clip1 {
		s.SetPixel(ox+x, oy+CenterY+StripHeight/2, p.Clip)
	}
	s.SetPixel(ox+x, oy+CenterY, p.Axis)
}

// drawText overlays status starting at (TextX, TextY). Only set glyph bits
// are painted. Newline returns to TextX one line lower; other control
// characters and runes outside the font are skipped without advancing.
func (r *Renderer) drawText(s *Surface, status string) {
	if status == "" || r.Font == nil {
		return
	}
	d := textTarget{s: s}
	c := r.Palette.Text.rgba()
	w, h := s.Rect.Dx(), s.Rect.Dy()
	lineH := int(r.Font.GetYAdvance())

	x, y := TextX, TextY
	for _, ch := range status {
		switch {
		case ch == '\n':
			x = TextX
			y += lineH
		case ch < font8x16.First || ch > font8x16.Last:
			// no glyph, no advance
		default:
			g := r.Font.GetGlyph(ch)
			info := g.Info()
			if x < w && y < h && penFits(x, y, info) {
				g.Draw(d, int16(x), int16(y), c)
			}
			x += int(info.XAdvance)
		}
	}
}

// penFits reports whether a glyph drawn at (x, y) keeps every pixel
// coordinate inside the int16 range of drivers.Displayer.
func penFits(x, y int, info tinyfont.GlyphInfo) bool {
	return x >= math.MinInt16 && y >= math.MinInt16 &&
		x <= math.MaxInt16-int(info.Width) && y <= math.MaxInt16-int(info.Height)
}
