package plot

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"wavescope/hal"
)

const bytesPerPixel = 4

// Color is a packed 0xXXRRGGBB pixel. The top byte is stored but not displayed.
type Color uint32

// RGBA implements color.Color. The X byte is ignored and alpha is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>16&0xFF) * 0x101
	g = uint32(c>>8&0xFF) * 0x101
	b = uint32(c&0xFF) * 0x101
	return r, g, b, 0xFFFF
}

// rgba carries all four packed bytes, X in the alpha slot, so glyph colors
// survive a round trip through drivers.Displayer.
func (c Color) rgba() color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}
}

func packRGBA(c color.RGBA) Color {
	return Color(uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

func toColor(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return Color(0xFF000000 | (r>>8)<<16 | (g>>8)<<8 | b>>8)
}

// ColorModel converts colors to Color.
var ColorModel = color.ModelFunc(toColor)

// Surface is a bounds-checked view over 32-bit XRGB8888 pixels stored
// little-endian. Writes outside Rect or past the end of Pix are dropped.
type Surface struct {
	Pix    []byte          // Pixel data, 4 bytes per pixel
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewSurface allocates a zeroed surface covering r.
func NewSurface(r image.Rectangle) *Surface {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Surface{Rect: r}
	}
	stride := w * bytesPerPixel
	return &Surface{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// FromFramebuffer wraps fb's buffer without copying. The caller must hold
// fb's lock for as long as the surface is used.
func FromFramebuffer(fb hal.Framebuffer) (*Surface, error) {
	if fb == nil {
		return nil, fmt.Errorf("%w: no framebuffer", ErrInvalidSurfaceSize)
	}
	if fb.Format() != hal.PixelFormatXRGB8888 {
		return nil, fmt.Errorf("%w: %s", ErrPixelFormat, fb.Format())
	}
	w, h, stride := fb.Width(), fb.Height(), fb.StrideBytes()
	buf := fb.Buffer()
	if w <= 0 || h <= 0 || stride < w*bytesPerPixel || len(buf) < stride*(h-1)+w*bytesPerPixel {
		return nil, fmt.Errorf("%w: framebuffer %dx%d stride=%d len=%d", ErrInvalidSurfaceSize, w, h, stride, len(buf))
	}
	return &Surface{Pix: buf, Stride: stride, Rect: image.Rect(0, 0, w, h)}, nil
}

func (s *Surface) ColorModel() color.Model { return ColorModel }

func (s *Surface) Bounds() image.Rectangle { return s.Rect }

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color {
	return s.Pixel(x, y)
}

// Pixel returns the packed pixel at (x, y), or 0 outside the surface.
func (s *Surface) Pixel(x, y int) Color {
	off, ok := s.pixOffset(x, y)
	if !ok {
		return 0
	}
	return Color(binary.LittleEndian.Uint32(s.Pix[off:]))
}

// Set implements draw.Image.
func (s *Surface) Set(x, y int, c color.Color) {
	s.SetPixel(x, y, ColorModel.Convert(c).(Color))
}

// SetPixel writes c at (x, y) and reports whether the write landed.
func (s *Surface) SetPixel(x, y int, c Color) bool {
	off, ok := s.pixOffset(x, y)
	if !ok {
		return false
	}
	binary.LittleEndian.PutUint32(s.Pix[off:], uint32(c))
	return true
}

// Fill paints every pixel of the surface with c.
func (s *Surface) Fill(c Color) {
	for y := s.Rect.Min.Y; y < s.Rect.Max.Y; y++ {
		for x := s.Rect.Min.X; x < s.Rect.Max.X; x++ {
			s.SetPixel(x, y, c)
		}
	}
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	return &Surface{
		Pix:    append([]byte(nil), s.Pix...),
		Stride: s.Stride,
		Rect:   s.Rect,
	}
}

// pixOffset returns the byte offset of (x, y) in Pix.
func (s *Surface) pixOffset(x, y int) (int, bool) {
	if !(image.Point{X: x, Y: y}.In(s.Rect)) {
		return 0, false
	}
	off := (y-s.Rect.Min.Y)*s.Stride + (x-s.Rect.Min.X)*bytesPerPixel
	if off < 0 || off+bytesPerPixel > len(s.Pix) {
		return 0, false
	}
	return off, true
}

// textTarget adapts a Surface to drivers.Displayer for tinyfont glyphs.
// Coordinates are relative to the surface origin.
type textTarget struct {
	s *Surface
}

func (t textTarget) Size() (x, y int16) {
	return int16(t.s.Rect.Dx()), int16(t.s.Rect.Dy())
}

func (t textTarget) SetPixel(x, y int16, c color.RGBA) {
	t.s.SetPixel(t.s.Rect.Min.X+int(x), t.s.Rect.Min.Y+int(y), packRGBA(c))
}

func (t textTarget) Display() error { return nil }
