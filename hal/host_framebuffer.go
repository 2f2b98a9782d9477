package hal

import (
	"encoding/binary"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	format PixelFormat
	stride int
	buf    []byte

	presented uint64
}

func newHostFramebuffer(width, height int, format PixelFormat) *hostFramebuffer {
	stride := width * format.BytesPerPixel()
	return &hostFramebuffer{
		width:  width,
		height: height,
		format: format,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Lock()               { f.mu.Lock() }
func (f *hostFramebuffer) Unlock()             { f.mu.Unlock() }
func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return f.format }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.presented++
	f.mu.Unlock()
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.format {
	case PixelFormatRGB565:
		pixel := rgb565(r, g, b)
		lo := byte(pixel)
		hi := byte(pixel >> 8)
		for i := 0; i+1 < len(f.buf); i += 2 {
			f.buf[i] = lo
			f.buf[i+1] = hi
		}
	case PixelFormatXRGB8888:
		pixel := xrgb8888(r, g, b)
		for i := 0; i+3 < len(f.buf); i += 4 {
			binary.LittleEndian.PutUint32(f.buf[i:], pixel)
		}
	}
}

func (f *hostFramebuffer) snapshot(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
	return f.presented
}
