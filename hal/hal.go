package hal

import (
	"errors"
	"sync"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrStop may be returned by the app step to end a runner cleanly.
var ErrStop = errors.New("stop")

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Scale int
	HUD   bool
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
	// PixelFormatXRGB8888 is 32bpp little-endian: bbbbbbbb gggggggg rrrrrrrr xxxxxxxx.
	PixelFormatXRGB8888
)

// BytesPerPixel returns the storage size of one pixel, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB565:
		return 2
	case PixelFormatXRGB8888:
		return 4
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB565:
		return "RGB565"
	case PixelFormatXRGB8888:
		return "XRGB8888"
	default:
		return "unknown"
	}
}

// Framebuffer is a simple pixel buffer plus a "present" hook.
//
// Writers hold the lock while touching Buffer and release it before Present.
type Framebuffer interface {
	sync.Locker

	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeyTab
	KeySpace
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides a base tick stream.
//
// One tick is one millisecond of host wall time.
type Time interface {
	Ticks() <-chan uint64
}

// Clipboard accepts encoded images for the host clipboard.
type Clipboard interface {
	WriteImage(png []byte) error
}

// HAL provides the only contact point between the scope and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
	Signals() Signals
	Clipboard() Clipboard
}
