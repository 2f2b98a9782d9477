package hal

import (
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
)

// Host framebuffer geometry. The plot strip needs a full 640x480 surface.
const (
	HostWidth  = 640
	HostHeight = 480
)

type hostHAL struct {
	logger  *hostLogger
	fb      *hostFramebuffer
	kbd     *hostKeyboard
	t       *hostTime
	signals Signals
	clip    Clipboard
}

// New returns a host HAL implementation.
func New() HAL {
	return newHostHAL()
}

// NewHeadless returns a host HAL together with a function that advances its
// clock by n ticks. Tools and tests use it to drive the scope without wall time.
func NewHeadless() (HAL, func(n uint64)) {
	h := newHostHAL()
	h.clip = nullClipboard{}
	return h, h.t.stepN
}

func newHostHAL() *hostHAL {
	return &hostHAL{
		logger:  newHostLogger(os.Stdout),
		fb:      newHostFramebuffer(HostWidth, HostHeight, PixelFormatXRGB8888),
		kbd:     newHostKeyboard(),
		t:       newHostTime(time.Millisecond),
		signals: defaultSignals(),
		clip:    newHostClipboard(),
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) Display() Display     { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input         { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time           { return h.t }
func (h *hostHAL) Signals() Signals     { return h.signals }
func (h *hostHAL) Clipboard() Clipboard { return h.clip }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// emit drops the event when the queue is full.
func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type nullClipboard struct{}

func (nullClipboard) WriteImage([]byte) error { return ErrNotImplemented }

type hostLogger struct {
	mu  sync.Mutex
	w   *os.File
	tty bool
}

func newHostLogger(w *os.File) *hostLogger {
	return &hostLogger{w: w, tty: term.IsTerminal(int(w.Fd()))}
}

func (l *hostLogger) WriteLineString(s string) {
	l.WriteLineBytes([]byte(s))
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tty {
		if w, _, err := term.GetSize(int(l.w.Fd())); err == nil {
			b = fitLine(b, w)
		}
	}
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// fitLine cuts b to at most width bytes without splitting a UTF-8 sequence.
// Non-positive widths leave b intact.
func fitLine(b []byte, width int) []byte {
	if width <= 0 || len(b) <= width {
		return b
	}
	for width > 0 && !utf8.RuneStart(b[width]) {
		width--
	}
	return b[:width]
}
