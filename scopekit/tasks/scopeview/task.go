package scopeview

import (
	"bytes"
	"errors"
	"fmt"

	"wavescope/hal"
	"wavescope/internal/buildinfo"
	"wavescope/scopekit/plot"
	"wavescope/scopekit/snapshot"
)

const (
	defaultDivider  = 4
	defaultLogEvery = 1000
)

// Config selects the signal and sampling rate of the scope.
type Config struct {
	Signal   string // source name, empty for the first source
	Divider  int    // host ticks per pushed sample
	LogEvery uint64 // log a status line every N pushed samples, 0 disables
	Status   string // fixed overlay text; empty shows live status
}

// Task drives the plot: it turns host ticks into samples, handles keys and
// repaints the framebuffer once per Step.
//
// Step must be called from a single goroutine; the ring it owns is not
// synchronized.
type Task struct {
	log   hal.Logger
	fb    hal.Framebuffer
	ticks <-chan uint64
	keys  <-chan hal.KeyEvent
	sigs  hal.Signals
	clip  hal.Clipboard

	sig   hal.SignalSource
	sigID int

	ring *plot.Ring
	r    *plot.Renderer

	divider  int
	logEvery uint64
	status   string

	hold    bool
	acc     int
	slot    uint64
	pushed  uint64
	clipped uint64
	dropped uint64
}

// New binds a task to h's framebuffer, clock, keyboard and signals.
func New(h hal.HAL, cfg Config) (*Task, error) {
	if h == nil {
		return nil, errors.New("scope: no hal")
	}
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, errors.New("scope: no framebuffer")
	}
	if cfg.Divider <= 0 {
		cfg.Divider = defaultDivider
	}

	t := &Task{
		log:      h.Logger(),
		fb:       disp.Framebuffer(),
		sigs:     h.Signals(),
		clip:     h.Clipboard(),
		ring:     plot.NewRing(),
		r:        plot.NewRenderer(),
		divider:  cfg.Divider,
		logEvery: cfg.LogEvery,
		status:   cfg.Status,
	}
	if ht := h.Time(); ht != nil {
		t.ticks = ht.Ticks()
	}
	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			t.keys = kbd.Events()
		}
	}

	if t.sigs == nil || t.sigs.Count() == 0 {
		return nil, errors.New("scope: no signal sources")
	}
	if cfg.Signal == "" {
		t.sig, t.sigID = t.sigs.Source(0), 0
	} else {
		src, id, ok := hal.LookupSignal(t.sigs, cfg.Signal)
		if !ok {
			return nil, fmt.Errorf("scope: unknown signal %q", cfg.Signal)
		}
		t.sig, t.sigID = src, id
	}

	t.logf("scope: signal=%s div=%d (%d sps)", t.sig.Name(), t.divider, t.sampleRate())
	return t, nil
}

// Ring exposes the sample history for inspection.
func (t *Task) Ring() *plot.Ring { return t.ring }

// Pushed is the number of samples accepted into the ring.
func (t *Task) Pushed() uint64 { return t.pushed }

// Step consumes pending ticks and keys, then repaints. It returns hal.ErrStop
// when the user asks to quit.
func (t *Task) Step() error {
	if err := t.drainKeys(); err != nil {
		return err
	}
	t.drainTicks()
	if err := t.r.Paint(t.fb, t.ring, t.Status()); err != nil {
		return fmt.Errorf("scope: render: %w", err)
	}
	return nil
}

// Status is the overlay text for the next frame.
func (t *Task) Status() string {
	if t.status != "" {
		return t.status
	}
	run := "RUN"
	if t.hold {
		run = "HOLD"
	}
	return fmt.Sprintf("wavescope %s\n%s %d sps\n%s n=%d clip=%d",
		buildinfo.Short(), t.sig.Name(), t.sampleRate(), run, t.pushed, t.clipped)
}

// Frame returns a copy of the current framebuffer contents.
func (t *Task) Frame() (*plot.Surface, error) {
	t.fb.Lock()
	defer t.fb.Unlock()
	s, err := plot.FromFramebuffer(t.fb)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func (t *Task) sampleRate() int {
	return 1000 / t.divider
}

func (t *Task) drainTicks() {
	if t.ticks == nil {
		return
	}
	for {
		select {
		case seq := <-t.ticks:
			t.onTick(seq)
		default:
			return
		}
	}
}

func (t *Task) onTick(seq uint64) {
	if t.acc == 0 {
		t.slot = seq
	}
	t.acc++
	if t.acc < t.divider {
		return
	}
	t.acc = 0
	if t.hold {
		return
	}
	t.sample()
}

func (t *Task) sample() {
	lo, hi, err := t.sig.Envelope(t.slot, t.divider)
	if err != nil {
		t.dropped++
		t.logf("scope: %v", err)
		return
	}
	if err := t.ring.Push(lo, hi); err != nil {
		t.dropped++
		t.logf("scope: push: %v", err)
		return
	}
	t.pushed++
	if top, bottom := plot.Clipped(plot.Sample{Min: lo, Max: hi}); top || bottom {
		t.clipped++
	}
	if t.logEvery > 0 && t.pushed%t.logEvery == 0 {
		t.logf("scope: %s n=%d clip=%d dropped=%d", t.sig.Name(), t.pushed, t.clipped, t.dropped)
	}
}

func (t *Task) drainKeys() error {
	if t.keys == nil {
		return nil
	}
	for {
		select {
		case ev := <-t.keys:
			if err := t.handleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (t *Task) handleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	switch ev.Code {
	case hal.KeySpace:
		t.hold = !t.hold
		return nil
	case hal.KeyTab:
		t.nextSignal()
		return nil
	case hal.KeyEscape:
		return hal.ErrStop
	}
	switch ev.Rune {
	case 0x03:
		t.copyFrame()
	case 'q', 'Q':
		return hal.ErrStop
	}
	return nil
}

func (t *Task) nextSignal() {
	n := t.sigs.Count()
	for i := 1; i <= n; i++ {
		id := (t.sigID + i) % n
		if src := t.sigs.Source(id); src != nil {
			t.sig, t.sigID = src, id
			t.logf("scope: signal=%s", src.Name())
			return
		}
	}
}

func (t *Task) copyFrame() {
	if t.clip == nil {
		t.logf("scope: copy: %v", hal.ErrNotImplemented)
		return
	}
	frame, err := t.Frame()
	if err != nil {
		t.logf("scope: copy: %v", err)
		return
	}
	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, frame, snapshot.FormatPNG); err != nil {
		t.logf("scope: copy: %v", err)
		return
	}
	if err := t.clip.WriteImage(buf.Bytes()); err != nil {
		t.logf("scope: copy: %v", err)
		return
	}
	t.logf("scope: copied %d byte frame", buf.Len())
}

func (t *Task) logf(format string, args ...any) {
	if t.log == nil {
		return
	}
	t.log.WriteLineString(fmt.Sprintf(format, args...))
}
