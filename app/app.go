package app

import (
	"fmt"

	"wavescope/hal"
	"wavescope/internal/buildinfo"
	"wavescope/scopekit/tasks/scopeview"
)

// Config selects the scope signal and rate.
type Config struct {
	Signal   string
	Divider  int
	LogEvery uint64

	// HoldPanic keeps a panic screen on display until Esc or q instead of
	// returning the panic as an error. Window runners set it.
	HoldPanic bool
}

// New starts the scope with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig builds the scope task and returns the host step function.
// A task that cannot be built yields a step that reports the error.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	task, err := scopeview.New(h, scopeview.Config{
		Signal:   cfg.Signal,
		Divider:  cfg.Divider,
		LogEvery: cfg.LogEvery,
	})
	if err != nil {
		err = fmt.Errorf("app: %w", err)
		return func() error { return err }
	}
	if l := h.Logger(); l != nil {
		l.WriteLineString("app: started wavescope " + buildinfo.Short())
	}
	return guard(h, task.Step, cfg.HoldPanic)
}

// guard runs step with the panic handler installed. With hold set, a
// recovered panic latches: later calls only watch for Esc or q so the
// presented panic screen stays up.
func guard(h hal.HAL, step func() error, hold bool) func() error {
	var panicked bool
	return func() (err error) {
		if panicked {
			return waitQuit(h)
		}
		defer func() {
			if v := recover(); v != nil {
				err = handlePanic(h, v)
				if hold {
					panicked = true
					err = nil
				}
			}
		}()
		return step()
	}
}

func waitQuit(h hal.HAL) error {
	in := h.Input()
	if in == nil {
		return nil
	}
	kbd := in.Keyboard()
	if kbd == nil {
		return nil
	}
	for {
		select {
		case ev := <-kbd.Events():
			if !ev.Press {
				continue
			}
			if ev.Code == hal.KeyEscape || ev.Rune == 'q' || ev.Rune == 'Q' {
				return hal.ErrStop
			}
		default:
			return nil
		}
	}
}
