package hal

import "time"

type hostTime struct {
	ch  chan uint64
	seq uint64

	dur  time.Duration
	last time.Time
	acc  time.Duration
}

func newHostTime(dur time.Duration) *hostTime {
	if dur <= 0 {
		dur = time.Millisecond
	}
	return &hostTime{ch: make(chan uint64, 1024), dur: dur}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step converts wall time elapsed since the previous call into ticks.
// The first call emits n ticks to prime the stream.
func (t *hostTime) step(n uint64) {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / t.dur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % t.dur
	t.stepN(ticks)
}

// stepN emits n sequential ticks. Ticks that do not fit the channel are
// dropped; the sequence number still advances so consumers see the gap.
func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
