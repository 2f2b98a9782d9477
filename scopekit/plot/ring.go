package plot

import (
	"fmt"
	"math"
)

// Columns is the ring capacity and the width of the waveform strip in pixels.
const Columns = 640

// Sample is the low and high value of a signal over one time slot.
type Sample struct {
	Min, Max float32
}

// Ring keeps the most recent Columns samples, overwriting the oldest.
//
// The zero value is an empty ring with every slot at (0, 0).
// A Ring is not safe for concurrent use; callers serialize Push and Render.
type Ring struct {
	buf    [Columns]Sample
	cursor int
}

// NewRing returns an empty ring with the cursor at slot 0.
func NewRing() *Ring {
	return &Ring{}
}

// Push stores (min, max) at the cursor and advances it, wrapping after the last slot.
func (r *Ring) Push(min, max float32) error {
	if !finite(min) || !finite(max) {
		return fmt.Errorf("%w: min=%v max=%v", ErrNonFiniteSample, min, max)
	}
	r.buf[r.cursor] = Sample{Min: min, Max: max}
	r.cursor++
	if r.cursor == Columns {
		r.cursor = 0
	}
	return nil
}

// Cursor is the index of the next slot Push will overwrite.
func (r *Ring) Cursor() int { return r.cursor }

// Slot returns the sample stored at storage index i.
func (r *Ring) Slot(i int) Sample {
	if i < 0 || i >= Columns {
		return Sample{}
	}
	return r.buf[i]
}

// Column returns the sample shown at screen column x: 0 is the oldest, Columns-1 the newest.
func (r *Ring) Column(x int) Sample {
	if x < 0 || x >= Columns {
		return Sample{}
	}
	return r.buf[(x+r.cursor)%Columns]
}

// Samples returns a copy of the ring in time order, oldest first.
func (r *Ring) Samples() []Sample {
	out := make([]Sample, Columns)
	n := copy(out, r.buf[r.cursor:])
	copy(out[n:], r.buf[:r.cursor])
	return out
}

// columnOf maps storage slot i to its screen column for the given cursor.
func columnOf(i, cursor int) int {
	return (i - cursor + Columns) % Columns
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
