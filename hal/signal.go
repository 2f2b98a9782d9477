package hal

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// Waveform selects the shape of a virtual analog source.
type Waveform uint8

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSaw:
		return "saw"
	case WaveNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// Signals lists the analog sources available to the scope.
//
// Implementations may return nil if no sources exist.
type Signals interface {
	Count() int
	Source(id int) SignalSource
}

// SignalSource produces sample envelopes addressed by tick.
//
// Envelope returns the low and high value over span ticks starting at slot.
// Sources are deterministic: the same (slot, span) always yields the same pair.
type SignalSource interface {
	Name() string
	Envelope(slot uint64, span int) (min, max float32, err error)
}

// LookupSignal returns the source whose name matches (case-insensitive).
func LookupSignal(s Signals, name string) (SignalSource, int, bool) {
	if s == nil {
		return nil, -1, false
	}
	name = strings.TrimSpace(name)
	for i := 0; i < s.Count(); i++ {
		src := s.Source(i)
		if src != nil && strings.EqualFold(src.Name(), name) {
			return src, i, true
		}
	}
	return nil, -1, false
}

type nullSignals struct{}

func (nullSignals) Count() int                 { return 0 }
func (nullSignals) Source(id int) SignalSource { return nil }

type virtualSignals struct {
	srcs []SignalSource
}

func newVirtualSignals(srcs []SignalSource) Signals {
	if len(srcs) == 0 {
		return nullSignals{}
	}
	return &virtualSignals{srcs: srcs}
}

func (s *virtualSignals) Count() int {
	if s == nil {
		return 0
	}
	return len(s.srcs)
}

func (s *virtualSignals) Source(id int) SignalSource {
	if s == nil || id < 0 || id >= len(s.srcs) {
		return nil
	}
	return s.srcs[id]
}

// defaultSignals are the generators every host HAL exposes.
func defaultSignals() Signals {
	return newVirtualSignals([]SignalSource{
		newAnalogSource("SINE", WaveSine, 500*time.Millisecond, 3),
		newAnalogSource("SQUARE", WaveSquare, 250*time.Millisecond, 2),
		newAnalogSource("SAW", WaveSaw, 1*time.Second, 3.5),
		// Peaks at ±6, past the ±4 plot range on both sides.
		newAnalogSource("CLIP", WaveSine, 800*time.Millisecond, 6),
		newAnalogSource("NOISE", WaveNoise, time.Millisecond, 1.5),
	})
}

type analogSource struct {
	name   string
	wave   Waveform
	period uint64 // ticks
	amp    float64
	seed   uint64
}

func newAnalogSource(name string, wave Waveform, period time.Duration, amp float64) SignalSource {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	ticks := uint64(period / time.Millisecond)
	if ticks == 0 {
		ticks = 1000
	}
	if amp < 0 {
		amp = -amp
	}
	var seed uint64
	for _, c := range name {
		seed = seed*31 + uint64(c)
	}
	return &analogSource{
		name:   name,
		wave:   wave,
		period: ticks,
		amp:    amp,
		seed:   seed,
	}
}

func (s *analogSource) Name() string { return s.name }

func (s *analogSource) Envelope(slot uint64, span int) (float32, float32, error) {
	if span <= 0 {
		return 0, 0, fmt.Errorf("signal %s: invalid span %d", s.name, span)
	}
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for i := 0; i < span; i++ {
		v := s.valueAt(slot + uint64(i))
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return float32(lo), float32(hi), nil
}

func (s *analogSource) valueAt(tick uint64) float64 {
	phase := float64(tick%s.period) / float64(s.period)
	switch s.wave {
	case WaveSquare:
		if phase < 0.5 {
			return s.amp
		}
		return -s.amp
	case WaveSaw:
		return s.amp * (2*phase - 1)
	case WaveNoise:
		r := rand.New(rand.NewPCG(s.seed, tick))
		return s.amp * (2*r.Float64() - 1)
	default:
		return s.amp * math.Sin(2*math.Pi*phase)
	}
}
