// Package analysis fabricates the demo "vocal analysis": a simulated pitch
// trace, loosely derived error statistics, coaching feedback and a guess at
// the key and tempo of the performance. None of it inspects real audio.
package analysis

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
)

const (
	DefaultTraceSeconds = 10
	DefaultTraceRate    = 50 // points per second

	minVocalHz = 80.0
	maxVocalHz = 500.0
)

// Simulator produces made-up pitch traces. It is safe for concurrent use.
type Simulator struct {
	Seconds int
	Rate    int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator returns a Simulator drawing from rng. A nil rng is seeded
// from the runtime's random source.
func NewSimulator(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulator{Seconds: DefaultTraceSeconds, Rate: DefaultTraceRate, rng: rng}
}

// PitchTrace ignores the upload and returns a simulated trace.
func (s *Simulator) PitchTrace(ctx context.Context, _ domain.Upload) (domain.PitchTrace, error) {
	if err := ctx.Err(); err != nil {
		return domain.PitchTrace{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return SimulateTrace(s.rng, s.Seconds, s.Rate), nil
}

// SimulateTrace builds seconds*rate points around a random base pitch near
// A3: a slow vibrato, breath wobble and small jitter, with a silent patch,
// a flat patch and a sharp patch at fixed positions plus random dropouts.
// Every value is clamped to [80, 500] Hz, so dropouts read as 80 Hz.
func SimulateTrace(rng *rand.Rand, seconds, rate int) domain.PitchTrace {
	n := seconds * rate
	if n <= 0 {
		return domain.PitchTrace{Frequencies: []float64{}, Times: []float64{}}
	}
	times := make([]float64, n)
	if n > 1 {
		step := float64(seconds) / float64(n-1)
		for i := range times {
			times[i] = float64(i) * step
		}
		times[n-1] = float64(seconds)
	}

	base := 220 + float64(randInt(rng, -50, 50))
	freqs := make([]float64, n)
	for i, t := range times {
		vibrato := 20 * math.Sin(2*math.Pi*0.5*t)
		breath := 5 * math.Sin(2*math.Pi*2*t)
		f := base + vibrato + float64(randInt(rng, -5, 5)) + breath

		switch {
		case i > 20 && i < 30:
			f = 0
		case i > 60 && i < 70:
			f += float64(randInt(rng, -25, -15))
		case i > 90 && i < 100:
			f += float64(randInt(rng, 15, 25))
		default:
			if rng.Float64() < 0.02 {
				f = 0
			} else if rng.Float64() < 0.05 {
				f += float64(randInt(rng, -10, 10))
			}
		}
		freqs[i] = math.Max(minVocalHz, math.Min(maxVocalHz, f))
	}
	return domain.PitchTrace{Frequencies: freqs, Times: times}
}

// randInt returns a uniform integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
