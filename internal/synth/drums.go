package synth

import (
	"math"
	"math/rand/v2"
	"sort"
)

// NoiseSource supplies standard-normal samples for the snare layer.
// *rand.Rand satisfies it.
type NoiseSource interface {
	NormFloat64() float64
}

type globalNoise struct{}

func (globalNoise) NormFloat64() float64 { return rand.NormFloat64() }

const (
	kickDecay  = 20.0
	kickSweep  = 10.0
	kickTop    = 100.0 // Hz above the floor at the hit
	kickFloor  = 50.0  // Hz the sweep settles on
	snareDecay = 50.0

	kickMix    = 0.7
	snareMix   = 0.3
	drumMaster = 0.5

	// decayFloor ends an envelope once it has fallen below this level.
	decayFloor = 1e-9
)

// Drums renders a kick on every beat and a noise snare on every other beat
// starting at beat two. The snare noise comes from noise, so output differs
// between calls unless noise is seeded. A nil noise uses the global source.
func Drums(duration float64, sampleRate, bpm int, noise NoiseSource) []float64 {
	n := sampleCount(sampleRate, duration)
	pattern := make([]float64, n)
	if n == 0 || bpm <= 0 {
		return pattern
	}
	if noise == nil {
		noise = globalNoise{}
	}

	t := linspace(duration, n)
	beat := 60 / float64(bpm)
	sr := float64(sampleRate)

	kick := make([]float64, n)
	for k := 0; ; k++ {
		at := float64(k) * beat
		if at >= duration {
			break
		}
		if int(at*sr) >= n {
			continue
		}
		addKick(kick, t, at)
	}

	snare := make([]float64, n)
	for k := 1; ; k += 2 {
		at := float64(k) * beat
		if at >= duration {
			break
		}
		if int(at*sr) >= n {
			continue
		}
		addSnare(snare, t, at, noise)
	}

	for i := range pattern {
		pattern[i] = (kick[i]*kickMix + snare[i]*snareMix) * drumMaster
	}
	return pattern
}

// addKick adds a pitch-swept decaying sine starting at time at.
func addKick(dst, t []float64, at float64) {
	for i := sort.SearchFloat64s(t, at); i < len(t); i++ {
		dt := t[i] - at
		env := math.Exp(-kickDecay * dt)
		if env < decayFloor {
			return
		}
		freq := kickTop*math.Exp(-kickSweep*dt) + kickFloor
		dst[i] += env * math.Sin(2*math.Pi*freq*dt)
	}
}

// addSnare adds a decaying burst of fresh gaussian noise starting at time at.
func addSnare(dst, t []float64, at float64, noise NoiseSource) {
	for i := sort.SearchFloat64s(t, at); i < len(t); i++ {
		env := math.Exp(-snareDecay * (t[i] - at))
		if env < decayFloor {
			return
		}
		dst[i] += env * noise.NormFloat64()
	}
}
