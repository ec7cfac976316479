package synth

// ChordType picks the frequency ratios stacked on a fundamental.
type ChordType int

const (
	Major ChordType = iota
	Minor
	// Seventh is also what any unrecognized chord name becomes.
	Seventh
)

// chordToneAmplitude is fixed for every chord tone.
const chordToneAmplitude = 0.3

// ParseChordType maps "major" and "minor" to their types; every other name
// (including "7th") is a seventh chord.
func ParseChordType(name string) ChordType {
	switch name {
	case "major":
		return Major
	case "minor":
		return Minor
	default:
		return Seventh
	}
}

func (c ChordType) String() string {
	switch c {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return "7th"
	}
}

// Ratios returns the frequency multiples of the fundamental.
func (c ChordType) Ratios() []float64 {
	switch c {
	case Major:
		return []float64{1, 5.0 / 4, 3.0 / 2}
	case Minor:
		return []float64{1, 6.0 / 5, 3.0 / 2}
	default:
		return []float64{1, 5.0 / 4, 3.0 / 2, 7.0 / 4}
	}
}

// Chord renders the mean of one tone per ratio, each at amplitude 0.3, so
// the result never exceeds 0.3 in magnitude.
func Chord(fundamental float64, chordType ChordType, duration float64, sampleRate int) []float64 {
	return chord(fundamental, chordType, duration, sampleRate, -1)
}

// chord renders the first limit samples of Chord (all when limit < 0).
func chord(fundamental float64, chordType ChordType, duration float64, sampleRate, limit int) []float64 {
	ratios := chordType.Ratios()
	var out []float64
	for _, r := range ratios {
		w := tone(fundamental*r, duration, sampleRate, chordToneAmplitude, limit)
		if out == nil {
			out = make([]float64, len(w))
		}
		for i, v := range w {
			out[i] += v
		}
	}
	n := float64(len(ratios))
	for i := range out {
		out[i] /= n
	}
	return out
}
