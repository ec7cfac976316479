package analysis

import (
	"math"
	"math/rand/v2"

	"github.com/srirammulukuntla11/vocalmaster/internal/synth"
)

// DefaultTempo is used when nothing better is known.
const DefaultTempo = 120

// candidateTempos are the bpm values a guessed tempo is drawn from.
var candidateTempos = []int{120, 125, 130, 115, 110, 140}

// c0 is the frequency of C0 with A4 at 440 Hz.
var c0 = 440 * math.Pow(2, -4.75)

// NoteName returns the equal-tempered pitch class nearest to freq. Half
// steps are rounded half to even. freq must be positive.
func NoteName(freq float64) string {
	h := int(math.RoundToEven(12 * math.Log2(freq/c0)))
	return synth.PitchClasses[((h%12)+12)%12]
}

// DominantKey returns the most frequent pitch class among valid points.
// Ties go to the pitch class seen first. ok is false when no point is valid.
func DominantKey(freqs []float64) (key string, ok bool) {
	counts := make(map[string]int)
	var order []string
	for _, f := range ValidFrequencies(freqs) {
		name := NoteName(f)
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}
	best := 0
	for _, name := range order {
		if counts[name] > best {
			key, best = name, counts[name]
		}
	}
	return key, best > 0
}

// GuessTempo picks a plausible bpm. It does not look at the signal.
func GuessTempo(rng *rand.Rand) int {
	return candidateTempos[rng.IntN(len(candidateTempos))]
}

// CandidateTempos returns the values GuessTempo may return.
func CandidateTempos() []int {
	return append([]int(nil), candidateTempos...)
}

// GuessKeyAndTempo derives a key from the trace and picks a tempo. With no
// valid points it returns the default key at DefaultTempo.
func GuessKeyAndTempo(rng *rand.Rand, freqs []float64) (string, int) {
	key, ok := DominantKey(freqs)
	if !ok {
		return synth.DefaultKey, DefaultTempo
	}
	return key, GuessTempo(rng)
}
