package synth

import (
	"fmt"
	"math"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
	"github.com/srirammulukuntla11/vocalmaster/internal/pcm"
)

const (
	// MixPeak is the absolute peak every composed track is normalized to.
	MixPeak = 0.8

	melodyLevel   = 0.6
	bassLevel     = 0.4
	bassAmplitude = 0.3
)

// Composer sequences chords, bass and drums into a normalized mix. It holds
// no mutable state beyond its noise source.
type Composer struct {
	SampleRate int
	Noise      NoiseSource
}

// NewComposer returns a Composer at SampleRate. A nil noise uses the global
// random source.
func NewComposer(noise NoiseSource) *Composer {
	return &Composer{SampleRate: SampleRate, Noise: noise}
}

// Compose renders a track and returns it with its sample rate.
//
// A tempo below 1 or a negative (or NaN/infinite) duration is rejected with
// domain.ErrInvalidParameter. A zero duration yields an empty buffer.
func (c *Composer) Compose(key string, tempo int, style Style, duration float64) ([]float64, int, error) {
	sr := c.SampleRate
	if sr <= 0 {
		sr = SampleRate
	}
	if tempo < 1 {
		return nil, sr, fmt.Errorf("synth: tempo %d: %w", tempo, domain.ErrInvalidParameter)
	}
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, sr, fmt.Errorf("synth: duration %v: %w", duration, domain.ErrInvalidParameter)
	}
	target := sampleCount(sr, duration)
	if target == 0 {
		return []float64{}, sr, nil
	}

	base := KeyFrequency(key)
	profile := style.Profile()
	melody := fill(progression(base, profile, tempo, sr, target), target)

	gain := profile.DrumGain
	drums := Drums(duration, sr, profile.DrumTempo(tempo), c.Noise)
	bass := Tone(base/2, duration, sr, bassAmplitude)

	mix := make([]float64, target)
	for i := range mix {
		mix[i] = melody[i]*melodyLevel + bass[i]*bassLevel + drums[i]*gain
	}
	return Normalize(mix, MixPeak), sr, nil
}

// progression renders one cycle of four chords, each a semitone above the
// last, each lasting BeatsPerChord beats. Rendering stops once the cycle
// covers want samples, since fill would discard the rest.
func progression(base float64, profile StyleProfile, tempo, sampleRate, want int) []float64 {
	chordDur := float64(profile.BeatsPerChord) * 60 / float64(tempo)
	var cycle []float64
	for i, ct := range profile.Chords {
		remaining := want - len(cycle)
		if remaining <= 0 {
			break
		}
		freq := base * math.Pow(2, float64(i)/12)
		cycle = append(cycle, chord(freq, ct, chordDur, sampleRate, remaining)...)
	}
	return cycle
}

// fill doubles cycle onto itself until it covers n samples, then truncates
// to exactly n. An empty cycle gives silence.
func fill(cycle []float64, n int) []float64 {
	if len(cycle) == 0 {
		return make([]float64, n)
	}
	out := cycle
	for len(out) < n {
		out = append(out, out...)
	}
	return out[:n]
}

// Synthesize composes and quantizes a track. Unknown keys fall back to C and
// unknown styles to ballad; the returned Track records the resolved names.
func (c *Composer) Synthesize(key string, tempo int, style string, duration float64) (domain.Track, error) {
	st := ParseStyle(style)
	buf, sr, err := c.Compose(key, tempo, st, duration)
	if err != nil {
		return domain.Track{}, err
	}
	return domain.Track{
		SampleRate: sr,
		Samples:    pcm.Quantize(buf),
		Key:        ResolveKey(key),
		Tempo:      tempo,
		Style:      st.String(),
		Duration:   duration,
	}, nil
}

// Synthesize renders a track with an unseeded composer.
func Synthesize(key string, tempo int, style string, duration float64) (domain.Track, error) {
	return NewComposer(nil).Synthesize(key, tempo, style, duration)
}
