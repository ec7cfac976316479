// Package synth renders the background-music clip: sine tones, chords, a
// kick/snare pattern and the composer that sequences and mixes them.
package synth

import "math"

// sampleCount is round(sampleRate*duration), or 0 for degenerate input.
func sampleCount(sampleRate int, duration float64) int {
	if sampleRate <= 0 || !(duration > 0) || math.IsInf(duration, 1) {
		return 0
	}
	return int(math.Round(float64(sampleRate) * duration))
}

// linspace returns n evenly spaced instants covering [0, duration], both
// ends included.
func linspace(duration float64, n int) []float64 {
	t := make([]float64, n)
	if n < 2 {
		return t
	}
	step := duration / float64(n-1)
	for i := range t {
		t[i] = float64(i) * step
	}
	t[n-1] = duration
	return t
}

// Tone renders amplitude*sin(2*pi*freq*t) over round(sampleRate*duration)
// samples. A non-positive frequency gives silence and a non-positive
// duration gives an empty buffer.
func Tone(freq, duration float64, sampleRate int, amplitude float64) []float64 {
	return tone(freq, duration, sampleRate, amplitude, -1)
}

// tone renders the first limit samples of Tone (all of them when limit < 0).
// The time grid is always that of the full-length tone.
func tone(freq, duration float64, sampleRate int, amplitude float64, limit int) []float64 {
	full := sampleCount(sampleRate, duration)
	count := full
	if limit >= 0 && limit < full {
		count = limit
	}
	wave := make([]float64, count)
	if freq <= 0 || count == 0 {
		return wave
	}
	var step float64
	if full > 1 {
		step = duration / float64(full-1)
	}
	w := 2 * math.Pi * freq
	for i := range wave {
		t := float64(i) * step
		if i == full-1 {
			t = duration
		}
		wave[i] = amplitude * math.Sin(w*t)
	}
	return wave
}

// Normalize scales buf in place so its largest magnitude equals peak.
// A silent buffer is returned unchanged.
func Normalize(buf []float64, peak float64) []float64 {
	var maxAbs float64
	for _, v := range buf {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		return buf
	}
	scale := peak / maxAbs
	for i := range buf {
		buf[i] *= scale
	}
	return buf
}
