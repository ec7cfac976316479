// Package pcm quantizes float mixes to 16-bit PCM and stores them in a WAV
// container.
package pcm

import "math"

const (
	// BitDepth is the sample width of every encoded file.
	BitDepth = 16
	// Channels is fixed at mono.
	Channels = 1

	// fullScale maps an amplitude of 1.0 to the largest positive sample.
	fullScale = 32767

	// wavFormatPCM is the WAVE format tag for integer PCM.
	wavFormatPCM = 1

	// HeaderSize is the size of a canonical PCM WAV header.
	HeaderSize = 44
)

// Quantize converts samples nominally in [-1, 1] to int16. Values outside
// the range are clamped instead of wrapping.
func Quantize(buf []float64) []int16 {
	out := make([]int16, len(buf))
	for i, v := range buf {
		out[i] = QuantizeSample(v)
	}
	return out
}

// QuantizeSample rounds v*32767 and clamps it to the int16 range. NaN is 0.
func QuantizeSample(v float64) int16 {
	s := math.Round(v * fullScale)
	switch {
	case math.IsNaN(s):
		return 0
	case s > math.MaxInt16:
		return math.MaxInt16
	case s < math.MinInt16:
		return math.MinInt16
	}
	return int16(s)
}

// EncodedSize is the container size for n mono 16-bit samples.
func EncodedSize(n int) int {
	return HeaderSize + n*Channels*BitDepth/8
}
