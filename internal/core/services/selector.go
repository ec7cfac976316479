package services

import (
	"math"
	"math/rand/v2"

	"github.com/srirammulukuntla11/vocalmaster/internal/analysis"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
	"github.com/srirammulukuntla11/vocalmaster/internal/synth"
)

// DefaultStyle is used when a request does not name one.
const DefaultStyle = "acoustic"

// Parameters are the inputs handed to the synthesizer.
type Parameters struct {
	Key   string
	Tempo int
	Style string
}

// SelectParameters picks BGM parameters from an earlier analysis. An
// explicit suggestion wins; otherwise the key is guessed from the pitch
// trace; with neither the result is C at 120 BPM. Values are passed on
// unresolved so the synthesizer applies its own fallbacks. An empty
// suggestion counts as absent.
func SelectParameters(payload domain.AnalysisPayload, rng *rand.Rand) Parameters {
	if s := payload.Suggestion; s != nil && *s != (domain.Suggestion{}) {
		p := Parameters{Key: s.Key, Tempo: roundTempo(s.Tempo), Style: s.Style}
		if p.Key == "" {
			p.Key = synth.DefaultKey
		}
		if p.Tempo <= 0 {
			p.Tempo = analysis.DefaultTempo
		}
		if p.Style == "" {
			p.Style = DefaultStyle
		}
		return p
	}
	if payload.Pitch != nil {
		key, tempo := analysis.GuessKeyAndTempo(rng, payload.Pitch.Frequencies)
		return Parameters{Key: key, Tempo: tempo, Style: DefaultStyle}
	}
	return Parameters{Key: synth.DefaultKey, Tempo: analysis.DefaultTempo, Style: DefaultStyle}
}

// roundTempo rounds a suggested tempo to whole BPM, saturating at the int32
// range so oversized values still fail the caller's ceiling check.
func roundTempo(bpm float64) int {
	switch {
	case math.IsNaN(bpm):
		return 0
	case bpm > math.MaxInt32:
		return math.MaxInt32
	case bpm < math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(bpm))
}
