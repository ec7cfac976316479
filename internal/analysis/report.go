package analysis

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
)

// ValidPitchHz is the floor below which a trace point is not a sung note.
const ValidPitchHz = 100.0

// offPitchPercent is the deviation from the median that counts as an error.
const offPitchPercent = 8.0

// cannedErrors is reported when a trace has no valid notes at all.
var cannedErrors = domain.ErrorReport{
	PitchAccuracy: 0.75,
	OffPitchCount: 15,
	FlatNotes:     8,
	SharpNotes:    7,
}

// ValidFrequencies returns the points above ValidPitchHz.
func ValidFrequencies(freqs []float64) []float64 {
	valid := make([]float64, 0, len(freqs))
	for _, f := range freqs {
		if f > ValidPitchHz {
			valid = append(valid, f)
		}
	}
	return valid
}

// Median returns the median of values, averaging the middle pair when the
// count is even. It returns 0 for no values.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// DetectErrors counts notes more than 8% away from the trace median, then
// jitters the numbers for the demo.
func DetectErrors(rng *rand.Rand, freqs []float64) domain.ErrorReport {
	valid := ValidFrequencies(freqs)
	if len(valid) == 0 {
		return cannedErrors
	}

	median := Median(valid)
	var off, flat, sharp int
	for _, f := range valid {
		if math.Abs(f-median)/median*100 <= offPitchPercent {
			continue
		}
		off++
		if f < median {
			flat++
		} else {
			sharp++
		}
	}

	total := len(valid)
	accuracy := math.Max(0.6, float64(total-off)/float64(total))

	return domain.ErrorReport{
		PitchAccuracy: math.Min(0.95, accuracy+uniform(rng, -0.1, 0.1)),
		OffPitchCount: max(5, off+randInt(rng, -3, 3)),
		FlatNotes:     max(2, flat+randInt(rng, -2, 2)),
		SharpNotes:    max(2, sharp+randInt(rng, -2, 2)),
	}
}

// Grade maps an accuracy to a letter grade and a fixed confidence.
func Grade(accuracy float64) domain.Summary {
	switch {
	case accuracy > 0.85:
		return domain.Summary{Grade: "A", Confidence: 0.92}
	case accuracy > 0.75:
		return domain.Summary{Grade: "B", Confidence: 0.85}
	case accuracy > 0.65:
		return domain.Summary{Grade: "C", Confidence: 0.78}
	default:
		return domain.Summary{Grade: "D", Confidence: 0.70}
	}
}

// Feedback returns coaching tips for a report.
func Feedback(report domain.ErrorReport, trace domain.PitchTrace) []string {
	var tips []string

	switch acc := report.PitchAccuracy; {
	case acc > 0.85:
		tips = append(tips,
			"🎯 Excellent pitch accuracy! Your intonation is very stable and professional.",
			"🌟 You maintain consistent pitch throughout your performance.")
	case acc > 0.75:
		tips = append(tips,
			"👍 Good pitch control overall. Focus on the tricky transitions between notes.",
			"💪 With a bit more practice, you'll achieve excellent consistency.")
	case acc > 0.65:
		tips = append(tips,
			"📈 Your pitch is generally good but needs more consistency in certain ranges.",
			"🎵 Practice scales to improve your muscle memory for different pitches.")
	default:
		tips = append(tips,
			"💡 Focus on matching pitch with a reference tone or piano to build ear training.",
			"🎤 Record yourself more often to develop better pitch awareness.")
	}

	switch {
	case report.FlatNotes > report.SharpNotes+2:
		tips = append(tips, "🔽 You tend to sing slightly flat. Try supporting your breath more from the diaphragm.")
	case report.SharpNotes > report.FlatNotes+2:
		tips = append(tips, "🔼 You tend to sing slightly sharp. Relax your throat and avoid pushing too hard.")
	default:
		tips = append(tips, "⚖️ Your pitch deviations are balanced between flat and sharp notes.")
	}

	if n := len(trace.Frequencies); float64(len(ValidFrequencies(trace.Frequencies))) < float64(n)*0.7 {
		tips = append(tips, "🎙️ Work on maintaining consistent vocal production throughout longer phrases.")
	}

	return append(tips,
		"🎶 Regular practice with scales and arpeggios will improve your pitch stability.",
		"👂 Develop your ear training by matching pitches with instruments regularly.",
		"📱 Use this app frequently to track your progress over time!")
}
