package domain

// PitchTrace is a low-rate frequency time series (not audio).
type PitchTrace struct {
	Frequencies []float64 `json:"frequencies"`
	Times       []float64 `json:"times"`
}

// ErrorReport summarizes how far a trace strays from its own median.
type ErrorReport struct {
	PitchAccuracy float64 `json:"pitch_accuracy"`
	OffPitchCount int     `json:"off_pitch_count"`
	FlatNotes     int     `json:"flat_notes"`
	SharpNotes    int     `json:"sharp_notes"`
}

// Summary grades an analysis and states how confident the grade is.
type Summary struct {
	Grade      string  `json:"grade"`
	Confidence float64 `json:"confidence"`
}

// Suggestion carries BGM parameters proposed by an analysis. Tempo is any
// JSON number; it is rounded to whole BPM when a track is rendered.
type Suggestion struct {
	Key   string  `json:"key"`
	Tempo float64 `json:"tempo"`
	Style string  `json:"style,omitempty"`
}

// AnalysisReport is the full result of analyzing one upload.
type AnalysisReport struct {
	Pitch      PitchTrace  `json:"pitch_analysis"`
	Errors     ErrorReport `json:"error_detection"`
	Feedback   []string    `json:"feedback"`
	Summary    Summary     `json:"summary"`
	Suggestion Suggestion  `json:"bgm_suggestions"`
}

// AnalysisPayload is what a generate request may carry back from an earlier
// analysis. Either field may be absent.
type AnalysisPayload struct {
	Suggestion *Suggestion `json:"bgm_suggestions,omitempty"`
	Pitch      *PitchTrace `json:"pitch_analysis,omitempty"`
}

// Upload is a recording submitted for analysis.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
