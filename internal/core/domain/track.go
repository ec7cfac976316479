package domain

// Track is a rendered BGM clip: mono 16-bit PCM plus the parameters it was
// rendered with. Key and Style hold the resolved names, so an unknown key
// reports "C" and an unknown style reports "ballad".
type Track struct {
	SampleRate int
	Samples    []int16
	Key        string
	Tempo      int
	Style      string
	Duration   float64 // seconds
}

// Seconds returns the playing time implied by the sample count.
func (t Track) Seconds() float64 {
	if t.SampleRate <= 0 {
		return 0
	}
	return float64(len(t.Samples)) / float64(t.SampleRate)
}

// BGMResult is everything a generate request produces.
type BGMResult struct {
	Track      Track
	WAV        []byte
	Artifact   Artifact
	Message    string
	ChordsUsed []string
}
