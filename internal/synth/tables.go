package synth

// SampleRate is the rate every synthesized buffer is rendered at.
const SampleRate = 44100

// PitchClasses lists the twelve equal-tempered note names, sharps only.
var PitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// DefaultKey is used whenever a key name is not in the table.
const DefaultKey = "C"

// keyFrequencies anchors every pitch class at octave 4.
var keyFrequencies = map[string]float64{
	"C": 261.63, "C#": 277.18, "D": 293.66, "D#": 311.13,
	"E": 329.63, "F": 349.23, "F#": 369.99, "G": 392.00,
	"G#": 415.30, "A": 440.00, "A#": 466.16, "B": 493.88,
}

// ResolveKey returns name when it is a known key and DefaultKey otherwise.
func ResolveKey(name string) string {
	if _, ok := keyFrequencies[name]; ok {
		return name
	}
	return DefaultKey
}

// KeyFrequency returns the octave-4 reference frequency for a key name.
func KeyFrequency(name string) float64 {
	return keyFrequencies[ResolveKey(name)]
}

// Style selects the progression, drum level and drum tempo of a track.
type Style int

const (
	// StyleBallad is also the fallback for any unrecognized style name.
	StyleBallad Style = iota
	StyleAcoustic
	StylePop
)

// ParseStyle maps a style name to a Style. Anything other than "acoustic"
// or "pop" is a ballad.
func ParseStyle(name string) Style {
	switch name {
	case "acoustic":
		return StyleAcoustic
	case "pop":
		return StylePop
	default:
		return StyleBallad
	}
}

func (s Style) String() string {
	switch s {
	case StyleAcoustic:
		return "acoustic"
	case StylePop:
		return "pop"
	default:
		return "ballad"
	}
}

// StyleProfile is the fixed arrangement recipe for a style.
type StyleProfile struct {
	Chords        [4]ChordType
	BeatsPerChord int
	DrumGain      float64
	HalfTimeDrums bool
}

var styleProfiles = map[Style]StyleProfile{
	StyleAcoustic: {
		Chords:        [4]ChordType{Major, Minor, Major, Major},
		BeatsPerChord: 4,
		DrumGain:      0.2,
	},
	StylePop: {
		Chords:        [4]ChordType{Major, Major, Minor, Seventh},
		BeatsPerChord: 2,
		DrumGain:      0.4,
	},
	StyleBallad: {
		Chords:        [4]ChordType{Minor, Major, Minor, Major},
		BeatsPerChord: 8,
		DrumGain:      0.1,
		HalfTimeDrums: true,
	},
}

// Profile returns the arrangement recipe for s.
func (s Style) Profile() StyleProfile {
	if p, ok := styleProfiles[s]; ok {
		return p
	}
	return styleProfiles[StyleBallad]
}

// DrumTempo is the bpm handed to the percussion layer. Half-time styles
// use integer division, so a tempo of 1 leaves the drums silent.
func (p StyleProfile) DrumTempo(tempo int) int {
	if p.HalfTimeDrums {
		return tempo / 2
	}
	return tempo
}

// RomanNumerals is the progression label reported to clients.
func (s Style) RomanNumerals() []string {
	if s == StylePop {
		return []string{"I", "IV", "V", "vi"}
	}
	return []string{"I", "V", "vi", "IV"}
}
