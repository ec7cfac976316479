package domain

import "time"

// Artifact is a rendered WAV kept on disk for direct download until ExpiresAt.
type Artifact struct {
	ID        string
	Path      string
	Key       string
	Tempo     int
	Style     string
	Duration  float64
	SizeBytes int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the artifact is past its expiry at now.
func (a Artifact) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}
