// Package services holds the application logic behind the HTTP API.
package services

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/srirammulukuntla11/vocalmaster/internal/analysis"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/ports"
	"github.com/srirammulukuntla11/vocalmaster/internal/pcm"
	"github.com/srirammulukuntla11/vocalmaster/internal/synth"
)

const (
	// DefaultDuration is the length of a generated track when none is asked for.
	DefaultDuration = 30.0
	// DefaultMaxDuration caps generate requests.
	DefaultMaxDuration = 300.0
	// DefaultMaxTempo caps the tempo of generated tracks. Render time grows
	// with tempo because every beat adds a drum hit.
	DefaultMaxTempo = 400
	// DefaultArtifactTTL is how long a rendered file stays downloadable.
	DefaultArtifactTTL = time.Hour

	testTrackSeconds = 10.0
)

// Options tune a Studio. Zero values select the defaults.
type Options struct {
	ArtifactDir   string
	ArtifactTTL   time.Duration
	MaxDuration   float64
	MaxTempo      int
	AnalysisDelay time.Duration
	// Seed makes every random draw reproducible when set.
	Seed *uint64
	Now  func() time.Time
}

// GenerateRequest asks for a BGM track. A nil Duration means DefaultDuration.
type GenerateRequest struct {
	Analysis domain.AnalysisPayload
	Duration *float64
}

// Studio analyzes recordings and renders backing tracks for them.
type Studio struct {
	analyzer ports.PitchAnalyzer
	repo     ports.ArtifactRepository
	opts     Options
	draws    atomic.Uint64
}

// NewStudio constructs a Studio.
func NewStudio(analyzer ports.PitchAnalyzer, repo ports.ArtifactRepository, opts Options) *Studio {
	if opts.ArtifactDir == "" {
		opts.ArtifactDir = os.TempDir()
	}
	if opts.ArtifactTTL <= 0 {
		opts.ArtifactTTL = DefaultArtifactTTL
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = DefaultMaxDuration
	}
	if opts.MaxTempo <= 0 {
		opts.MaxTempo = DefaultMaxTempo
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Studio{analyzer: analyzer, repo: repo, opts: opts}
}

// newRand returns a fresh generator for one request.
func (s *Studio) newRand() *rand.Rand {
	if s.opts.Seed != nil {
		return rand.New(rand.NewPCG(*s.opts.Seed, s.draws.Add(1)))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Ready reports whether the artifact store can serve requests. Stores that
// do not implement ports.HealthChecker are assumed ready.
func (s *Studio) Ready(ctx context.Context) error {
	hc, ok := s.repo.(ports.HealthChecker)
	if !ok {
		return nil
	}
	if err := hc.Ping(ctx); err != nil {
		return fmt.Errorf("service: artifact store unavailable: %w", err)
	}
	return nil
}

// Analyze produces the full report for one upload.
func (s *Studio) Analyze(ctx context.Context, upload domain.Upload) (domain.AnalysisReport, error) {
	if d := s.opts.AnalysisDelay; d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.AnalysisReport{}, ctx.Err()
		case <-timer.C:
		}
	}

	trace, err := s.analyzer.PitchTrace(ctx, upload)
	if err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("service: pitch analysis failed: %w", err)
	}

	rng := s.newRand()
	report := analysis.DetectErrors(rng, trace.Frequencies)
	key, tempo := analysis.GuessKeyAndTempo(rng, trace.Frequencies)

	return domain.AnalysisReport{
		Pitch:      trace,
		Errors:     report,
		Feedback:   analysis.Feedback(report, trace),
		Summary:    analysis.Grade(report.PitchAccuracy),
		Suggestion: domain.Suggestion{Key: key, Tempo: float64(tempo), Style: DefaultStyle},
	}, nil
}

// GenerateBGM renders a track for an analysis, stores it for download and
// returns it encoded.
func (s *Studio) GenerateBGM(ctx context.Context, req GenerateRequest) (domain.BGMResult, error) {
	duration := DefaultDuration
	if req.Duration != nil {
		duration = *req.Duration
	}
	if math.IsNaN(duration) || duration < 0 || duration > s.opts.MaxDuration {
		return domain.BGMResult{}, fmt.Errorf("service: duration %v outside [0, %v]: %w",
			duration, s.opts.MaxDuration, domain.ErrInvalidParameter)
	}

	rng := s.newRand()
	params := SelectParameters(req.Analysis, rng)
	if params.Tempo > s.opts.MaxTempo {
		return domain.BGMResult{}, fmt.Errorf("service: tempo %d above %d: %w",
			params.Tempo, s.opts.MaxTempo, domain.ErrInvalidParameter)
	}

	track, err := synth.NewComposer(rng).Synthesize(params.Key, params.Tempo, params.Style, duration)
	if err != nil {
		return domain.BGMResult{}, fmt.Errorf("service: synthesis failed: %w", err)
	}
	wav, err := pcm.Bytes(track)
	if err != nil {
		return domain.BGMResult{}, fmt.Errorf("service: encoding failed: %w", err)
	}

	art, err := s.storeArtifact(ctx, track, wav)
	if err != nil {
		return domain.BGMResult{}, err
	}

	return domain.BGMResult{
		Track:      track,
		WAV:        wav,
		Artifact:   art,
		Message:    fmt.Sprintf("Generated %s style BGM in %s major at %d BPM", track.Style, track.Key, track.Tempo),
		ChordsUsed: synth.ParseStyle(track.Style).RomanNumerals(),
	}, nil
}

func (s *Studio) storeArtifact(ctx context.Context, track domain.Track, wav []byte) (domain.Artifact, error) {
	id := uuid.NewString()
	path := filepath.Join(s.opts.ArtifactDir, "bgm-"+id+".wav")
	if err := os.WriteFile(path, wav, 0o644); err != nil {
		return domain.Artifact{}, fmt.Errorf("service: failed to write artifact: %w", err)
	}

	now := s.opts.Now().UTC()
	art := domain.Artifact{
		ID:        id,
		Path:      path,
		Key:       track.Key,
		Tempo:     track.Tempo,
		Style:     track.Style,
		Duration:  track.Duration,
		SizeBytes: int64(len(wav)),
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.ArtifactTTL),
	}
	if err := s.repo.Save(ctx, art); err != nil {
		_ = os.Remove(path)
		return domain.Artifact{}, fmt.Errorf("service: failed to save artifact: %w", err)
	}
	return art, nil
}

// TestTrack renders the fixed smoke-test clip: C major, 120 BPM, acoustic,
// ten seconds.
func (s *Studio) TestTrack(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	track, err := synth.NewComposer(s.newRand()).Synthesize(synth.DefaultKey, analysis.DefaultTempo, DefaultStyle, testTrackSeconds)
	if err != nil {
		return nil, fmt.Errorf("service: synthesis failed: %w", err)
	}
	return pcm.Bytes(track)
}

// OpenArtifact looks up a downloadable file. Expired artifacts are reported
// as domain.ErrExpired even if the janitor has not removed them yet.
func (s *Studio) OpenArtifact(ctx context.Context, id string) (domain.Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Artifact{}, fmt.Errorf("service: artifact %q: %w", id, domain.ErrNotFound)
	}
	art, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("service: artifact %q: %w", id, err)
	}
	if art.Expired(s.opts.Now()) {
		return domain.Artifact{}, fmt.Errorf("service: artifact %q: %w", id, domain.ErrExpired)
	}
	if _, err := os.Stat(art.Path); err != nil {
		return domain.Artifact{}, fmt.Errorf("service: artifact %q: %w", id, domain.ErrNotFound)
	}
	return art, nil
}
