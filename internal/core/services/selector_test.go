package services

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/srirammulukuntla11/vocalmaster/internal/analysis"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
)

func TestSelectParameters(t *testing.T) {
	tests := []struct {
		name    string
		payload domain.AnalysisPayload
		want    Parameters
	}{
		{
			name:    "empty payload",
			payload: domain.AnalysisPayload{},
			want:    Parameters{Key: "C", Tempo: 120, Style: "acoustic"},
		},
		{
			name:    "suggestion wins",
			payload: domain.AnalysisPayload{Suggestion: &domain.Suggestion{Key: "G", Tempo: 90, Style: "pop"}, Pitch: &domain.PitchTrace{Frequencies: []float64{440}}},
			want:    Parameters{Key: "G", Tempo: 90, Style: "pop"},
		},
		{
			name:    "suggestion without style",
			payload: domain.AnalysisPayload{Suggestion: &domain.Suggestion{Key: "D", Tempo: 100}},
			want:    Parameters{Key: "D", Tempo: 100, Style: "acoustic"},
		},
		{
			name:    "empty suggestion counts as absent",
			payload: domain.AnalysisPayload{Suggestion: &domain.Suggestion{}},
			want:    Parameters{Key: "C", Tempo: 120, Style: "acoustic"},
		},
		{
			name:    "suggestion with gaps",
			payload: domain.AnalysisPayload{Suggestion: &domain.Suggestion{Style: "pop"}},
			want:    Parameters{Key: "C", Tempo: 120, Style: "pop"},
		},
		{
			name:    "fractional tempo rounds",
			payload: domain.AnalysisPayload{Suggestion: &domain.Suggestion{Key: "A", Tempo: 117.5}},
			want:    Parameters{Key: "A", Tempo: 118, Style: "acoustic"},
		},
		{
			name:    "whole float tempo",
			payload: domain.AnalysisPayload{Suggestion: &domain.Suggestion{Key: "A", Tempo: 120.0}},
			want:    Parameters{Key: "A", Tempo: 120, Style: "acoustic"},
		},
		{
			name:    "huge tempo saturates",
			payload: domain.AnalysisPayload{Suggestion: &domain.Suggestion{Key: "A", Tempo: 1e30}},
			want:    Parameters{Key: "A", Tempo: math.MaxInt32, Style: "acoustic"},
		},
		{
			name:    "unknown names pass through",
			payload: domain.AnalysisPayload{Suggestion: &domain.Suggestion{Key: "H", Tempo: 80, Style: "metal"}},
			want:    Parameters{Key: "H", Tempo: 80, Style: "metal"},
		},
		{
			name:    "pitch trace without valid notes",
			payload: domain.AnalysisPayload{Pitch: &domain.PitchTrace{Frequencies: []float64{}}},
			want:    Parameters{Key: "C", Tempo: 120, Style: "acoustic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectParameters(tt.payload, rand.New(rand.NewPCG(1, 2)))
			if got != tt.want {
				t.Errorf("SelectParameters() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelectParameters_FromPitch(t *testing.T) {
	payload := domain.AnalysisPayload{Pitch: &domain.PitchTrace{Frequencies: []float64{329.63, 329.63, 440, 50}}}
	for seed := uint64(0); seed < 10; seed++ {
		got := SelectParameters(payload, rand.New(rand.NewPCG(seed, seed)))
		if got.Key != "E" || got.Style != "acoustic" {
			t.Fatalf("unexpected parameters %+v", got)
		}
		if !slices.Contains(analysis.CandidateTempos(), got.Tempo) {
			t.Fatalf("tempo %d not a candidate", got.Tempo)
		}
	}
}

func TestSelectParameters_EmptySuggestionUsesPitch(t *testing.T) {
	payload := domain.AnalysisPayload{
		Suggestion: &domain.Suggestion{},
		Pitch:      &domain.PitchTrace{Frequencies: []float64{329.63, 329.63}},
	}
	got := SelectParameters(payload, rand.New(rand.NewPCG(3, 4)))
	if got.Key != "E" || got.Style != "acoustic" {
		t.Fatalf("unexpected parameters %+v", got)
	}
	if !slices.Contains(analysis.CandidateTempos(), got.Tempo) {
		t.Fatalf("tempo %d not a candidate", got.Tempo)
	}
}

func TestSelectParameters_DecodedTempo(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{`{"bgm_suggestions":{"key":"D","tempo":100}}`, 100},
		{`{"bgm_suggestions":{"key":"D","tempo":120.0}}`, 120},
		{`{"bgm_suggestions":{"key":"D","tempo":117.5}}`, 118},
		{`{"bgm_suggestions":{"key":"D","tempo":89.2}}`, 89},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var payload domain.AnalysisPayload
			if err := json.Unmarshal([]byte(tt.body), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := SelectParameters(payload, rand.New(rand.NewPCG(1, 1))); got.Tempo != tt.want {
				t.Errorf("tempo = %d, want %d", got.Tempo, tt.want)
			}
		})
	}
}
