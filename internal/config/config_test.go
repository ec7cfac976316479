package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envVars = []string{
	FileEnv, "PORT", "DB_PATH", "ARTIFACT_DIR", "ARTIFACT_TTL", "SWEEP_INTERVAL",
	"WORKERS", "QUEUE_SIZE", "MAX_DURATION", "MAX_TEMPO", "ANALYSIS_DELAY", "SYNTH_SEED",
	"ANALYZER_URL", "ANALYZER_CLIENT_ID", "ANALYZER_CLIENT_SECRET", "ANALYZER_TOKEN_URL",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocalmaster.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.DBPath != "vocalmaster.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
	if cfg.ArtifactTTL != time.Hour {
		t.Errorf("ArtifactTTL = %v, want 1h", cfg.ArtifactTTL)
	}
	if cfg.SweepInterval != time.Minute {
		t.Errorf("SweepInterval = %v, want 1m", cfg.SweepInterval)
	}
	if cfg.Workers != 2 || cfg.QueueSize != 100 {
		t.Errorf("Workers/QueueSize = %d/%d, want 2/100", cfg.Workers, cfg.QueueSize)
	}
	if cfg.MaxDuration != 300 {
		t.Errorf("MaxDuration = %v, want 300", cfg.MaxDuration)
	}
	if cfg.MaxTempo != 400 {
		t.Errorf("MaxTempo = %d, want 400", cfg.MaxTempo)
	}
	if cfg.AnalysisDelay != 0 {
		t.Errorf("AnalysisDelay = %v, want 0", cfg.AnalysisDelay)
	}
	if cfg.SynthSeed != nil {
		t.Errorf("SynthSeed = %v, want nil", *cfg.SynthSeed)
	}
	if cfg.Analyzer.URL != "" {
		t.Errorf("Analyzer.URL = %q, want empty", cfg.Analyzer.URL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/data/bgm.db")
	t.Setenv("ARTIFACT_TTL", "15m")
	t.Setenv("SWEEP_INTERVAL", "30")
	t.Setenv("WORKERS", "4")
	t.Setenv("QUEUE_SIZE", "10")
	t.Setenv("MAX_DURATION", "120.5")
	t.Setenv("MAX_TEMPO", "240")
	t.Setenv("ANALYSIS_DELAY", "2s")
	t.Setenv("SYNTH_SEED", "42")
	t.Setenv("ANALYZER_URL", "https://pitch.example")
	t.Setenv("ANALYZER_TOKEN_URL", "https://auth.example/token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" || cfg.DBPath != "/data/bgm.db" {
		t.Errorf("unexpected port/db: %q %q", cfg.Port, cfg.DBPath)
	}
	if cfg.ArtifactTTL != 15*time.Minute {
		t.Errorf("ArtifactTTL = %v", cfg.ArtifactTTL)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Errorf("SweepInterval = %v, want 30s from plain seconds", cfg.SweepInterval)
	}
	if cfg.Workers != 4 || cfg.QueueSize != 10 {
		t.Errorf("Workers/QueueSize = %d/%d", cfg.Workers, cfg.QueueSize)
	}
	if cfg.MaxDuration != 120.5 {
		t.Errorf("MaxDuration = %v", cfg.MaxDuration)
	}
	if cfg.MaxTempo != 240 {
		t.Errorf("MaxTempo = %d", cfg.MaxTempo)
	}
	if cfg.AnalysisDelay != 2*time.Second {
		t.Errorf("AnalysisDelay = %v", cfg.AnalysisDelay)
	}
	if cfg.SynthSeed == nil || *cfg.SynthSeed != 42 {
		t.Errorf("SynthSeed = %v, want 42", cfg.SynthSeed)
	}
	if cfg.Analyzer.URL != "https://pitch.example" || cfg.Analyzer.TokenURL != "https://auth.example/token" {
		t.Errorf("unexpected analyzer %+v", cfg.Analyzer)
	}
}

func TestLoadInvalidEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKERS", "many")
	t.Setenv("MAX_DURATION", "-3")
	t.Setenv("MAX_TEMPO", "0")
	t.Setenv("ARTIFACT_TTL", "soon")
	t.Setenv("SYNTH_SEED", "-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Workers != def.Workers || cfg.MaxDuration != def.MaxDuration || cfg.MaxTempo != def.MaxTempo || cfg.ArtifactTTL != def.ArtifactTTL {
		t.Errorf("invalid values should keep defaults, got %+v", cfg)
	}
	if cfg.SynthSeed != nil {
		t.Error("invalid seed should be ignored")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
port: "7000"
artifact_dir: /srv/bgm
artifact_ttl: 2h
analysis_delay: 500ms
workers: 3
max_duration: 60.0
max_tempo: 200
synth_seed: 7
analyzer:
  url: https://pitch.internal
  client_id: vocal
  client_secret: s3cret
  token_url: https://auth.internal/token
`)
	t.Setenv(FileEnv, path)
	t.Setenv("WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "7000" || cfg.ArtifactDir != "/srv/bgm" {
		t.Errorf("unexpected port/dir %q %q", cfg.Port, cfg.ArtifactDir)
	}
	if cfg.ArtifactTTL != 2*time.Hour || cfg.AnalysisDelay != 500*time.Millisecond {
		t.Errorf("unexpected durations %v %v", cfg.ArtifactTTL, cfg.AnalysisDelay)
	}
	if cfg.Workers != 8 {
		t.Errorf("env should override file: Workers = %d", cfg.Workers)
	}
	if cfg.MaxDuration != 60 || cfg.MaxTempo != 200 {
		t.Errorf("MaxDuration/MaxTempo = %v/%d", cfg.MaxDuration, cfg.MaxTempo)
	}
	if cfg.SynthSeed == nil || *cfg.SynthSeed != 7 {
		t.Errorf("SynthSeed = %v", cfg.SynthSeed)
	}
	if cfg.Analyzer.ClientID != "vocal" || cfg.Analyzer.ClientSecret != "s3cret" || cfg.Analyzer.TokenURL != "https://auth.internal/token" {
		t.Errorf("unexpected analyzer %+v", cfg.Analyzer)
	}
	if cfg.SweepInterval != time.Minute {
		t.Errorf("unset keys should keep defaults, SweepInterval = %v", cfg.SweepInterval)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, "read"},
		{"bad yaml", func(t *testing.T) string { return writeYAML(t, "port: [unclosed") }, "parse"},
		{"bad duration", func(t *testing.T) string { return writeYAML(t, "artifact_ttl: forever\n") }, "artifact_ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(FileEnv, tt.path(t))
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
