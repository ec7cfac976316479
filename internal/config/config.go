// Package config loads runtime settings: built-in defaults, then an optional
// YAML file named by VOCALMASTER_CONFIG, then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// FileEnv names the variable holding the YAML config path.
const FileEnv = "VOCALMASTER_CONFIG"

// Config holds all runtime configuration.
type Config struct {
	// Server
	Port string

	// Storage
	DBPath        string
	ArtifactDir   string
	ArtifactTTL   time.Duration
	SweepInterval time.Duration
	Workers       int
	QueueSize     int

	// Generation
	MaxDuration   float64 // seconds
	MaxTempo      int     // BPM
	AnalysisDelay time.Duration
	SynthSeed     *uint64 // nil draws fresh randomness per request

	Analyzer Analyzer
}

// Analyzer points at a remote pitch service. An empty URL selects the
// built-in simulator.
type Analyzer struct {
	URL          string `yaml:"url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	TokenURL     string `yaml:"token_url"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:          "5000",
		DBPath:        "vocalmaster.db",
		ArtifactDir:   filepath.Join(os.TempDir(), "vocalmaster"),
		ArtifactTTL:   time.Hour,
		SweepInterval: time.Minute,
		Workers:       2,
		QueueSize:     100,
		MaxDuration:   300,
		MaxTempo:      400,
	}
}

// file mirrors Config in YAML. Durations are strings such as "90s".
type file struct {
	Port          string   `yaml:"port"`
	DBPath        string   `yaml:"db_path"`
	ArtifactDir   string   `yaml:"artifact_dir"`
	ArtifactTTL   string   `yaml:"artifact_ttl"`
	SweepInterval string   `yaml:"sweep_interval"`
	Workers       int      `yaml:"workers"`
	QueueSize     int      `yaml:"queue_size"`
	MaxDuration   float64  `yaml:"max_duration"`
	MaxTempo      int      `yaml:"max_tempo"`
	AnalysisDelay string   `yaml:"analysis_delay"`
	SynthSeed     *uint64  `yaml:"synth_seed"`
	Analyzer      Analyzer `yaml:"analyzer"`
}

// Load builds the configuration from defaults, the YAML file named by
// VOCALMASTER_CONFIG (if any) and the environment.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.mergeEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	setStr(&c.Port, f.Port)
	setStr(&c.DBPath, f.DBPath)
	setStr(&c.ArtifactDir, f.ArtifactDir)
	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"artifact_ttl", f.ArtifactTTL, &c.ArtifactTTL},
		{"sweep_interval", f.SweepInterval, &c.SweepInterval},
		{"analysis_delay", f.AnalysisDelay, &c.AnalysisDelay},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s: %s: %w", path, d.name, err)
		}
		*d.dst = v
	}
	if f.Workers > 0 {
		c.Workers = f.Workers
	}
	if f.QueueSize > 0 {
		c.QueueSize = f.QueueSize
	}
	if f.MaxDuration > 0 {
		c.MaxDuration = f.MaxDuration
	}
	if f.MaxTempo > 0 {
		c.MaxTempo = f.MaxTempo
	}
	if f.SynthSeed != nil {
		seed := *f.SynthSeed
		c.SynthSeed = &seed
	}
	setStr(&c.Analyzer.URL, f.Analyzer.URL)
	setStr(&c.Analyzer.ClientID, f.Analyzer.ClientID)
	setStr(&c.Analyzer.ClientSecret, f.Analyzer.ClientSecret)
	setStr(&c.Analyzer.TokenURL, f.Analyzer.TokenURL)
	return nil
}

// mergeEnv applies environment overrides. Unparseable values are ignored.
func (c *Config) mergeEnv() {
	c.Port = envStr("PORT", c.Port)
	c.DBPath = envStr("DB_PATH", c.DBPath)
	c.ArtifactDir = envStr("ARTIFACT_DIR", c.ArtifactDir)
	c.ArtifactTTL = envDuration("ARTIFACT_TTL", c.ArtifactTTL)
	c.SweepInterval = envDuration("SWEEP_INTERVAL", c.SweepInterval)
	c.Workers = envInt("WORKERS", c.Workers)
	c.QueueSize = envInt("QUEUE_SIZE", c.QueueSize)
	c.MaxDuration = envFloat("MAX_DURATION", c.MaxDuration)
	c.MaxTempo = envInt("MAX_TEMPO", c.MaxTempo)
	c.AnalysisDelay = envDuration("ANALYSIS_DELAY", c.AnalysisDelay)
	if v := os.Getenv("SYNTH_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.SynthSeed = &n
		}
	}
	c.Analyzer.URL = envStr("ANALYZER_URL", c.Analyzer.URL)
	c.Analyzer.ClientID = envStr("ANALYZER_CLIENT_ID", c.Analyzer.ClientID)
	c.Analyzer.ClientSecret = envStr("ANALYZER_CLIENT_SECRET", c.Analyzer.ClientSecret)
	c.Analyzer.TokenURL = envStr("ANALYZER_TOKEN_URL", c.Analyzer.TokenURL)
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

// envDuration accepts Go durations ("90s") or plain seconds ("90").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
