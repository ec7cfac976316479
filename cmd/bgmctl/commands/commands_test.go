package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
	"github.com/srirammulukuntla11/vocalmaster/internal/pcm"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pop.wav")

	stdout, err := runCmd(t, "render", "-k", "G", "-t", "100", "-s", "pop", "-d", "1.5", "--seed", "3", "-o", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(stdout, "G pop @ 100 BPM") {
		t.Errorf("unexpected output %q", stdout)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	track, err := pcm.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(track.Samples) != 66150 {
		t.Errorf("expected 66150 samples, got %d", len(track.Samples))
	}
}

func TestRender_SeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.wav"), filepath.Join(dir, "b.wav")
	for _, p := range []string{a, b} {
		if _, err := runCmd(t, "render", "-s", "pop", "-d", "1", "--seed", "9", "-o", p); err != nil {
			t.Fatalf("render %s: %v", p, err)
		}
	}
	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if !bytes.Equal(da, db) {
		t.Error("same seed should render identical files")
	}
}

func TestRender_InvalidTempo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")
	if _, err := runCmd(t, "render", "-t", "0", "-o", path); err == nil {
		t.Fatal("expected error for tempo 0")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written on error")
	}
}

func TestKeys(t *testing.T) {
	stdout, err := runCmd(t, "keys")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	for _, want := range []string{"C#", "261.63", "pop", "7th", "half-time"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestAnalyze(t *testing.T) {
	stdout, err := runCmd(t, "analyze", "--seed", "5")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var report domain.AnalysisReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(report.Pitch.Frequencies) != 500 || report.Summary.Grade == "" {
		t.Errorf("unexpected report %+v", report.Summary)
	}

	again, err := runCmd(t, "analyze", "--seed", "5")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if again != stdout {
		t.Error("seeded analysis should be reproducible")
	}
}

func TestAnalyze_YAML(t *testing.T) {
	stdout, err := runCmd(t, "analyze", "--seed", "1", "-f", "yaml")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(stdout, "bgm_suggestions:") || strings.HasPrefix(strings.TrimSpace(stdout), "{") {
		t.Errorf("expected YAML output, got:\n%.200s", stdout)
	}
}

func TestAnalyze_BadFormat(t *testing.T) {
	if _, err := runCmd(t, "analyze", "-f", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.wav")
	if _, err := runCmd(t, "render", "-d", "0.5", "--seed", "1", "-o", path); err != nil {
		t.Fatalf("render: %v", err)
	}

	stdout, err := runCmd(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"44100 Hz", "samples:  22050", "PCM 16-bit", "0.500s"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}

	bogus := filepath.Join(t.TempDir(), "bogus.wav")
	os.WriteFile(bogus, []byte("not a wav file at all"), 0o644)
	if _, err := runCmd(t, "inspect", bogus); err == nil {
		t.Error("expected error for non-WAV input")
	}
}
