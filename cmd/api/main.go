package main

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srirammulukuntla11/vocalmaster/internal/adapters/pitchapi"
	"github.com/srirammulukuntla11/vocalmaster/internal/adapters/rest"
	"github.com/srirammulukuntla11/vocalmaster/internal/adapters/sqlite"
	"github.com/srirammulukuntla11/vocalmaster/internal/analysis"
	"github.com/srirammulukuntla11/vocalmaster/internal/config"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/ports"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/services"
	"github.com/srirammulukuntla11/vocalmaster/internal/worker"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if err := os.MkdirAll(cfg.ArtifactDir, 0o755); err != nil {
		log.Fatalf("FATAL: Failed to create artifact dir %s: %v", cfg.ArtifactDir, err)
	}

	// 2. Driven adapters
	repo, err := sqlite.NewAdapter(cfg.DBPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer repo.Close()

	var analyzer ports.PitchAnalyzer
	if cfg.Analyzer.URL != "" {
		analyzer = pitchapi.NewClient(pitchapi.Config{
			BaseURL:      cfg.Analyzer.URL,
			ClientID:     cfg.Analyzer.ClientID,
			ClientSecret: cfg.Analyzer.ClientSecret,
			TokenURL:     cfg.Analyzer.TokenURL,
		}, nil)
		log.Printf("🎤 Pitch Analysis: remote (%s)", cfg.Analyzer.URL)
	} else {
		var rng *rand.Rand
		if cfg.SynthSeed != nil {
			rng = rand.New(rand.NewPCG(*cfg.SynthSeed, 0))
		}
		analyzer = analysis.NewSimulator(rng)
		log.Println("🎤 Pitch Analysis: simulated")
	}

	// 3. Core service
	svc := services.NewStudio(analyzer, repo, services.Options{
		ArtifactDir:   cfg.ArtifactDir,
		ArtifactTTL:   cfg.ArtifactTTL,
		MaxDuration:   cfg.MaxDuration,
		MaxTempo:      cfg.MaxTempo,
		AnalysisDelay: cfg.AnalysisDelay,
		Seed:          cfg.SynthSeed,
	})

	// 4. Background cleanup of expired downloads
	pool := worker.NewPool(repo, cfg.Workers, cfg.QueueSize)
	pool.Start()
	defer pool.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewSweeper(repo, pool, cfg.SweepInterval)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sweeper.Run(ctx)
	}()

	// 5. Driving adapter
	handler := rest.NewHandler(svc)

	log.Println("------------------------------------------------")
	log.Println("🎵 VocalMaster AI Backend Starting...")
	log.Println("🔧 BGM Generation: ENABLED")
	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Printf("server error: %v", err)
		}
		stop()
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
	<-sweepDone
}
