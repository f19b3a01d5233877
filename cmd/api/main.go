package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ewilliams-labs/cognia/internal/adapters/moodcache"
	"github.com/ewilliams-labs/cognia/internal/adapters/ollama"
	"github.com/ewilliams-labs/cognia/internal/adapters/rest"
	"github.com/ewilliams-labs/cognia/internal/adapters/spotify"
	"github.com/ewilliams-labs/cognia/internal/adapters/sqlite"
	"github.com/ewilliams-labs/cognia/internal/config"
	"github.com/ewilliams-labs/cognia/internal/core/ports"
	"github.com/ewilliams-labs/cognia/internal/core/services"
	"github.com/ewilliams-labs/cognia/internal/worker"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Driven adapters
	store, err := sqlite.NewAdapter(cfg.StoragePath, sqlite.WithEmotionCapacity(cfg.EmotionLogCapacity))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer store.Close()

	var listening ports.ListeningProvider
	if cfg.SpotifyEnabled() {
		httpClient := spotify.NewAuthorizedHTTPClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.SpotifyRefreshToken)
		listening = spotify.NewClient(httpClient, cfg.SpotifyBaseURL, spotify.WithRetry(cfg.SpotifyMaxRetries, cfg.SpotifyRetryBackoff))
	} else {
		log.Println("WARN api: Spotify credentials missing, listening sync disabled")
	}

	var (
		inferrer ports.MoodInferrer
		journal  ports.JournalAnalyzer
	)
	if cfg.OllamaEnabled() {
		llm := ollama.NewClient(cfg.OllamaHost, ollama.WithModel(cfg.OllamaModel))
		inferrer, journal = llm, llm
	} else {
		log.Println("WARN api: OLLAMA_HOST not set, moods come from audio features only")
	}

	cache := moodcache.New(cfg.MoodCacheSize, cfg.MoodCacheTTL)

	// 3. Core service
	svc := services.NewInsights(store, listening, inferrer, journal, cache,
		services.WithEmotionLogCapacity(cfg.EmotionLogCapacity),
		services.WithLocation(cfg.Location),
	)

	// 4. Background sync and HTTP interface
	var handler *rest.Handler
	if listening != nil {
		pool := worker.NewPool(svc, cfg.SyncQueueSize)
		pool.Start(cfg.SyncWorkers)
		defer pool.Stop()
		go pool.RunPeriodic(ctx, cfg.SyncInterval, func() []string { return []string{cfg.SyncUserID} })
		handler = rest.NewHandler(svc, pool)
	} else {
		handler = rest.NewHandler(svc, nil)
	}

	// 5. Start the server
	log.Printf("Cognia API is running on http://localhost:%s", cfg.Port)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Printf("FATAL: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
