// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve in minimal containers

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StorageDriver string
	StoragePath   string
	Location      *time.Location

	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRefreshToken string
	SpotifyBaseURL      string
	SpotifyMaxRetries   int
	SpotifyRetryBackoff time.Duration

	OllamaHost  string
	OllamaModel string

	MoodCacheSize      int
	MoodCacheTTL       time.Duration
	EmotionLogCapacity int

	SyncWorkers   int
	SyncQueueSize int
	SyncInterval  time.Duration
	// SyncUserID is the user the Spotify refresh token belongs to.
	SyncUserID string
}

// SpotifyEnabled reports whether credentials for listening sync are present.
func (c Config) SpotifyEnabled() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != "" && c.SpotifyRefreshToken != ""
}

// OllamaEnabled reports whether a model server is configured.
func (c Config) OllamaEnabled() bool {
	return c.OllamaHost != ""
}

// Load reads .env when present, then the environment. Malformed numbers and
// durations are errors rather than silent defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("DEBUG config: no .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	p := parser{getenv: getenv}
	cfg := Config{
		Port:          p.str("PORT", "8080"),
		StorageDriver: p.str("STORAGE_DRIVER", "sqlite"),
		StoragePath:   p.str("STORAGE_PATH", "cognia.db"),

		SpotifyClientID:     p.str("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: p.str("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyRefreshToken: p.str("SPOTIFY_REFRESH_TOKEN", ""),
		SpotifyBaseURL:      p.str("SPOTIFY_BASE_URL", ""),
		SpotifyMaxRetries:   p.integer("SPOTIFY_MAX_RETRIES", 3),
		SpotifyRetryBackoff: time.Duration(p.integer("SPOTIFY_RETRY_BACKOFF_MS", 500)) * time.Millisecond,

		OllamaHost:  p.str("OLLAMA_HOST", ""),
		OllamaModel: p.str("OLLAMA_MODEL", "llama3"),

		MoodCacheSize:      p.integer("MOOD_CACHE_SIZE", 1024),
		MoodCacheTTL:       p.duration("MOOD_CACHE_TTL", 24*time.Hour),
		EmotionLogCapacity: p.integer("EMOTION_LOG_CAPACITY", 1000),

		SyncWorkers:   p.integer("SYNC_WORKERS", 2),
		SyncQueueSize: p.integer("SYNC_QUEUE_SIZE", 100),
		SyncInterval:  p.duration("SYNC_INTERVAL", 15*time.Minute),
		SyncUserID:    p.str("SYNC_USER_ID", "me"),
	}

	tz := p.str("TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		p.fail("TIMEZONE", tz, err)
	}
	cfg.Location = loc

	if p.err != nil {
		return Config{}, p.err
	}
	if cfg.StorageDriver != "sqlite" {
		return Config{}, fmt.Errorf("config: unknown storage driver %q", cfg.StorageDriver)
	}
	return cfg, nil
}

// parser records the first malformed value it meets.
type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) str(key, fallback string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (p *parser) integer(key string, fallback int) int {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) fail(key, raw string, err error) {
	if p.err != nil {
		return
	}
	if err == nil {
		err = fmt.Errorf("must not be negative")
	}
	p.err = fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
}
