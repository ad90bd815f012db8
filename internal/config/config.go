package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Traversal modes for heading and paragraph extraction.
const (
	TraversalDeep = "deep" // descend into every container
	TraversalRoot = "root" // descend into the document root only
)

// Output formats for query results.
const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	// Interactive shell
	Prompt       string
	HistoryFile  string
	HistoryLimit int

	// Query execution
	Traversal    string
	MaxFileBytes int64
	GFM          bool

	Output   string
	LogLevel string // empty selects the command's default

	// HTTP server
	Port   string
	APIKey string
	RunTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Prompt:       envOr("MARKDOWNQL_PROMPT", "markdownql>> "),
		HistoryFile:  envOrEmpty("MARKDOWNQL_HISTORY_FILE", "history.txt"),
		HistoryLimit: envInt("MARKDOWNQL_HISTORY_LIMIT", 1000),

		Traversal:    strings.ToLower(envOr("MARKDOWNQL_TRAVERSAL", TraversalDeep)),
		MaxFileBytes: envInt64("MARKDOWNQL_MAX_FILE_BYTES", 52428800), // 50MB
		GFM:          envBool("MARKDOWNQL_GFM", true),

		Output:   strings.ToLower(envOr("MARKDOWNQL_OUTPUT", OutputText)),
		LogLevel: strings.ToLower(os.Getenv("MARKDOWNQL_LOG_LEVEL")),

		Port:   envOr("PORT", "8090"),
		APIKey: os.Getenv("MARKDOWNQL_API_KEY"),
		RunTTL: envDuration("MARKDOWNQL_RUN_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 1000
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = 52428800
	}
	if cfg.RunTTL <= 0 {
		cfg.RunTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.Traversal {
	case TraversalDeep, TraversalRoot:
	default:
		return fmt.Errorf("MARKDOWNQL_TRAVERSAL must be %q or %q, got %q", TraversalDeep, TraversalRoot, c.Traversal)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("MARKDOWNQL_OUTPUT must be %q or %q, got %q", OutputText, OutputJSON, c.Output)
	}
	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("MARKDOWNQL_MAX_FILE_BYTES must be positive, got %d", c.MaxFileBytes)
	}
	if c.LogLevel != "" {
		if _, err := ParseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

// Level returns the configured log level, or fallback when none is set.
// Call Validate first.
func (c Config) Level(fallback slog.Level) slog.Level {
	if c.LogLevel == "" {
		return fallback
	}
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return fallback
	}
	return level
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("MARKDOWNQL_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrEmpty is envOr, except that a variable set to the empty string
// overrides the fallback.
func envOrEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
