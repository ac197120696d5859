package config

import (
	"fmt"
	"os"
	"strconv"
)

// Fallback label policies for options whose edge carries no label.
const (
	FallbackDestination = "destination" // use the destination node's display text
	FallbackBlank       = "blank"       // leave the option label empty
)

type Config struct {
	// Preview server
	Addr string

	// Batch compilation
	WorkerCount int

	// Compilation defaults
	Title         string
	Mode          string
	StartPrompt   string // prompt of the synthetic root question
	FallbackLabel string // policy for unlabeled options
	MaxHypotheses int    // filtering mode: ranked hypotheses shown

	// Log output
	LogLevel string
}

func Load() Config {
	cfg := Config{
		Addr: envOr("GUIDEGEN_ADDR", ":8090"),

		WorkerCount: envInt("GUIDEGEN_WORKERS", 4),

		Title:         envOr("GUIDEGEN_TITLE", "Classification Guide"),
		Mode:          envOr("GUIDEGEN_MODE", "clickthrough"),
		StartPrompt:   envOr("GUIDEGEN_START_PROMPT", "Where do you want to start?"),
		FallbackLabel: envOr("GUIDEGEN_FALLBACK_LABEL", FallbackDestination),
		MaxHypotheses: envInt("GUIDEGEN_MAX_HYPOTHESES", 5),

		LogLevel: envOr("GUIDEGEN_LOG_LEVEL", "info"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxHypotheses <= 0 {
		cfg.MaxHypotheses = 5
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.FallbackLabel {
	case FallbackDestination, FallbackBlank:
	default:
		return fmt.Errorf("invalid fallback label policy %q (want %q or %q)",
			c.FallbackLabel, FallbackDestination, FallbackBlank)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
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
