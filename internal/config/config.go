package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Historical document corpus
	TendersDir string
	OffersDir  string

	// Generated artifacts
	OutputDir string

	// Claude generation
	AnthropicAPIKey string
	AnthropicModel  string

	// Company identity used across the generated offer
	CompanyName        string
	CompanyDescription string

	// Pipeline
	GenerateTimeout time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		TendersDir: envOr("TENDERS_DIR", "docs/licitaciones"),
		OffersDir:  envOr("OFFERS_DIR", "docs/ofertas"),

		OutputDir: envOr("OUTPUT_DIR", "output"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		CompanyName: envOr("COMPANY_NAME", "GUX"),
		CompanyDescription: envOr("COMPANY_DESCRIPTION",
			"Empresa de desarrollo de software especializada en soluciones tecnológicas a medida"),

		GenerateTimeout: envDuration("GENERATE_TIMEOUT", 5*time.Minute),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 5 * time.Minute
	}

	return cfg
}

func (c Config) Validate() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.CompanyName == "" {
		return fmt.Errorf("COMPANY_NAME must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
