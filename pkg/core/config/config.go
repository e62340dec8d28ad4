// Package config loads analyzer settings from a YAML file and the
// environment (.env is honored).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"financial_health/pkg/core/llm"
	"financial_health/pkg/core/valuation"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DefaultPath is read when ANALYZER_CONFIG is not set.
const DefaultPath = "config/analyzer.yaml"

// Config holds application configuration
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Log       LogConfig        `yaml:"log"`
	Bounds    valuation.Bounds `yaml:"bounds"`
	Defaults  valuation.Params `yaml:"defaults"`
	Narrative NarrativeConfig  `yaml:"narrative"`
	Archive   ArchiveConfig    `yaml:"archive"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadMB    int64    `yaml:"max_upload_mb"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// NarrativeConfig controls the optional AI summary section.
type NarrativeConfig struct {
	Provider string `yaml:"provider"` // none | gemini
	Model    string `yaml:"model"`
	APIKey   string `yaml:"-"` // GEMINI_API_KEY only
}

// ArchiveConfig controls storage of exported reports.
type ArchiveConfig struct {
	Enabled     bool   `yaml:"enabled"`
	DatabaseURL string `yaml:"-"` // DATABASE_URL only
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
			MaxUploadMB:    10,
		},
		Log:       LogConfig{Level: "info"},
		Bounds:    valuation.DefaultBounds(),
		Defaults:  valuation.DefaultParams(),
		Narrative: NarrativeConfig{Provider: llm.ProviderNone, Model: llm.DefaultGeminiModel},
	}
}

// Load reads the YAML file at path (ANALYZER_CONFIG or DefaultPath when
// empty), applies environment overrides and validates the result. A missing
// default file is not an error.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = getEnv("ANALYZER_CONFIG", DefaultPath)
		explicit = path != DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvAsInt("PORT", c.Server.Port)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = getEnvAsBool("LOG_PRETTY", c.Log.Pretty)
	c.Narrative.Provider = getEnv("NARRATIVE_PROVIDER", c.Narrative.Provider)
	c.Narrative.APIKey = getEnv("GEMINI_API_KEY", c.Narrative.APIKey)
	c.Archive.DatabaseURL = getEnv("DATABASE_URL", c.Archive.DatabaseURL)
	c.Archive.Enabled = getEnvAsBool("ARCHIVE_ENABLED", c.Archive.Enabled || c.Archive.DatabaseURL != "")
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive")
	}

	ranges := map[string]valuation.Range{
		"market_pe":    c.Bounds.MarketPE,
		"shares_lakhs": c.Bounds.SharesLakhs,
		"growth_pct":   c.Bounds.GrowthPct,
		"discount_pct": c.Bounds.DiscountPct,
		"terminal_pct": c.Bounds.TerminalPct,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("bounds.%s: min %v exceeds max %v", name, r.Min, r.Max)
		}
	}

	// Overlapping discount/terminal ranges are allowed; each request is
	// still checked for discount > terminal.
	if _, err := c.Defaults.Inputs(c.Bounds); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	switch c.Narrative.Provider {
	case "", llm.ProviderNone:
	case llm.ProviderGemini:
		if c.Narrative.APIKey == "" {
			return fmt.Errorf("narrative provider gemini requires GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown narrative provider %q", c.Narrative.Provider)
	}

	if c.Archive.Enabled && c.Archive.DatabaseURL == "" {
		return fmt.Errorf("archive enabled but DATABASE_URL is not set")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
