package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/AgentTarik/receipt-feed/internal/transaction"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings of one run. Values come from the environment
// (optionally a .env file) and may be overridden by flags.
type Config struct {
	SourcePath   string   `validate:"required"`
	BaseDir      string
	Count        int      `validate:"gte=0"`
	RequiredKeys []string `validate:"required,dive,required"`
	Color        string   `validate:"oneof=auto always never"`
	LogLevel     string   `validate:"oneof=debug info warn error"`
	LogFormat    string   `validate:"oneof=console json"`
	MetricsFile  string
}

const (
	DefaultSourcePath = "sources/operations.json"
	DefaultCount      = 5
)

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	count, err := getEnvAsInt("RECEIPTS_COUNT", DefaultCount)
	if err != nil {
		return nil, err
	}

	return &Config{
		SourcePath:   getEnv("RECEIPTS_SOURCE", DefaultSourcePath),
		BaseDir:      getEnv("RECEIPTS_BASE_DIR", ""),
		Count:        count,
		RequiredKeys: getEnvAsList("RECEIPTS_REQUIRED_KEYS", transaction.DefaultRequiredKeys),
		Color:        getEnv("RECEIPTS_COLOR", "auto"),
		LogLevel:     getEnv("LOG_LEVEL", "warn"),
		LogFormat:    getEnv("LOG_FORMAT", "console"),
		MetricsFile:  getEnv("METRICS_TEXTFILE", ""),
	}, nil
}

// ParseFlags lets command-line flags override the loaded values.
func (c *Config) ParseFlags(fset *flag.FlagSet, args []string) error {
	fset.StringVar(&c.SourcePath, "source", c.SourcePath, "Path to the operations JSON file")
	fset.StringVar(&c.BaseDir, "base-dir", c.BaseDir, "Directory relative source paths are resolved from (default: working directory)")
	fset.IntVar(&c.Count, "count", c.Count, "Number of receipts to print")
	fset.StringVar(&c.Color, "color", c.Color, "Colorize output: auto, always, never")
	fset.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	fset.StringVar(&c.MetricsFile, "metrics-file", c.MetricsFile, "Write Prometheus metrics to this file after the run")
	return fset.Parse(args)
}

// Validate checks the assembled configuration.
func (c *Config) Validate(v *validator.Validate) error {
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, s)
	}
	return n, nil
}

func getEnvAsList(key string, fallback []string) []string {
	s := getEnv(key, "")
	if s == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
