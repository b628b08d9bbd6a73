package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	DefaultAdzunaTimeout = 30 * time.Second
	MinAdzunaTimeout     = time.Second
	MaxAdzunaTimeout     = 2 * time.Minute
)

// Config contains runtime settings for the MCP server
type Config struct {
	LogLevel  string
	Transport string // stdio or http
	Host      string // default 0.0.0.0
	Port      string // default PORT env or 8080
	Adzuna    AdzunaConfig
	Sheets    SheetsConfig
}

// AdzunaConfig holds the job provider credentials and endpoint
type AdzunaConfig struct {
	AppID   string
	AppKey  string
	Country string
	BaseURL string
	Timeout time.Duration
}

// SheetsConfig enables the sheets_export tool when a credentials file is set
type SheetsConfig struct {
	CredentialsPath string
}

// Enabled reports whether Sheets credentials are configured
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != ""
}

// Addr returns the HTTP listen address
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadEnvFiles loads .env style files into the process environment without
// overriding variables that are already set. With no arguments it tries ./.env
// and ignores a missing file; explicitly named files must exist.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("config: load env file: %w", err)
	}
	return nil
}

// Load populates config from environment variables
func Load() (Config, error) {
	cfg := Config{
		LogLevel:  "info",
		Transport: TransportStdio,
		Host:      "0.0.0.0",
		Port:      "8080",
		Adzuna: AdzunaConfig{
			Country: "in",
			BaseURL: "https://api.adzuna.com",
			Timeout: DefaultAdzunaTimeout,
		},
	}

	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := env("MCP_TRANSPORT"); v != "" {
		cfg.Transport = strings.ToLower(v)
	}

	if v := env("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := env("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.Adzuna.AppID = env("ADZUNA_APP_ID")
	cfg.Adzuna.AppKey = env("ADZUNA_APP_KEY")
	if v := env("ADZUNA_COUNTRY"); v != "" {
		cfg.Adzuna.Country = strings.ToLower(v)
	}
	if v := env("ADZUNA_BASE_URL"); v != "" {
		cfg.Adzuna.BaseURL = strings.TrimSuffix(v, "/")
	}
	if v := env("ADZUNA_TIMEOUT"); v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return cfg, err
		}
		cfg.Adzuna.Timeout = d
	}

	cfg.Sheets.CredentialsPath = env("GOOGLE_SHEETS_CREDENTIALS_PATH")

	var missingVars []string

	if cfg.Adzuna.AppID == "" {
		missingVars = append(missingVars, "ADZUNA_APP_ID")
	}

	if cfg.Adzuna.AppKey == "" {
		missingVars = append(missingVars, "ADZUNA_APP_KEY")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("%w: missing required environment variables: %s",
			domain.ErrConfigurationMissing, strings.Join(missingVars, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks values that flags may have overridden after Load
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("config: unknown transport %q (want %s or %s)", c.Transport, TransportStdio, TransportHTTP)
	}

	if c.Transport == TransportHTTP {
		port, err := strconv.Atoi(c.Port)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("config: invalid port %q", c.Port)
		}
	}

	if c.Adzuna.Timeout < MinAdzunaTimeout || c.Adzuna.Timeout > MaxAdzunaTimeout {
		return fmt.Errorf("config: adzuna timeout %s outside %s..%s", c.Adzuna.Timeout, MinAdzunaTimeout, MaxAdzunaTimeout)
	}
	return nil
}

// ParseTimeout accepts a Go duration ("15s") or a bare number of seconds ("15")
func ParseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid ADZUNA_TIMEOUT %q: %w", v, err)
	}
	return d, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
