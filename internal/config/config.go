package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Event store.
	DBPath         string
	DBMaxOpenConns int

	// Page rendering and static assets.
	TemplateDir string
	PublicDir   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	maxOpenConns, err := parseMaxOpenConns()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		DBPath:          sharedcfg.EnvOrDefault("DB_PATH", "./earthquakes.sqlite3"),
		DBMaxOpenConns:  maxOpenConns,
		TemplateDir:     sharedcfg.EnvOrDefault("TEMPLATE_DIR", "./templates"),
		PublicDir:       sharedcfg.EnvOrDefault("PUBLIC_DIR", "./public"),
	}

	if cfg.DBPath == "" {
		return nil, errors.New("DB_PATH is required")
	}
	if cfg.TemplateDir == "" {
		return nil, errors.New("TEMPLATE_DIR is required")
	}

	return cfg, nil
}

func parseMaxOpenConns() (int, error) {
	s := os.Getenv("DB_MAX_OPEN_CONNS")
	if s == "" {
		return 4, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid DB_MAX_OPEN_CONNS")
	}
	return n, nil
}
