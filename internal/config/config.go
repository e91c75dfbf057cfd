// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordleplus/internal/words"
)

// Config holds all application configuration.
type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	AuthorityURL  string        `env:"WORDLE_AUTHORITY_URL" envDefault:"http://localhost:8080"`
	HTTPTimeout   time.Duration `env:"WORDLE_HTTP_TIMEOUT" envDefault:"10s"`
	DBPath        string        `env:"WORDLE_DB_PATH" envDefault:"./data/wordleplus.db"`
	MaxAttempts   int           `env:"WORDLE_MAX_ATTEMPTS" envDefault:"6"`
	DefaultLength int           `env:"WORDLE_DEFAULT_LENGTH" envDefault:"5"`
	ClientOrigin  string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	DailySalt     string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	WordsFile     string        `env:"WORDS_FILE"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.AuthorityURL == "" {
		return fmt.Errorf("WORDLE_AUTHORITY_URL cannot be empty")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("WORDLE_MAX_ATTEMPTS must be > 0")
	}
	if !words.ValidLength(c.DefaultLength) {
		return fmt.Errorf("WORDLE_DEFAULT_LENGTH must be between %d and %d", words.MinLength, words.MaxLength)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("WORDLE_HTTP_TIMEOUT must be > 0")
	}
	return nil
}

// SetupLogging configures the global zerolog logger from LogLevel/LogFormat.
func (c *Config) SetupLogging() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if strings.EqualFold(c.LogFormat, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
