package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds settings that can be supplied through ARCADE_* environment
// variables. Command-line flags take precedence over these values.
type Env struct {
	FPS        int    `env:"ARCADE_FPS" envDefault:"60"`
	Seed       int64  `env:"ARCADE_SEED" envDefault:"0"`
	DBPath     string `env:"ARCADE_DB" envDefault:"~/.arcade/scores.db"`
	SSHAddr    string `env:"ARCADE_SSH_ADDR" envDefault:":23234"`
	HostKey    string `env:"ARCADE_HOST_KEY"`
	LogFile    string `env:"ARCADE_LOG_FILE"`
	Difficulty string `env:"ARCADE_DIFFICULTY"`
}

// LoadEnv reads optional .env files (missing files are ignored) and then
// parses the process environment.
func LoadEnv(dotenvFiles ...string) (Env, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	if cfg.FPS <= 0 {
		return Env{}, fmt.Errorf("config: ARCADE_FPS must be positive, got %d", cfg.FPS)
	}
	return cfg, nil
}
