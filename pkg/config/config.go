package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrFailedToParseConfig indicates environment variables could not be
	// parsed into the target struct.
	ErrFailedToParseConfig = errors.New("failed to parse config")

	loadOnce sync.Once
)

// loadEnv loads .env files once per process. Missing files are fine;
// real deployments set variables through the environment.
func loadEnv() {
	loadOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load parses environment variables into a config struct of type T.
// Fields are mapped using `env` struct tags:
//
//	type Config struct {
//		Port    int    `env:"PORT" envDefault:"8080"`
//		BaseURL string `env:"BASE_URL,required"`
//	}
func Load[T any](cfg *T) error {
	loadEnv()
	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrFailedToParseConfig, err)
	}
	return nil
}

// MustLoad is like Load but panics on failure. Intended for use at
// startup where a missing required variable should halt the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
