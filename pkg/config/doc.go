// Package config loads typed configuration from environment variables
// using struct tags, with optional .env file support for development.
//
// Define a struct with `env` tags and load it at startup:
//
//	type Config struct {
//		DatabaseURL string `env:"DATABASE_URL,required"`
//		HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// A .env file in the working directory is loaded once per process if
// present; explicit environment variables take precedence.
package config
