package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load fills a typed config struct from the environment, after sourcing an
// optional .env file. Missing .env is not an error; missing required
// variables are.
func Load[T any](prefix string) (*T, error) {
	_ = godotenv.Load()

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, fmt.Errorf("failed to process config (prefix %q): %w", prefix, err)
	}
	return &conf, nil
}

// MustLoad is Load, panicking on error. Intended for main-path wiring only.
func MustLoad[T any](prefix string) *T {
	conf, err := Load[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}
