package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is everything read from the environment. Booking behavior
// (candidates, payment, monitoring) lives in a separate YAML file, see
// LoadBooking.
type Config struct {
	Storefront Storefront
	Postgres   Postgres
	Bot        Bot
	Servers    Servers
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
