package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the service configuration parsed from environment variables.
type Config struct {
	Port          int    `env:"PORT"           envDefault:"8080"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"charge_station_api"`

	// AppPasswordResetURL is the frontend page the reset link points at.
	AppPasswordResetURL string `env:"APP_PASSWORD_RESET_URL"`

	Token TokenConfig
}

// TokenConfig holds the settings for issued identity and reset tokens.
type TokenConfig struct {
	Secret               string        `env:"JWT_SECRET"`
	ExpiresIn            time.Duration `env:"JWT_EXPIRES_IN"             envDefault:"24h"`
	Issuer               string        `env:"JWT_ISSUER"                 envDefault:"charge-station-api"`
	PasswordResetExpires time.Duration `env:"PASSWORD_RESET_EXPIRES_IN"  envDefault:"1h"`
}

// New creates a Config instance from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.AppPasswordResetURL == "" {
		return fmt.Errorf("missing APP_PASSWORD_RESET_URL environment variable")
	}

	return nil
}
