package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database

	BrainTree Braintree `envPrefix:"BRAINTREE_"`
	Store     Store     `envPrefix:"STORE_"`
}

// Braintree credentials are only ever read from the environment.
type Braintree struct {
	Environment string        `env:"ENVIRONMENT" envDefault:"sandbox"`
	MerchantID  string        `env:"MERCHANT_ID"`
	PublicKey   string        `env:"PUBLIC_KEY"`
	PrivateKey  string        `env:"PRIVATE_KEY"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

type Store struct {
	PaypalDescription string `env:"PAYPAL_DESCRIPTION" envDefault:"EcoStore Purchase"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host            string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type Database struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"sqlite"` // sqlite, mysql
	URL    string `env:"DATABASE_URL" envDefault:"ecostore.db"`
}

func (h HTTPServer) Address() string {
	return h.Host + ":" + h.Port
}

// Load reads an optional .env file into the process environment and parses
// the configuration from it.
func Load(dotenvFiles ...string) (*Config, error) {
	// a missing .env is fine outside development
	_ = godotenv.Load(dotenvFiles...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.Database.Driver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return cfg, nil
}
