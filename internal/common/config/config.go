package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	API struct {
		// Base URL of the verification backend, without trailing slash.
		BaseURL    string `env:"LETSCHECK_API_URL" envDefault:"http://localhost:8000"`
		TimeoutSec int    `env:"LETSCHECK_API_TIMEOUT_SEC" envDefault:"30"`
	}

	History struct {
		// Path of the local history file. Empty resolves to
		// <user config dir>/letscheck/verificationHistory.json.
		Path string `env:"LETSCHECK_HISTORY_PATH" envDefault:""`
	}

	Stub struct {
		Port   int    `env:"LETSCHECK_STUB_PORT" envDefault:"8000"`
		Origin string `env:"LETSCHECK_STUB_ORIGIN" envDefault:"http://localhost:5173"`
	}
}

func Load() *Config {
	// A missing .env file is fine; in CI and on user machines the
	// variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
