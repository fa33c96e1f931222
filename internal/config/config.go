package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config se arma desde el entorno. DATABASE_URL vacía significa backend
// documental embebido (dev y handoff sin Postgres).
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"realty-catalog"`
	Port    string `env:"PORT" envDefault:"8080"`

	DatabaseURL  string `env:"DATABASE_URL"`
	DocStorePath string `env:"DOC_STORE_PATH" envDefault:"data/catalog"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load lee .env si existe (en contenedores no suele existir y no es
// error) y parsea el entorno.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
