// Package config reads server configuration from the environment.
package config

import "github.com/caarlos0/env/v11"

// Config holds everything the server needs to start.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"GOALRUSH_ADDR" envDefault:":8080"`
	// CatalogPath points at the YAML card catalog.
	CatalogPath string `env:"GOALRUSH_CATALOG" envDefault:"catalog.yaml"`
	// EconomyPath optionally overrides the compiled-in pack tables.
	EconomyPath string `env:"GOALRUSH_ECONOMY"`
	// StoreKind selects the account store: "file" or "redis".
	StoreKind string `env:"GOALRUSH_STORE" envDefault:"file"`
	// DataPath is the JSON snapshot path for the file store.
	DataPath string `env:"GOALRUSH_DATA" envDefault:"accounts.json"`
	// RedisAddr is the Redis address for the redis store.
	RedisAddr string `env:"GOALRUSH_REDIS_ADDR" envDefault:"localhost:6379"`
	// RedisPassword is the optional Redis password.
	RedisPassword string `env:"GOALRUSH_REDIS_PASSWORD"`
	// RedisDB is the Redis database index.
	RedisDB int `env:"GOALRUSH_REDIS_DB" envDefault:"0"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
