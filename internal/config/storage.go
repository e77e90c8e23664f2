package config

import "time"

type Storage struct {
	// Alternative store backend, e.g. "memory://". The sqlite database is
	// used when empty.
	URI      string   `env:"URI"`
	Database Database `envPrefix:"DATABASE_"`
}

type Database struct {
	DSN   string        `env:"DSN" envDefault:"data.sqlite"`
	Cache DatabaseCache `envPrefix:"CACHE_"`
}

type DatabaseCache struct {
	Users CacheOptions `envPrefix:"USERS_"`
}

type CacheOptions struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Size    int           `env:"SIZE" envDefault:"256"`
	TTL     time.Duration `env:"TTL" envDefault:"1m"`
}
