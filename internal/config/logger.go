package config

type Logger struct {
	// Numeric slog level: -4 debug, 0 info, 4 warn, 8 error
	Level int `env:"LEVEL" envDefault:"0"`
}
