package config

import "time"

type Scanner struct {
	Enabled     bool          `env:"ENABLED" envDefault:"true"`
	Interval    time.Duration `env:"INTERVAL" envDefault:"1m"`
	HistorySize int           `env:"HISTORY_SIZE" envDefault:"10"`
}
