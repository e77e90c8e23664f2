package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Logger    Logger    `envPrefix:"LOGGER_"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	Storage   Storage   `envPrefix:"STORAGE_"`
	Scanner   Scanner   `envPrefix:"SCANNER_"`
	Bootstrap Bootstrap `envPrefix:"BOOTSTRAP_"`
	Plants    Plants    `envPrefix:"PLANTS_"`
	API       API       `envPrefix:"API_"`
}

func Parse() (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "GARDEN_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
