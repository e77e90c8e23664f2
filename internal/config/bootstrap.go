package config

type Bootstrap struct {
	Enabled        bool   `env:"ENABLED" envDefault:"true"`
	SuperuserEmail string `env:"SUPERUSER_EMAIL" envDefault:"admin@example.com"`
	SuperuserToken string `env:"SUPERUSER_TOKEN"`
	SampleData     bool   `env:"SAMPLE_DATA" envDefault:"true"`
}
