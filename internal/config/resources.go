package config

type Plants struct {
	// One of orphan, cascade or restrict
	DeletePolicy string `env:"DELETE_POLICY" envDefault:"orphan"`
}

type API struct {
	MaxLimit int `env:"MAX_LIMIT" envDefault:"100"`
}
