package config

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Setenv("GARDEN_HTTP_ADDRESS", ":8080")
	t.Setenv("GARDEN_HTTP_CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("GARDEN_SCANNER_INTERVAL", "30s")
	t.Setenv("GARDEN_PLANTS_DELETE_POLICY", "cascade")

	conf, err := Parse()
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if e, g := ":8080", conf.HTTP.Address; e != g {
		t.Errorf("conf.HTTP.Address: expected %v, got %v", e, g)
	}

	if e, g := 2, len(conf.HTTP.CORS.AllowedOrigins); e != g {
		t.Errorf("len(conf.HTTP.CORS.AllowedOrigins): expected %v, got %v", e, g)
	}

	if e, g := 30*time.Second, conf.Scanner.Interval; e != g {
		t.Errorf("conf.Scanner.Interval: expected %v, got %v", e, g)
	}

	if e, g := "cascade", conf.Plants.DeletePolicy; e != g {
		t.Errorf("conf.Plants.DeletePolicy: expected %v, got %v", e, g)
	}

	if e, g := "data.sqlite", conf.Storage.Database.DSN; e != g {
		t.Errorf("conf.Storage.Database.DSN: expected %v, got %v", e, g)
	}

	if e, g := "admin@example.com", conf.Bootstrap.SuperuserEmail; e != g {
		t.Errorf("conf.Bootstrap.SuperuserEmail: expected %v, got %v", e, g)
	}

	if e, g := 100, conf.API.MaxLimit; e != g {
		t.Errorf("conf.API.MaxLimit: expected %v, got %v", e, g)
	}
}
