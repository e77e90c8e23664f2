package setup

import (
	"context"
	"net/url"
	"testing"

	"github.com/bornholm/garden/internal/config"
	"github.com/pkg/errors"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry[string]()

	registry.Register("echo", func(u *url.URL) (string, error) {
		return u.Host, nil
	})

	value, err := registry.From("echo://garden")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "garden", value; e != g {
		t.Errorf("value: expected %v, got %v", e, g)
	}

	if _, err := registry.From("unknown://garden"); !errors.Is(err, ErrSchemeNotRegistered) {
		t.Errorf("err: expected %v, got %+v", ErrSchemeNotRegistered, err)
	}
}

func TestCreateFromConfigOnce(t *testing.T) {
	calls := 0

	get := createFromConfigOnce(func(ctx context.Context, conf *config.Config) (int, error) {
		calls++
		return calls, nil
	})

	for i := 0; i < 3; i++ {
		value, err := get(context.Background(), &config.Config{})
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := 1, value; e != g {
			t.Errorf("value: expected %v, got %v", e, g)
		}
	}
}
