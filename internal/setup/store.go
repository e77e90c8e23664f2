package setup

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/bornholm/garden/internal/adapter/memory"
	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/pkg/errors"
)

// Store resolves alternative store backends from the configured URI.
var Store = NewRegistry[port.Store]()

func init() {
	Store.Register("memory", func(u *url.URL) (port.Store, error) {
		return memory.NewStore(), nil
	})
}

var getBaseStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.Store, error) {
	if conf.Storage.URI != "" {
		store, err := Store.From(conf.Storage.URI)
		if err != nil {
			return nil, errors.Wrapf(err, "could not retrieve store for uri '%s'", conf.Storage.URI)
		}

		slog.InfoContext(ctx, "using alternative store backend", slog.String("uri", conf.Storage.URI))

		return store, nil
	}

	store, err := getGormStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
})

type compositeStore struct {
	port.UserStore
	port.PlantStore
	port.ReminderStore
}

var _ port.Store = &compositeStore{}

var getStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.Store, error) {
	base, err := getBaseStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	userStore, err := getUserStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &compositeStore{
		UserStore:     userStore,
		PlantStore:    base,
		ReminderStore: base,
	}, nil
})

// pinger is implemented by stores backed by a remote resource.
type pinger interface {
	Ping(ctx context.Context) error
}
