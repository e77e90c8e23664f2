package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// RunServerFromConfig bootstraps the store, then serves the HTTP API and
// runs the background jobs until ctx is canceled.
func RunServerFromConfig(ctx context.Context, conf *config.Config) error {
	if conf.Bootstrap.Enabled {
		bootstrapper, err := NewBootstrapperFromConfig(ctx, conf)
		if err != nil {
			return errors.Wrap(err, "could not create bootstrapper from config")
		}

		superuser, err := bootstrapper.Bootstrap(ctx)
		if err != nil {
			return errors.Wrap(err, "could not bootstrap store")
		}

		slog.InfoContext(ctx, "store bootstrapped", slog.String("superuser", superuser.Email()))
	}

	server, err := NewHTTPServerFromConfig(ctx, conf)
	if err != nil {
		return errors.Wrap(err, "could not setup http server")
	}

	sched, err := NewSchedulerFromConfig(ctx, conf)
	if err != nil {
		return errors.Wrap(err, "could not setup scheduler")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	schedErr := make(chan error, 1)

	go func() {
		defer close(schedErr)

		if err := sched.Run(ctx); err != nil {
			slog.ErrorContext(ctx, "scheduler stopped", slogx.Error(err))
			schedErr <- errors.WithStack(err)
			cancel()
		}
	}()

	slog.InfoContext(ctx, "starting server", slog.String("address", conf.HTTP.Address))

	if err := server.Run(ctx); err != nil {
		return errors.Wrap(err, "could not run server")
	}

	cancel()

	if err := <-schedErr; err != nil {
		return errors.WithStack(err)
	}

	return nil
}
