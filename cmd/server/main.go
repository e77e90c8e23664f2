package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/setup"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conf, err := config.Parse()
	if err != nil {
		slog.ErrorContext(ctx, "could not parse config", slogx.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	logger := slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.Level(conf.Logger.Level),
			AddSource: true,
		}),
	})

	slog.SetDefault(logger)

	slog.DebugContext(ctx, "using configuration", slog.Any("config", conf))

	slog.InfoContext(ctx, "use ctrl+c to interrupt")

	if err := setup.RunServerFromConfig(ctx, conf); err != nil {
		slog.ErrorContext(ctx, "could not run server", slogx.Error(errors.WithStack(err)))
		os.Exit(1)
	}
}
