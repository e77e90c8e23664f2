package server

import (
	"os/signal"
	"syscall"

	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Serve the HTTP API and run the due-reminder scanner",
		Action: func(cCtx *cli.Context) error {
			ctx, stop := signal.NotifyContext(cCtx.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			if err := setup.RunServerFromConfig(ctx, conf); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}
