package seed

import (
	"fmt"

	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Provision the superuser and the sample garden",
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			bootstrapper, err := setup.NewBootstrapperFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not create bootstrapper")
			}

			superuser, err := bootstrapper.Bootstrap(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Store seeded, superuser is %s\n", superuser.Email())

			return nil
		},
	}
}
