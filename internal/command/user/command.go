package user

import (
	"fmt"

	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagEmail       = "email"
	flagDisplayName = "display-name"
	flagSuperuser   = "superuser"
	flagTokenLabel  = "token-label"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage users",
		Subcommands: []*cli.Command{
			createCommand(),
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Provision a user and print a new API token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagEmail,
				Usage:    "Email of the user",
				Required: true,
			},
			&cli.StringFlag{
				Name:  flagDisplayName,
				Usage: "Display name of the user, defaults to the email",
			},
			&cli.BoolFlag{
				Name:  flagSuperuser,
				Usage: "Grant superuser privileges",
			},
			&cli.StringFlag{
				Name:  flagTokenLabel,
				Value: "cli",
				Usage: "Label of the issued API token",
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			users, err := setup.NewUserManagerFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not create user manager")
			}

			user, created, err := users.Provision(ctx, cCtx.String(flagEmail), cCtx.String(flagDisplayName), cCtx.Bool(flagSuperuser))
			if err != nil {
				return errors.Wrap(err, "could not provision user")
			}

			token, err := users.IssueToken(ctx, user, cCtx.String(flagTokenLabel), "")
			if err != nil {
				return errors.Wrap(err, "could not issue token")
			}

			if created {
				fmt.Fprintf(cCtx.App.ErrWriter, "User %s created\n", user.Email())
			} else {
				fmt.Fprintf(cCtx.App.ErrWriter, "User %s already exists, new token issued\n", user.Email())
			}

			fmt.Fprintln(cCtx.App.Writer, token.Value())

			return nil
		},
	}
}
