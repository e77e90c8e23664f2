package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/setup"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagJSON = "json"
)

type entry struct {
	ReminderID string    `json:"reminder_id"`
	Type       string    `json:"reminder_type"`
	PlantID    string    `json:"plant_id"`
	RemindTime time.Time `json:"remind_time"`
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Check once for due reminders and print them",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagJSON,
				Usage: "Print the due reminders as JSON",
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			scanner, err := setup.NewScannerFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not create scanner")
			}

			report, err := scanner.CheckDueReminders(ctx)
			if err != nil {
				return errors.Wrap(err, "could not check due reminders")
			}

			if cCtx.Bool(flagJSON) {
				entries := make([]entry, 0, len(report.Entries))
				for _, e := range report.Entries {
					entries = append(entries, entry{
						ReminderID: string(e.ReminderID),
						Type:       string(e.Type),
						PlantID:    string(e.PlantID),
						RemindTime: e.RemindTime,
					})
				}

				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				if err := encoder.Encode(entries); err != nil {
					return errors.WithStack(err)
				}

				return nil
			}

			if report.Empty() {
				fmt.Fprintln(cCtx.App.Writer, "No reminders due.")
				return nil
			}

			for _, e := range report.Entries {
				fmt.Fprintf(
					cCtx.App.Writer, "%s\t%s\tplant %s\tdue %s\n",
					e.ReminderID, e.Type, e.PlantID,
					humanize.RelTime(e.RemindTime, report.ScannedAt, "ago", "from now"),
				)
			}

			return nil
		},
	}
}
