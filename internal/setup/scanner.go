package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/garden/internal/adapter/memory"
	"github.com/bornholm/garden/internal/config"
	"github.com/bornholm/garden/internal/scheduler"
	"github.com/bornholm/garden/internal/task/reminder"
	"github.com/pkg/errors"
)

var getReportHistoryFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*memory.ReportHistory, error) {
	return memory.NewReportHistory(conf.Scanner.HistorySize), nil
})

var getScannerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*reminder.Scanner, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	history, err := getReportHistoryFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	scanner := reminder.NewScanner(
		store,
		reminder.WithScannerReporters(
			reminder.NewLogReporter(slog.Default()),
			history,
		),
	)

	return scanner, nil
})

func NewScannerFromConfig(ctx context.Context, conf *config.Config) (*reminder.Scanner, error) {
	scanner, err := getScannerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return scanner, nil
}

// NewSchedulerFromConfig returns the scheduler running the background jobs.
// Its job list is empty when the scanner is disabled.
func NewSchedulerFromConfig(ctx context.Context, conf *config.Config) (*scheduler.Scheduler, error) {
	sched := scheduler.New()

	if !conf.Scanner.Enabled {
		slog.InfoContext(ctx, "due-reminder scanner disabled")
		return sched, nil
	}

	scanner, err := getScannerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create scanner from config")
	}

	sched.Every("due-reminder-scan", conf.Scanner.Interval, scanner.Run)

	return sched, nil
}
