package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type Job func(ctx context.Context) error

type entry struct {
	name     string
	interval time.Duration
	job      Job
}

// Scheduler runs jobs on fixed intervals. Each job is driven by its own
// goroutine and ticker, so a job never overlaps itself and ticks missed
// while it runs are dropped. Job errors and panics are logged and never
// stop the schedule.
type Scheduler struct {
	entries []entry
}

func (s *Scheduler) Every(name string, interval time.Duration, job Job) *Scheduler {
	s.entries = append(s.entries, entry{
		name:     name,
		interval: interval,
		job:      job,
	})

	return s
}

// Run blocks until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	for _, e := range s.entries {
		if e.interval <= 0 {
			return errors.Errorf("invalid interval '%s' for job '%s'", e.interval, e.name)
		}
	}

	var wg sync.WaitGroup

	for _, e := range s.entries {
		wg.Add(1)
		go func(e entry) {
			defer wg.Done()

			ctx := slogx.WithAttrs(ctx, slog.String("job", e.name))

			slog.DebugContext(ctx, "job scheduled", slog.Duration("interval", e.interval))

			ticker := time.NewTicker(e.interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					execute(ctx, e)
				}
			}
		}(e)
	}

	<-ctx.Done()

	wg.Wait()

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return errors.WithStack(err)
	}

	return nil
}

func execute(ctx context.Context, e entry) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err, ok := recovered.(error)
			if !ok {
				err = errors.Errorf("%+v", recovered)
			}

			slog.ErrorContext(ctx, "recovered panic while running job", slogx.Error(errors.WithStack(err)))
		}
	}()

	start := time.Now()

	if err := e.job(ctx); err != nil {
		slog.ErrorContext(ctx, "job failed", slogx.Error(errors.WithStack(err)))
		return
	}

	slog.DebugContext(ctx, "job done", slog.Duration("duration", time.Since(start)))
}

func New() *Scheduler {
	return &Scheduler{
		entries: make([]entry, 0),
	}
}
