package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/garden/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type ScannerOptions struct {
	Now       func() time.Time
	Reporters []port.DueReporter
}

type ScannerOptionFunc func(opts *ScannerOptions)

func WithScannerClock(now func() time.Time) ScannerOptionFunc {
	return func(opts *ScannerOptions) {
		opts.Now = now
	}
}

func WithScannerReporters(reporters ...port.DueReporter) ScannerOptionFunc {
	return func(opts *ScannerOptions) {
		opts.Reporters = append(opts.Reporters, reporters...)
	}
}

func NewScannerOptions(funcs ...ScannerOptionFunc) *ScannerOptions {
	opts := &ScannerOptions{
		Now:       time.Now,
		Reporters: make([]port.DueReporter, 0),
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// Scanner finds the reminders whose remind time has elapsed. It holds no
// state between scans: a due reminder is reported again on every scan
// until it is deleted or rescheduled.
type Scanner struct {
	store     port.ReminderStore
	now       func() time.Time
	reporters []port.DueReporter
}

// CheckDueReminders runs a single scan and hands the resulting report to
// every configured reporter. Reporter failures are logged and do not fail
// the scan.
func (s *Scanner) CheckDueReminders(ctx context.Context) (*model.DueReport, error) {
	start := time.Now()
	defer func() { metrics.ScanDuration.Observe(time.Since(start).Seconds()) }()

	report := &model.DueReport{
		ScanID:    model.NewScanID(),
		ScannedAt: model.NormalizeTime(s.now()),
		Entries:   make([]model.DueEntry, 0),
	}

	ctx = slogx.WithAttrs(ctx, slog.String("scan_id", string(report.ScanID)))

	slog.DebugContext(ctx, "scanning due reminders", slog.Time("now", report.ScannedAt))

	dueAt := report.ScannedAt

	reminders, _, err := s.store.QueryReminders(ctx, port.QueryRemindersOptions{
		DueAt: &dueAt,
	})
	if err != nil {
		metrics.Scans.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, errors.Wrap(err, "could not query due reminders")
	}

	for _, r := range reminders {
		report.Entries = append(report.Entries, model.DueEntry{
			ReminderID: r.ID(),
			Type:       r.Type(),
			PlantID:    r.PlantID(),
			RemindTime: r.RemindTime(),
			Overdue:    report.ScannedAt.Sub(r.RemindTime()),
		})
	}

	metrics.Scans.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.DueReminders.Set(float64(len(report.Entries)))

	for _, reporter := range s.reporters {
		if err := reporter.Report(ctx, report); err != nil {
			slog.ErrorContext(ctx, "could not report due reminders", slogx.Error(errors.WithStack(err)))
		}
	}

	return report, nil
}

// Run adapts CheckDueReminders to a scheduler job.
func (s *Scanner) Run(ctx context.Context) error {
	if _, err := s.CheckDueReminders(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewScanner(store port.ReminderStore, funcs ...ScannerOptionFunc) *Scanner {
	opts := NewScannerOptions(funcs...)
	return &Scanner{
		store:     store,
		now:       opts.Now,
		reporters: opts.Reporters,
	}
}
