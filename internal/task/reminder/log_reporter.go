package reminder

import (
	"context"
	"log/slog"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/dustin/go-humanize"
)

// LogReporter writes due-reminder reports to the structured logger.
type LogReporter struct {
	logger *slog.Logger
}

// Report implements [port.DueReporter].
func (r *LogReporter) Report(ctx context.Context, report *model.DueReport) error {
	if report.Empty() {
		r.logger.InfoContext(ctx, "no reminders due", slog.Time("scanned_at", report.ScannedAt))
		return nil
	}

	for _, e := range report.Entries {
		r.logger.InfoContext(
			ctx, "reminder due",
			slog.String("reminder_id", string(e.ReminderID)),
			slog.String("type", string(e.Type)),
			slog.String("plant_id", string(e.PlantID)),
			slog.Time("remind_time", e.RemindTime),
			slog.String("overdue", humanize.RelTime(e.RemindTime, report.ScannedAt, "ago", "from now")),
		)
	}

	r.logger.InfoContext(ctx, "due reminders reported", slog.Int("total", len(report.Entries)))

	return nil
}

func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogReporter{
		logger: logger,
	}
}

var _ port.DueReporter = &LogReporter{}
