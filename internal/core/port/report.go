package port

import (
	"context"

	"github.com/bornholm/garden/internal/core/model"
)

// DueReporter receives the outcome of every due-reminder scan.
type DueReporter interface {
	Report(ctx context.Context, report *model.DueReport) error
}

type DueReporterFunc func(ctx context.Context, report *model.DueReport) error

func (f DueReporterFunc) Report(ctx context.Context, report *model.DueReport) error {
	return f(ctx, report)
}
