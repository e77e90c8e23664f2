package service

import (
	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/garden/internal/metrics"
	"github.com/pkg/errors"
)

const DefaultMaxLimit = 100

// ListOptions is the paging requested by a caller. A nil Limit selects
// the maximum page size.
type ListOptions struct {
	Skip  int
	Limit *int
}

func clampPage(opts ListOptions, maxLimit int) port.Page {
	limit := maxLimit
	if opts.Limit != nil && *opts.Limit >= 0 && *opts.Limit < maxLimit {
		limit = *opts.Limit
	}

	return port.Page{
		Skip:  max(opts.Skip, 0),
		Limit: &limit,
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, port.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, ErrValidation):
		return metrics.OutcomeInvalid
	case errors.Is(err, port.ErrConflict):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}

func observe(resource, operation string, err error) {
	metrics.Operations.WithLabelValues(resource, operation, outcome(err)).Inc()
}
