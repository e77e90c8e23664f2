package memory

import (
	"context"
	"sync"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
)

// ReportHistory keeps the most recent due-reminder reports in memory.
type ReportHistory struct {
	mu      sync.RWMutex
	size    int
	reports []*model.DueReport
}

// Report implements [port.DueReporter].
func (h *ReportHistory) Report(ctx context.Context, report *model.DueReport) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reports = append(h.reports, report)
	if len(h.reports) > h.size {
		h.reports = h.reports[len(h.reports)-h.size:]
	}

	return nil
}

// Last returns the latest report, or nil if no scan has completed yet.
func (h *ReportHistory) Last() *model.DueReport {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.reports) == 0 {
		return nil
	}

	return h.reports[len(h.reports)-1]
}

// All returns the retained reports, oldest first.
func (h *ReportHistory) All() []*model.DueReport {
	h.mu.RLock()
	defer h.mu.RUnlock()

	reports := make([]*model.DueReport, len(h.reports))
	copy(reports, h.reports)

	return reports
}

func NewReportHistory(size int) *ReportHistory {
	if size < 1 {
		size = 1
	}

	return &ReportHistory{
		size:    size,
		reports: make([]*model.DueReport, 0, size),
	}
}

var _ port.DueReporter = &ReportHistory{}
