package api

import (
	"net/http"
	"time"
)

type DueEntry struct {
	ReminderID string    `json:"reminder_id"`
	Type       string    `json:"reminder_type"`
	PlantID    string    `json:"plant_id"`
	RemindTime time.Time `json:"remind_time"`
	Overdue    string    `json:"overdue"`
}

type ScanReport struct {
	ScanID    string     `json:"scan_id"`
	ScannedAt time.Time  `json:"scanned_at"`
	Entries   []DueEntry `json:"entries"`
}

func (h *Handler) handleLastScan(w http.ResponseWriter, r *http.Request) {
	var report *ScanReport

	if h.reports != nil {
		if last := h.reports.Last(); last != nil {
			report = &ScanReport{
				ScanID:    string(last.ScanID),
				ScannedAt: last.ScannedAt,
				Entries:   make([]DueEntry, 0, len(last.Entries)),
			}

			for _, e := range last.Entries {
				report.Entries = append(report.Entries, DueEntry{
					ReminderID: string(e.ReminderID),
					Type:       string(e.Type),
					PlantID:    string(e.PlantID),
					RemindTime: e.RemindTime,
					Overdue:    e.Overdue.String(),
				})
			}
		}
	}

	if report == nil {
		writeJSON(w, r, http.StatusNotFound, ErrorResponse{Detail: "No scan has run yet"})
		return
	}

	writeJSON(w, r, http.StatusOK, report)
}
