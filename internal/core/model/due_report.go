package model

import (
	"time"

	"github.com/rs/xid"
)

type ScanID string

func NewScanID() ScanID {
	return ScanID(xid.New().String())
}

// DueEntry describes a single overdue reminder found during a scan.
type DueEntry struct {
	ReminderID ReminderID
	Type       ReminderType
	PlantID    PlantID
	RemindTime time.Time
	Overdue    time.Duration
}

// DueReport is the outcome of one due-reminder scan. An empty Entries
// slice means no reminder was due at ScannedAt.
type DueReport struct {
	ScanID    ScanID
	ScannedAt time.Time
	Entries   []DueEntry
}

func (r *DueReport) Empty() bool {
	return len(r.Entries) == 0
}
