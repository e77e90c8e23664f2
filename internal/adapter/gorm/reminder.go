package gorm

import (
	"time"

	"github.com/bornholm/garden/internal/core/model"
)

// Reminder deliberately carries no association to [Plant]: reminders of
// a deleted plant may outlive it.
type Reminder struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	PlantID string `gorm:"index;not null"`

	Type string
	// Unix time in microseconds, UTC
	RemindTime int64 `gorm:"index"`
	Notes      string
}

type wrappedReminder struct {
	r *Reminder
}

// CreatedAt implements [model.PersistedReminder].
func (w *wrappedReminder) CreatedAt() time.Time {
	return w.r.CreatedAt
}

// UpdatedAt implements [model.PersistedReminder].
func (w *wrappedReminder) UpdatedAt() time.Time {
	return w.r.UpdatedAt
}

// ID implements [model.PersistedReminder].
func (w *wrappedReminder) ID() model.ReminderID {
	return model.ReminderID(w.r.ID)
}

// PlantID implements [model.PersistedReminder].
func (w *wrappedReminder) PlantID() model.PlantID {
	return model.PlantID(w.r.PlantID)
}

// Type implements [model.PersistedReminder].
func (w *wrappedReminder) Type() model.ReminderType {
	return model.ReminderType(w.r.Type)
}

// RemindTime implements [model.PersistedReminder].
func (w *wrappedReminder) RemindTime() time.Time {
	return time.UnixMicro(w.r.RemindTime).UTC()
}

// Notes implements [model.PersistedReminder].
func (w *wrappedReminder) Notes() string {
	return w.r.Notes
}

var _ model.PersistedReminder = &wrappedReminder{}

func fromReminder(r model.Reminder) *Reminder {
	return &Reminder{
		ID:         string(r.ID()),
		PlantID:    string(r.PlantID()),
		Type:       string(r.Type()),
		RemindTime: toUnixMicro(r.RemindTime()),
		Notes:      r.Notes(),
	}
}

func toUnixMicro(t time.Time) int64 {
	return model.NormalizeTime(t).UnixMicro()
}
