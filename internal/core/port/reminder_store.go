package port

import (
	"context"
	"time"

	"github.com/bornholm/garden/internal/core/model"
)

type ReminderStore interface {
	// CreateReminder persists a new reminder. It returns ErrNotFound if the parent plant does not exist.
	CreateReminder(ctx context.Context, reminder model.Reminder) (model.PersistedReminder, error)

	// GetReminderByID finds a reminder by its ID, or returns ErrNotFound if not found
	GetReminderByID(ctx context.Context, id model.ReminderID) (model.PersistedReminder, error)

	// QueryReminders returns a page of reminders in insertion order and the
	// total number of reminders matching the filters
	QueryReminders(ctx context.Context, opts QueryRemindersOptions) ([]model.PersistedReminder, int64, error)

	// UpdateReminder applies the non-nil fields of updates to the reminder.
	// It returns ErrNotFound if the updated plant id does not exist.
	UpdateReminder(ctx context.Context, id model.ReminderID, updates ReminderUpdates) (model.PersistedReminder, error)

	// DeleteReminder deletes a reminder, or returns ErrNotFound if not found
	DeleteReminder(ctx context.Context, id model.ReminderID) error
}

type QueryRemindersOptions struct {
	Page

	// Filters

	// Reminders whose parent plant is owned by this user
	PlantOwnerID *model.UserID

	// Reminders attached to this plant
	PlantID *model.PlantID

	// Reminders with a remind time at or before this instant
	DueAt *time.Time
}

type ReminderUpdates struct {
	PlantID    *model.PlantID
	Type       *model.ReminderType
	RemindTime *time.Time
	Notes      *string
}
