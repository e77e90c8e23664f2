package model

import (
	"time"

	"github.com/rs/xid"
)

type ReminderID string

func NewReminderID() ReminderID {
	return ReminderID(xid.New().String())
}

// ReminderType is an open category tag. The constants below are the
// values used by the sample data, any other value is accepted.
type ReminderType string

const (
	ReminderTypeWater         ReminderType = "water"
	ReminderTypeFertilization ReminderType = "fertilization"
)

// Reminder is a time-based care reminder attached to a plant. Access to a
// reminder is granted through its parent plant.
type Reminder interface {
	WithID[ReminderID]

	PlantID() PlantID
	Type() ReminderType
	RemindTime() time.Time
	Notes() string
}

type PersistedReminder interface {
	Reminder
	WithLifecycle
}

type BaseReminder struct {
	id         ReminderID
	plantID    PlantID
	kind       ReminderType
	remindTime time.Time
	notes      string
}

// ID implements Reminder.
func (r *BaseReminder) ID() ReminderID {
	return r.id
}

// PlantID implements Reminder.
func (r *BaseReminder) PlantID() PlantID {
	return r.plantID
}

// Type implements Reminder.
func (r *BaseReminder) Type() ReminderType {
	return r.kind
}

// RemindTime implements Reminder.
func (r *BaseReminder) RemindTime() time.Time {
	return r.remindTime
}

// Notes implements Reminder.
func (r *BaseReminder) Notes() string {
	return r.notes
}

var _ Reminder = &BaseReminder{}

func NewReminder(plantID PlantID, kind ReminderType, remindTime time.Time, notes string) *BaseReminder {
	return NewReminderWithID(NewReminderID(), plantID, kind, remindTime, notes)
}

func NewReminderWithID(id ReminderID, plantID PlantID, kind ReminderType, remindTime time.Time, notes string) *BaseReminder {
	return &BaseReminder{
		id:         id,
		plantID:    plantID,
		kind:       kind,
		remindTime: NormalizeTime(remindTime),
		notes:      notes,
	}
}

// IsDue reports whether the reminder remind time is at or before the given instant.
func IsDue(r Reminder, now time.Time) bool {
	return !r.RemindTime().After(now)
}

// NormalizeTime converts t to UTC with microsecond precision, the
// resolution at which remind times are persisted.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
