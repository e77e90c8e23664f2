package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/garden/internal/metrics"
	"github.com/pkg/errors"
)

type ReminderCreate struct {
	PlantID    model.PlantID      `json:"plant_id" validate:"required"`
	Type       model.ReminderType `json:"reminder_type" validate:"required,min=1,max=64"`
	RemindTime time.Time          `json:"remind_time" validate:"required"`
	Notes      string             `json:"notes"`
}

type ReminderUpdate struct {
	PlantID    *model.PlantID      `json:"plant_id" validate:"omitnil,min=1"`
	Type       *model.ReminderType `json:"reminder_type" validate:"omitnil,min=1,max=64"`
	RemindTime *time.Time          `json:"remind_time" validate:"omitnil,required"`
	Notes      *string             `json:"notes"`
}

type ReminderManagerOptions struct {
	MaxLimit int
}

type ReminderManagerOptionFunc func(opts *ReminderManagerOptions)

func WithReminderManagerMaxLimit(maxLimit int) ReminderManagerOptionFunc {
	return func(opts *ReminderManagerOptions) {
		opts.MaxLimit = maxLimit
	}
}

func NewReminderManagerOptions(funcs ...ReminderManagerOptionFunc) *ReminderManagerOptions {
	opts := &ReminderManagerOptions{
		MaxLimit: DefaultMaxLimit,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// ReminderManager exposes the reminder operations on behalf of a principal.
// A reminder is accessible to whoever may access its parent plant.
type ReminderManager struct {
	reminders port.ReminderStore
	plants    port.PlantStore
	maxLimit  int
}

func (m *ReminderManager) List(ctx context.Context, principal model.User, opts ListOptions) (reminders []model.PersistedReminder, total int64, err error) {
	defer func() { observe(metrics.ResourceReminder, "list", err) }()

	if principal == nil {
		return nil, 0, errors.WithStack(ErrForbidden)
	}

	query := port.QueryRemindersOptions{
		Page: clampPage(opts, m.maxLimit),
	}

	if !principal.IsSuperuser() {
		ownerID := principal.ID()
		query.PlantOwnerID = &ownerID
	}

	reminders, total, err = m.reminders.QueryReminders(ctx, query)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return reminders, total, nil
}

func (m *ReminderManager) Get(ctx context.Context, principal model.User, id model.ReminderID) (reminder model.PersistedReminder, err error) {
	defer func() { observe(metrics.ResourceReminder, "get", err) }()

	reminder, err = m.getAuthorized(ctx, principal, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return reminder, nil
}

func (m *ReminderManager) Create(ctx context.Context, principal model.User, payload ReminderCreate) (reminder model.PersistedReminder, err error) {
	defer func() { observe(metrics.ResourceReminder, "create", err) }()

	if principal == nil {
		return nil, errors.WithStack(ErrForbidden)
	}

	if err := validatePayload(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := m.assertPlantAccessible(ctx, principal, payload.PlantID); err != nil {
		return nil, errors.WithStack(err)
	}

	reminder, err = m.reminders.CreateReminder(ctx, model.NewReminder(payload.PlantID, payload.Type, payload.RemindTime, payload.Notes))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "reminder created", slog.String("reminder_id", string(reminder.ID())), slog.String("plant_id", string(reminder.PlantID())))

	return reminder, nil
}

func (m *ReminderManager) Update(ctx context.Context, principal model.User, id model.ReminderID, payload ReminderUpdate) (reminder model.PersistedReminder, err error) {
	defer func() { observe(metrics.ResourceReminder, "update", err) }()

	current, err := m.getAuthorized(ctx, principal, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := validatePayload(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	if payload.PlantID != nil && *payload.PlantID != current.PlantID() {
		if err := m.assertPlantAccessible(ctx, principal, *payload.PlantID); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	reminder, err = m.reminders.UpdateReminder(ctx, id, port.ReminderUpdates{
		PlantID:    payload.PlantID,
		Type:       payload.Type,
		RemindTime: payload.RemindTime,
		Notes:      payload.Notes,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return reminder, nil
}

func (m *ReminderManager) Delete(ctx context.Context, principal model.User, id model.ReminderID) (err error) {
	defer func() { observe(metrics.ResourceReminder, "delete", err) }()

	if _, err := m.getAuthorized(ctx, principal, id); err != nil {
		return errors.WithStack(err)
	}

	if err := m.reminders.DeleteReminder(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (m *ReminderManager) getAuthorized(ctx context.Context, principal model.User, id model.ReminderID) (model.PersistedReminder, error) {
	reminder, err := m.reminders.GetReminderByID(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	ownerID, err := m.plantOwner(ctx, reminder.PlantID())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if Authorize(principal, ownerID) == Deny {
		slog.DebugContext(ctx, "reminder access denied", slog.String("reminder_id", string(id)), slog.String("principal", model.UserString(principal)))
		return nil, errors.WithStack(ErrForbidden)
	}

	return reminder, nil
}

// plantOwner returns the owner of the given plant, or an empty id when
// the plant no longer exists.
func (m *ReminderManager) plantOwner(ctx context.Context, plantID model.PlantID) (model.UserID, error) {
	plant, err := m.plants.GetPlantByID(ctx, plantID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return "", nil
		}

		return "", errors.WithStack(err)
	}

	return plant.OwnerID(), nil
}

func (m *ReminderManager) assertPlantAccessible(ctx context.Context, principal model.User, plantID model.PlantID) error {
	plant, err := m.plants.GetPlantByID(ctx, plantID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return errors.Wrapf(ErrPlantNotFound, "plant '%s'", plantID)
		}

		return errors.WithStack(err)
	}

	if Authorize(principal, plant.OwnerID()) == Deny {
		return errors.WithStack(ErrForbidden)
	}

	return nil
}

func NewReminderManager(reminders port.ReminderStore, plants port.PlantStore, funcs ...ReminderManagerOptionFunc) *ReminderManager {
	opts := NewReminderManagerOptions(funcs...)
	return &ReminderManager{
		reminders: reminders,
		plants:    plants,
		maxLimit:  opts.MaxLimit,
	}
}
