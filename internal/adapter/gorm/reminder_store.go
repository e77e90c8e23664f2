package gorm

import (
	"context"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateReminder implements [port.ReminderStore].
func (s *Store) CreateReminder(ctx context.Context, reminder model.Reminder) (model.PersistedReminder, error) {
	gormReminder := fromReminder(reminder)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := assertExists(db, &Plant{}, gormReminder.PlantID); err != nil {
			return errors.WithStack(err)
		}

		if err := db.Create(gormReminder).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedReminder{gormReminder}, nil
}

// GetReminderByID implements [port.ReminderStore].
func (s *Store) GetReminderByID(ctx context.Context, id model.ReminderID) (model.PersistedReminder, error) {
	var reminder Reminder

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&reminder, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}
			return errors.WithStack(err)
		}
		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedReminder{&reminder}, nil
}

// QueryReminders implements [port.ReminderStore].
func (s *Store) QueryReminders(ctx context.Context, opts port.QueryRemindersOptions) ([]model.PersistedReminder, int64, error) {
	var (
		reminders []*Reminder
		total     int64
	)

	filter := func(query *gorm.DB) *gorm.DB {
		if opts.PlantOwnerID != nil {
			query = query.
				Joins("JOIN plants ON plants.id = reminders.plant_id").
				Where("plants.owner_id = ?", string(*opts.PlantOwnerID))
		}

		if opts.PlantID != nil {
			query = query.Where("reminders.plant_id = ?", string(*opts.PlantID))
		}

		if opts.DueAt != nil {
			query = query.Where("reminders.remind_time <= ?", toUnixMicro(*opts.DueAt))
		}

		return query
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := filter(db.Model(&Reminder{})).Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		query := applyPage(filter(db.Model(&Reminder{})), opts.Page)

		if err := query.Order("reminders.rowid ASC").Find(&reminders).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	persisted := make([]model.PersistedReminder, 0, len(reminders))
	for _, r := range reminders {
		persisted = append(persisted, &wrappedReminder{r})
	}

	return persisted, total, nil
}

// UpdateReminder implements [port.ReminderStore].
func (s *Store) UpdateReminder(ctx context.Context, id model.ReminderID, updates port.ReminderUpdates) (model.PersistedReminder, error) {
	var reminder Reminder

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&reminder, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}
			return errors.WithStack(err)
		}

		if updates.PlantID != nil {
			if err := assertExists(db, &Plant{}, string(*updates.PlantID)); err != nil {
				return errors.WithStack(err)
			}
			reminder.PlantID = string(*updates.PlantID)
		}

		if updates.Type != nil {
			reminder.Type = string(*updates.Type)
		}

		if updates.RemindTime != nil {
			reminder.RemindTime = toUnixMicro(*updates.RemindTime)
		}

		if updates.Notes != nil {
			reminder.Notes = *updates.Notes
		}

		if err := db.Save(&reminder).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedReminder{&reminder}, nil
}

// DeleteReminder implements [port.ReminderStore].
func (s *Store) DeleteReminder(ctx context.Context, id model.ReminderID) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		result := db.Delete(&Reminder{}, "id = ?", string(id))
		if result.Error != nil {
			return errors.WithStack(result.Error)
		}

		if result.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
