package gorm

import (
	"context"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreatePlant implements [port.PlantStore].
func (s *Store) CreatePlant(ctx context.Context, plant model.Plant) (model.PersistedPlant, error) {
	gormPlant := fromPlant(plant)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := assertExists(db, &User{}, gormPlant.OwnerID); err != nil {
			return errors.WithStack(err)
		}

		if err := db.Omit(clause.Associations).Create(gormPlant).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedPlant{gormPlant}, nil
}

// GetPlantByID implements [port.PlantStore].
func (s *Store) GetPlantByID(ctx context.Context, id model.PlantID) (model.PersistedPlant, error) {
	var plant Plant

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&plant, "id = ?", string(id)).Error; err != nil {
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

	return &wrappedPlant{&plant}, nil
}

// QueryPlants implements [port.PlantStore].
func (s *Store) QueryPlants(ctx context.Context, opts port.QueryPlantsOptions) ([]model.PersistedPlant, int64, error) {
	var (
		plants []*Plant
		total  int64
	)

	filter := func(query *gorm.DB) *gorm.DB {
		if opts.OwnerID != nil {
			query = query.Where("owner_id = ?", string(*opts.OwnerID))
		}
		return query
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := filter(db.Model(&Plant{})).Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		query := applyPage(filter(db.Model(&Plant{})), opts.Page)

		if err := query.Order("plants.rowid ASC").Find(&plants).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	persisted := make([]model.PersistedPlant, 0, len(plants))
	for _, p := range plants {
		persisted = append(persisted, &wrappedPlant{p})
	}

	return persisted, total, nil
}

// UpdatePlant implements [port.PlantStore].
func (s *Store) UpdatePlant(ctx context.Context, id model.PlantID, updates port.PlantUpdates) (model.PersistedPlant, error) {
	var plant Plant

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&plant, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}
			return errors.WithStack(err)
		}

		attrs := model.PlantAttributesOf(&wrappedPlant{&plant})
		updates.Apply(&attrs)
		setPlantAttributes(&plant, attrs)

		if err := db.Omit(clause.Associations).Save(&plant).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedPlant{&plant}, nil
}

// DeletePlant implements [port.PlantStore].
func (s *Store) DeletePlant(ctx context.Context, id model.PlantID, policy port.DeletePolicy) error {
	if !policy.Valid() {
		return errors.Errorf("unknown delete policy '%s'", policy)
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := assertExists(db, &Plant{}, string(id)); err != nil {
			return errors.WithStack(err)
		}

		switch policy {
		case port.DeletePolicyRestrict:
			var dependents int64
			if err := db.Model(&Reminder{}).Where("plant_id = ?", string(id)).Count(&dependents).Error; err != nil {
				return errors.WithStack(err)
			}

			if dependents > 0 {
				return errors.Wrapf(port.ErrConflict, "plant '%s' still has %d reminders", id, dependents)
			}

		case port.DeletePolicyCascade:
			if err := db.Delete(&Reminder{}, "plant_id = ?", string(id)).Error; err != nil {
				return errors.WithStack(err)
			}
		}

		if err := db.Delete(&Plant{}, "id = ?", string(id)).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
