package gorm

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/go-x/slogx"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store is a gorm backed implementation of [port.Store]. Every operation
// runs in its own transaction.
type Store struct {
	getDatabase func(ctx context.Context) (*gorm.DB, error)
}

func (s *Store) withRetry(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error, codes ...sqlite3.ErrorCode) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	backoff := 500 * time.Millisecond
	maxRetries := 10
	retries := 0

	for {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := fn(ctx, tx); err != nil {
				return errors.WithStack(err)
			}

			return nil
		})
		if err != nil {
			if retries >= maxRetries {
				return errors.WithStack(err)
			}

			var sqliteErr *sqlite3.Error
			if errors.As(err, &sqliteErr) {
				if sqliteErr.Code() == sqlite3.CONSTRAINT {
					return errors.Wrap(port.ErrConflict, sqliteErr.Error())
				}

				if !slices.Contains(codes, sqliteErr.Code()) {
					return errors.WithStack(err)
				}

				slog.DebugContext(ctx, "transaction failed, will retry", slog.Int("retries", retries), slog.Duration("backoff", backoff), slogx.Error(err))

				retries++
				if err := sleep(ctx, backoff); err != nil {
					return errors.WithStack(err)
				}
				backoff *= 2
				continue
			}

			return errors.WithStack(err)
		}

		return nil
	}
}

// sleep waits for the given duration or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		getDatabase: createGetDatabase(db, &User{}, &AuthToken{}, &Plant{}, &Reminder{}),
	}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

var _ port.Store = &Store{}

func createGetDatabase(db *gorm.DB, models ...any) func(ctx context.Context) (*gorm.DB, error) {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)

	return func(ctx context.Context) (*gorm.DB, error) {
		migrateOnce.Do(func() {
			if err := db.AutoMigrate(models...); err != nil {
				migrateErr = errors.WithStack(err)
				return
			}
		})
		if migrateErr != nil {
			return nil, errors.WithStack(migrateErr)
		}

		return db, nil
	}
}

func applyPage(query *gorm.DB, page port.Page) *gorm.DB {
	if page.Skip > 0 {
		query = query.Offset(page.Skip)
	}

	if page.Limit != nil {
		query = query.Limit(*page.Limit)
	}

	return query
}
