package gorm

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/garden/internal/core/port/testsuite"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
)

func TestStore(t *testing.T) {
	testsuite.TestStore(t, func(t *testing.T) (port.Store, error) {
		dsn := filepath.Join(t.TempDir(), "data.sqlite")

		db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, errors.WithStack(err)
		}

		internalDB, err := db.DB()
		if err != nil {
			return nil, errors.WithStack(err)
		}

		internalDB.SetMaxOpenConns(1)

		t.Cleanup(func() {
			if err := internalDB.Close(); err != nil {
				t.Logf("could not close database: %+v", errors.WithStack(err))
			}
		})

		if err := db.Exec("PRAGMA foreign_keys=on").Error; err != nil {
			return nil, errors.WithStack(err)
		}

		return NewStore(db), nil
	})
}

func TestSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()

	if err := sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("err: expected %v, got %+v", context.Canceled, err)
	}

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("expected cancelled wait to return immediately, took %v", elapsed)
	}

	if err := sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("%+v", errors.WithStack(err))
	}
}
