package setup

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bornholm/garden/internal/config"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
)

// Foreign keys back the plant to reminder cascade.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=wal",
	"PRAGMA foreign_keys=on",
	"PRAGMA busy_timeout=5000",
}

var getGormDatabaseFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*gorm.DB, error) {
	return openSQLite(ctx, conf.Storage.Database.DSN, slog.Level(conf.Logger.Level))
})

func openSQLite(ctx context.Context, dsn string, level slog.Level) (*gorm.DB, error) {
	if path := sqliteFilePath(dsn); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, errors.Wrapf(err, "could not create directory of database '%s'", path)
		}
	}

	db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(level)),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if level <= slog.LevelDebug {
		db = db.Debug()
	}

	internalDB, err := db.DB()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// sqlite allows a single writer
	internalDB.SetMaxOpenConns(1)

	for _, pragma := range sqlitePragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, errors.Wrapf(err, "could not apply '%s'", pragma)
		}
	}

	slog.DebugContext(ctx, "database opened", slog.String("dsn", dsn))

	return db, nil
}

func gormLogLevel(level slog.Level) logger.LogLevel {
	if level >= slog.LevelError {
		return logger.Error
	}

	return logger.Warn
}

// sqliteFilePath returns the on-disk path of a plain file dsn, or an empty
// string for uri and in-memory dsns.
func sqliteFilePath(dsn string) string {
	if dsn == "" || strings.HasPrefix(dsn, "file:") || strings.HasPrefix(dsn, ":memory:") {
		return ""
	}

	return dsn
}
