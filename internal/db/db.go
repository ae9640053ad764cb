// Package db opens the gorm connection to the application database.
package db

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	pkgerrors "github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/artify-go/artify/internal/config"
	"github.com/artify-go/artify/internal/db/dsn"
	"github.com/artify-go/artify/internal/db/models"
	"github.com/artify-go/artify/internal/logger/adapter/gormlogger"
)

const slowQueryThreshold = 200 * time.Millisecond

var (
	// ErrUnsupportedEngine is returned for an unknown DB.GormEngine.
	ErrUnsupportedEngine = errors.New("unsupported gorm engine")
	// ErrConfigNil is returned when no configuration was passed.
	ErrConfigNil = errors.New("config is nil")
	// ErrDatabaseMissing is returned by OpenExisting for a sqlite file that does not exist.
	ErrDatabaseMissing = errors.New("database file does not exist")
)

// Open connects to the database selected by cfg.DB.GormEngine.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.CreatePostgres(cfg))
	case config.EngineSQLite, "":
		file := dsn.CreateSQLite(cfg)
		if file != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil { //nolint: mnd
				return nil, pkgerrors.Wrapf(err, "can't create database directory for %s", file)
			}
		}

		dialector = sqlite.Open(file)
	default:
		return nil, pkgerrors.Wrapf(ErrUnsupportedEngine, "%q", cfg.DB.GormEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger(cfg)})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	return db, nil
}

// OpenExisting is Open for readers: a missing sqlite file is an error instead of being created.
func OpenExisting(cfg *config.Config) (*gorm.DB, error) {
	if cfg != nil && (cfg.DB.GormEngine == config.EngineSQLite || cfg.DB.GormEngine == "") {
		if file := dsn.CreateSQLite(cfg); file != ":memory:" {
			if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
				return nil, pkgerrors.Wrapf(ErrDatabaseMissing, "%s", file)
			} else if err != nil {
				return nil, pkgerrors.Wrapf(err, "can't access database %s", file)
			}
		}
	}

	return Open(cfg)
}

// Migrate creates the roles table when it does not exist yet.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Role{}); err != nil {
		return pkgerrors.Wrap(err, "failed to migrate database")
	}

	return nil
}

func newLogger(cfg *config.Config) glogger.Interface {
	level := glogger.Warn
	if cfg.Log.LogSQL {
		level = glogger.Info
	}

	return gormlogger.New(level, slowQueryThreshold)
}
