package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anonto42/friendfeed/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase opens the configured relational store. TranslateError is always on:
// repositories rely on gorm.ErrDuplicatedKey to report uniqueness conflicts.
func OpenDatabase(driver, dsn string, maxOpenConns int) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// sqliteDSN makes transactions take the write lock at BEGIN and wait on a busy
// database, so concurrent check-then-insert transactions serialize instead of
// failing with "database is locked".
func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.Contains(dsn, "_txlock=") {
		dsn += sep + "_txlock=immediate"
		sep = "&"
	}
	if !strings.Contains(dsn, "_busy_timeout=") {
		dsn += sep + "_busy_timeout=5000"
	}
	return dsn
}

// InitDB opens the database described by cfg.
func InitDB(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.PostgresURL
	if cfg.DBDriver == "sqlite" {
		dsn = cfg.SQLitePath
	}
	db, err := OpenDatabase(cfg.DBDriver, dsn, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}
	log.Info("database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// Migrate creates or updates every table, including the unique indexes on
// friend pairs and (post, user) likes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Friend{},
	)
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("error getting SQL DB from GORM", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("error closing database connection", zap.Error(err))
		return
	}
	log.Info("database connection closed")
}
