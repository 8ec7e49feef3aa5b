package database

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Yogesh-SS7/AibotforPCOD/config"
	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

// MemoryDSN selects a shared in-memory database.
const MemoryDSN = "memory"

const sharedMemoryDSN = "file::memory:?cache=shared"

const slowQueryThreshold = 200 * time.Millisecond

// Init opens the sqlite database named by cfg.DSN. "memory" or an empty DSN
// opens a shared in-memory database; anything else is a file path whose
// directory is created if needed.
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.New(
		zap.NewStdLog(zap.L().Named("gorm")),
		logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormLogLevel(),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gormConfig := &gorm.Config{Logger: gormLogger}

	dsn := cfg.DSN
	if dsn == MemoryDSN || dsn == "" {
		zap.L().Info("[Database] Initializing in-memory SQLite database")
		dsn = sharedMemoryDSN
	} else {
		zap.L().Info("[Database] Initializing file-based SQLite database", zap.String("dsn", dsn))
		if dir := filepath.Dir(dsn); dir != "." && dir != "/" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, eris.Wrapf(err, "failed to create database directory %q", dir)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to connect to database (DSN: %q)", cfg.DSN)
	}

	zap.L().Info("[Database] Database connection established")
	return db, nil
}

// Migrate creates or updates the tables of every stored model.
func Migrate(db *gorm.DB) error {
	zap.L().Info("[Database] Running database migrations")
	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.AssessmentRecord{},
		&models.ChatMessage{},
	); err != nil {
		return eris.Wrap(err, "failed to auto-migrate database")
	}
	zap.L().Info("[Database] Database migration completed")
	return nil
}

// gormLogLevel keeps SQL tracing for debug logging only.
func gormLogLevel() logger.LogLevel {
	if zap.L().Core().Enabled(zapcore.DebugLevel) {
		return logger.Info
	}
	return logger.Warn
}
