package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/Yogesh-SS7/AibotforPCOD/config"
	"github.com/Yogesh-SS7/AibotforPCOD/models"
)

func TestInit_FileDSNCreatesDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "ritu.db")

	db, err := Init(config.DatabaseConfig{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, Migrate(db))
	assert.FileExists(t, dsn)
	assert.True(t, db.Migrator().HasTable(&models.UserProfile{}))
	assert.True(t, db.Migrator().HasTable(&models.AssessmentRecord{}))
	assert.True(t, db.Migrator().HasTable(&models.ChatMessage{}))
}

func TestInit_Memory(t *testing.T) {
	db, err := Init(config.DatabaseConfig{DSN: MemoryDSN})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("latest_assessments"))
}

func TestGormLogLevel(t *testing.T) {
	restore := zap.ReplaceGlobals(zap.NewNop())
	assert.Equal(t, logger.Warn, gormLogLevel())
	restore()

	dev, err := zap.NewDevelopment()
	require.NoError(t, err)
	restore = zap.ReplaceGlobals(dev)
	defer restore()
	assert.Equal(t, logger.Info, gormLogLevel())
}
