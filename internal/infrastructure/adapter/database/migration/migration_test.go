package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "atm.db")), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestMigrationManager_EnsureSchema(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	m := NewMigrationManager(db, logger.NewNoopLogger(), timeprovider.NewRealTimeProvider())

	version, err := m.GetCurrentVersion(ctx)
	require.Error(t, err, "version table does not exist yet")
	assert.Empty(t, version)

	require.NoError(t, m.EnsureSchema(ctx))
	assert.True(t, db.Migrator().HasTable(&model.Account{}))
	assert.True(t, db.Migrator().HasColumn(&model.Account{}, "pin"))

	version, err = m.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)

	t.Run("Second run is a no-op", func(t *testing.T) {
		require.NoError(t, db.Create(&model.Account{AccountNumber: "1001", PINDigest: "d", Balance: 500}).Error)

		require.NoError(t, m.EnsureSchema(ctx))

		var versions int64
		require.NoError(t, db.Model(&model.MigrationVersion{}).Count(&versions).Error)
		assert.Equal(t, int64(1), versions)

		var account model.Account
		require.NoError(t, db.First(&account, "account_number = ?", "1001").Error)
		assert.Equal(t, int64(500), account.Balance)
	})
}

func TestMigrationManager_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMigrationManager(openTestDB(t), logger.NewNoopLogger(), timeprovider.NewRealTimeProvider())

	_, err := m.GetCurrentVersion(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
