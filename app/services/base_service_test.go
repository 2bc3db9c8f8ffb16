package services

import (
	"testing"

	"LavaderoApp/app/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func TestBaseServiceEnsureDB(t *testing.T) {
	withDB := NewBaseService(setupTestDB(t))
	require.NoError(t, withDB.EnsureDB())

	withoutDB := NewBaseService(nil)
	require.Error(t, withoutDB.EnsureDB())
	require.Error(t, withoutDB.Create(&struct{}{}))
}
