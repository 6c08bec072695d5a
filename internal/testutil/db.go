// Package testutil provides shared fixtures for tests.
package testutil

import (
	"context"
	"testing"

	"commons/internal/database"
	"commons/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory database with the full schema applied.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	require.NoError(t, database.EnsureModelIndexes(context.Background(), db))
	return db
}

// CreateUser inserts a user with an opaque password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "hash.salt", IsAdmin: isAdmin}
	require.NoError(t, db.Create(user).Error)
	return user
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }

// UintPtr returns a pointer to v.
func UintPtr(v uint) *uint { return &v }

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool { return &v }
