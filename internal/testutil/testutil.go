// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/suitespot/service-booking/internal/pkg/database"
	"github.com/suitespot/service-booking/internal/repository"
)

// NewDB opens a private in-memory SQLite database with the schema applied.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
