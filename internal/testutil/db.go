// Package testutil provides helpers shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"bakery-api/internal/config"
	"bakery-api/internal/database"
	"bakery-api/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// OpenSQLite returns a migrated SQLite database living in the test's temp dir.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)",
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateBakery inserts a bakery named name.
func CreateBakery(t testing.TB, db *gorm.DB, name string) models.Bakery {
	t.Helper()
	b := models.Bakery{Name: name}
	require.NoError(t, db.Create(&b).Error)
	return b
}

// CreateBakedGood inserts a baked good, attached to bakeryID when it is not nil.
func CreateBakedGood(t testing.TB, db *gorm.DB, name string, price float64, bakeryID *uint) models.BakedGood {
	t.Helper()
	g := models.BakedGood{Name: name, Price: price, BakeryID: bakeryID}
	require.NoError(t, db.Create(&g).Error)
	return g
}
