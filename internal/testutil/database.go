// Package testutil provides test helpers for setting up backends, creating
// fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"projefa/internal/models"
	"projefa/internal/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&models.Category{},
	&models.Project{},
	&models.Task{},
}

// dbCounter ensures each test gets its own in-memory database.
var dbCounter atomic.Int64

// SetupTestDB creates an isolated in-memory SQLite database with all models
// migrated. TranslateError is enabled to match the production configuration.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// SetupRelationalStore creates a RelationalStore over an isolated in-memory
// SQLite database.
func SetupRelationalStore(t *testing.T) *storage.RelationalStore {
	t.Helper()
	return storage.NewRelationalStore(SetupTestDB(t))
}

// SetupDocumentStore creates a DocumentStore in a per-test temp directory.
func SetupDocumentStore(t *testing.T) *storage.DocumentStore {
	t.Helper()

	store, err := storage.NewDocumentStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open test document store: %v", err)
	}
	return store
}
