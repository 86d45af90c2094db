package helpers

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/hideout-go/internal/adapters/persistence"
	"github.com/andrescamacho/hideout-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory database closed when t finishes
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}

// SharedTestDB is the database the BDD suite reuses across scenarios
var SharedTestDB *gorm.DB

// InitializeSharedTestDB opens SharedTestDB; TestMain calls it once
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables empties every migrated table, child tables first, so
// each scenario starts with no profiles and no prices
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	models := persistence.AllModels()
	slices.Reverse(models)
	for _, model := range models {
		if err := SharedTestDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to truncate %T: %w", model, err)
		}
	}
	return nil
}

// CloseSharedTestDB closes SharedTestDB; TestMain calls it after the run
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
