package testutil

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"user-api/pkg/common/config"
	"user-api/pkg/core/user/model"
)

// OpenSQLiteDB opens a private in-memory SQLite database with the user schema applied.
// Shared cache keeps the schema visible across pooled connections; the unique
// name keeps tests isolated from each other.
func OpenSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.Database.LogLevel = "silent"
	cfg.Database.MinPoolSize = 1

	db, err := cfg.InitDB()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
