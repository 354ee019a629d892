package repo

import (
	"Laniakea/internal/model"
	"path/filepath"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует SQLite (modernc.org/sqlite) во временном файле
// для тестов репозиториев. Пул ограничен одним коннектом, как в InitDB.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "vault.db")
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	// Миграции для всех моделей, используемых в репозиториях
	if err := db.AutoMigrate(&model.Item{}, &model.Theme{}, &model.ItemTheme{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }
