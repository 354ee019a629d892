package repo

import (
	"Laniakea/internal/model"
	"os"
	"path/filepath"
	"strings"

	gormpg "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает БД по DSN и прогоняет автомиграции моделей.
// DSN со схемой postgres:// подключает Postgres, любой другой
// трактуется как путь к файлу SQLite (чисто-Go драйвер modernc).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	sqlite := false
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = gormpg.Open(dsn)
	} else {
		sqlite = true
		if dir := filepath.Dir(dsn); dir != "." && dir != "" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if sqlite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite не переносит конкурентную запись: один коннект на весь пул
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&model.Item{}, &model.Theme{}, &model.ItemTheme{}); err != nil {
		return nil, err
	}
	return db, nil
}
