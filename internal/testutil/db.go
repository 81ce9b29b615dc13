// Package testutil — общие помощники для тестов: SQLite в памяти с полной схемой.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/seed"
)

// NewDB открывает отдельную БД в памяти на каждый тест и накатывает миграции.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql DB: %v", err)
	}
	// Одно соединение: SQLite в памяти не держит параллельных писателей.
	// Запросы из горутин сериализуются, гонки чтения и вставки тестируются подменой репозитория.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// NewSeededDB: NewDB плюс демо-каталог.
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	if err := seed.Run(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}
