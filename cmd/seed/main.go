package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/Leganyst/handig/internal/config"
	"github.com/Leganyst/handig/internal/db"
	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/obs"
	"github.com/Leganyst/handig/internal/seed"
)

// Заполняет БД демо-каталогом. Повторный запуск безопасен.
func main() {
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		panic(err)
	}
	logger, err := obs.InitLogger(appCfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		zap.L().Fatal("load db config", zap.Error(err))
	}
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		zap.L().Fatal("init db", zap.String("dsn", dbCfg.Redacted()), zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		zap.L().Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := model.AutoMigrate(gormDB); err != nil {
		zap.L().Fatal("auto migrate", zap.Error(err))
	}
	if err := seed.Run(context.Background(), gormDB); err != nil {
		zap.L().Fatal("seed", zap.Error(err))
	}
}
