package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Leganyst/handig/internal/api"
	"github.com/Leganyst/handig/internal/auth"
	"github.com/Leganyst/handig/internal/config"
	"github.com/Leganyst/handig/internal/db"
	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/obs"
	"github.com/Leganyst/handig/internal/repository"
	"github.com/Leganyst/handig/internal/seed"
	"github.com/Leganyst/handig/internal/service"
)

func main() {
	withSeed := flag.Bool("seed", false, "заполнить демо-каталог перед стартом")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Конфиг приложения и логгер.
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		panic(err)
	}
	logger, err := obs.InitLogger(appCfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracer, err := obs.InitTracer(ctx, appCfg.Trace.OTLPEndpoint, appCfg.ServiceName, appCfg.Env)
	if err != nil {
		zap.L().Fatal("init tracer", zap.Error(err))
	}

	// 2. Подключаемся к БД через GORM.
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

	// 3. Миграции моделей и, по флагу, демо-данные.
	if err := model.AutoMigrate(gormDB); err != nil {
		zap.L().Fatal("auto migrate", zap.Error(err))
	}
	if *withSeed {
		if err := seed.Run(ctx, gormDB); err != nil {
			zap.L().Fatal("seed", zap.Error(err))
		}
	}

	// 4. Репозитории и сервисы.
	categoryRepo := repository.NewGormCategoryRepository(gormDB)
	serviceRepo := repository.NewGormServiceRepository(gormDB)
	providerRepo := repository.NewGormProviderRepository(gormDB)
	photoRepo := repository.NewGormPhotoRepository(gormDB)
	profileRepo := repository.NewGormProfileRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	audit := service.NewAuditLog(eventRepo)
	catalogSvc := service.NewCatalogService(categoryRepo, serviceRepo, providerRepo, photoRepo)
	providerSvc := service.NewProviderService(serviceRepo, providerRepo, photoRepo, audit)
	profileSvc := service.NewProfileService(profileRepo, audit)

	// 5. Проверка токенов.
	verifier, err := auth.New(ctx, auth.Options{
		IssuerBase:  appCfg.Auth.SupabaseURL,
		Secret:      appCfg.Auth.JWTSecret,
		JWKSTimeout: appCfg.Auth.JWKSTimeout,
		JWKSRefresh: appCfg.Auth.JWKSRefresh,
	})
	if err != nil {
		zap.L().Fatal("init auth", zap.Error(err))
	}

	// 6. HTTP.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(registry)

	gin.SetMode(appCfg.Server.GinMode)
	router := api.NewRouter(api.RouterDeps{
		Handler:        api.NewHandler(catalogSvc, providerSvc, profileSvc, audit),
		Verifier:       verifier,
		Metrics:        metrics,
		Gatherer:       registry,
		ServiceName:    appCfg.ServiceName,
		AllowedOrigins: appCfg.AllowedOrigins,
	})
	httpServer := &http.Server{
		Addr:         appCfg.Server.HTTPAddr,
		Handler:      router,
		ReadTimeout:  appCfg.Server.ReadTimeout,
		WriteTimeout: appCfg.Server.WriteTimeout,
		IdleTimeout:  appCfg.Server.IdleTimeout,
	}

	// 7. gRPC: только health и reflection.
	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", appCfg.Server.GRPCAddr)
	if err != nil {
		zap.L().Fatal("listen grpc", zap.String("addr", appCfg.Server.GRPCAddr), zap.Error(err))
	}

	go func() {
		zap.L().Info("grpc health server listening", zap.String("addr", appCfg.Server.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			zap.L().Error("grpc serve", zap.Error(err))
			stop()
		}
	}()
	go func() {
		zap.L().Info("http server listening", zap.String("addr", appCfg.Server.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("http serve", zap.Error(err))
			stop()
		}
	}()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// 8. Грейсфул-шатдаун по сигналу.
	<-ctx.Done()
	zap.L().Info("shutting down")
	healthSrv.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("http shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	if err := shutdownTracer(shutdownCtx); err != nil {
		zap.L().Warn("tracer shutdown", zap.Error(err))
	}
}
