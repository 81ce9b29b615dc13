package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"handig-api"`
	Env         string `envconfig:"ENV" default:"dev"`

	Server ServerConfig `ignored:"true"`
	Auth   AuthConfig   `ignored:"true"`
	Log    LogConfig    `ignored:"true"`
	Trace  TraceConfig  `ignored:"true"`

	// CORS
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

type ServerConfig struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":3000"`
	// Порт из старого окружения (PORT=3000), если HTTP_ADDR не задан явно.
	Port     int    `envconfig:"PORT"`
	GRPCAddr string `envconfig:"GRPC_ADDR" default:":50051"`
	GinMode  string `envconfig:"GIN_MODE" default:"release"`

	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

type AuthConfig struct {
	SupabaseURL string        `envconfig:"SUPABASE_URL"`
	JWTSecret   string        `envconfig:"SUPABASE_JWT_SECRET"`
	JWKSTimeout time.Duration `envconfig:"AUTH_JWKS_TIMEOUT" default:"5s"`
	JWKSRefresh time.Duration `envconfig:"AUTH_JWKS_REFRESH" default:"1h"`
}

type LogConfig struct {
	// debug | info | warn | error
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	// json | console
	Format string `envconfig:"LOG_FORMAT" default:"json"`
	// Если задан, пишем ещё и в файл с ротацией.
	File       string `envconfig:"LOG_FILE"`
	MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"10"`
	MaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"30"`
	Compress   bool   `envconfig:"LOG_COMPRESS" default:"true"`
}

type TraceConfig struct {
	// Пустой endpoint выключает трассировку.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func LoadAppConfig() (*AppConfig, error) {
	loadDotEnv()

	cfg := &AppConfig{}
	// Вложенные секции читаются без префикса: имена переменных заданы тегами.
	for _, spec := range []any{cfg, &cfg.Server, &cfg.Auth, &cfg.Log, &cfg.Trace} {
		if err := envconfig.Process("", spec); err != nil {
			return nil, fmt.Errorf("app config: %w", err)
		}
	}
	if cfg.Server.Port > 0 && !envSet("HTTP_ADDR") {
		cfg.Server.HTTPAddr = fmt.Sprintf(":%d", cfg.Server.Port)
	}
	return cfg, nil
}
