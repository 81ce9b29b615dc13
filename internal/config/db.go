package config

import (
	"fmt"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type DBConfig struct {
	// postgres | sqlite
	Driver string `envconfig:"DB_DRIVER" default:"postgres"`

	// Полный DSN имеет приоритет над отдельными полями.
	URL         string `envconfig:"DATABASE_URL"`
	SupabaseURL string `envconfig:"SUPABASE_DATABASE_URL"`

	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"handig"`
	Password string `envconfig:"DB_PASSWORD" default:"handig"`
	Name     string `envconfig:"DB_NAME" default:"handig"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`

	// Файл для DB_DRIVER=sqlite (локальная разработка без Postgres).
	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:"handig.db"`

	MaxOpenConns    int `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifeTime int `envconfig:"DB_CONN_MAX_LIFETIME_MIN" default:"30"` // минут

	// silent | error | warn | info
	LogLevel string `envconfig:"DB_LOG_LEVEL" default:"warn"`
}

func LoadDBConfig() (*DBConfig, error) {
	loadDotEnv()

	cfg := &DBConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("db config: %w", err)
	}
	if cfg.URL == "" {
		cfg.URL = cfg.SupabaseURL
	}

	switch cfg.Driver {
	case "postgres":
		// минимальная валидация
		if cfg.URL == "" && (cfg.Host == "" || cfg.User == "" || cfg.Name == "") {
			return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("invalid DB config: DB_SQLITE_PATH must not be empty")
		}
	default:
		return nil, fmt.Errorf("invalid DB config: unknown driver %q", cfg.Driver)
	}

	return cfg, nil
}

// DSN для postgres: DATABASE_URL как есть, иначе собирается из DB_*.
func (c *DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

// Redacted возвращает DSN без пароля, для логов.
func (c *DBConfig) Redacted() string {
	if c.Driver == "sqlite" {
		return "sqlite:" + c.SQLitePath
	}
	if c.URL != "" {
		if u, err := url.Parse(c.URL); err == nil {
			return u.Redacted()
		}
		return "postgres://<unparsed>"
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s", c.Host, c.Port, c.Name, c.User)
}

// .env необязателен; переменные окружения процесса важнее.
func loadDotEnv() {
	_ = godotenv.Load()
}
