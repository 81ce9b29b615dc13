package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// unsetEnv убирает переменные на время теста. Пустое значение envconfig
// считает заданным, поэтому t.Setenv(k, "") не подходит.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for k, v := range env {
		if v == "" {
			unsetEnv(t, k)
			continue
		}
		t.Setenv(k, v)
	}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	unsetEnv(t, "HTTP_ADDR", "PORT", "GRPC_ADDR", "HTTP_READ_TIMEOUT", "HTTP_IDLE_TIMEOUT", "SHUTDOWN_TIMEOUT",
		"SUPABASE_URL", "SUPABASE_JWT_SECRET", "AUTH_JWKS_TIMEOUT", "AUTH_JWKS_REFRESH", "ALLOWED_ORIGINS")

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.Server.HTTPAddr != ":3000" {
		t.Fatalf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Server.GRPCAddr != ":50051" {
		t.Fatalf("GRPCAddr = %q", cfg.Server.GRPCAddr)
	}
	if cfg.Server.ReadTimeout != 15*time.Second || cfg.Server.IdleTimeout != 60*time.Second || cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Fatalf("timeouts = %+v", cfg.Server)
	}
	if cfg.Auth.JWKSTimeout != 5*time.Second || cfg.Auth.JWKSRefresh != time.Hour {
		t.Fatalf("auth = %+v", cfg.Auth)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadAppConfig_FromEnv(t *testing.T) {
	unsetEnv(t, "HTTP_ADDR")
	t.Setenv("PORT", "8080")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Fatalf("PORT not applied: %q", cfg.Server.HTTPAddr)
	}
	if cfg.Auth.SupabaseURL != "https://proj.supabase.co" {
		t.Fatalf("SupabaseURL = %q", cfg.Auth.SupabaseURL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q", cfg.Log.Level)
	}

	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	cfg, err = LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.Server.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("HTTP_ADDR must win over PORT: %q", cfg.Server.HTTPAddr)
	}
}

func TestLoadDBConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, c *DBConfig)
	}{
		{
			name: "supabase url fallback",
			env:  map[string]string{"DB_DRIVER": "postgres", "DATABASE_URL": "", "SUPABASE_DATABASE_URL": "postgres://u:p@db:5432/x"},
			check: func(t *testing.T, c *DBConfig) {
				if c.DSN() != "postgres://u:p@db:5432/x" {
					t.Fatalf("DSN = %q", c.DSN())
				}
				if strings.Contains(c.Redacted(), ":p@") {
					t.Fatalf("password leaked: %q", c.Redacted())
				}
			},
		},
		{
			name: "discrete fields",
			env:  map[string]string{"DB_DRIVER": "postgres", "DATABASE_URL": "", "SUPABASE_DATABASE_URL": "", "DB_HOST": "pg", "DB_NAME": "catalog"},
			check: func(t *testing.T, c *DBConfig) {
				if !strings.Contains(c.DSN(), "host=pg") || !strings.Contains(c.DSN(), "dbname=catalog") {
					t.Fatalf("DSN = %q", c.DSN())
				}
			},
		},
		{
			name: "sqlite",
			env:  map[string]string{"DB_DRIVER": "sqlite", "DB_SQLITE_PATH": "/tmp/h.db"},
			check: func(t *testing.T, c *DBConfig) {
				if c.Redacted() != "sqlite:/tmp/h.db" {
					t.Fatalf("Redacted = %q", c.Redacted())
				}
			},
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"DB_DRIVER": "mysql"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			cfg, err := LoadDBConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
