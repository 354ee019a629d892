package config

import (
	"flag"
	"os"
	"testing"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN", "ALLOWED_USER_ID", "DATABASE_URI",
		"MEDIA_DIR", "PUBLIC_DIR", "BASE_URL", "AUTH_SECRET",
	} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)
	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.DatabaseDSN != "laniakea.db" {
		t.Fatalf("DatabaseDSN default expected 'laniakea.db', got %q", cfg.DatabaseDSN)
	}
	if cfg.MediaDir != "media" {
		t.Fatalf("MediaDir default expected 'media', got %q", cfg.MediaDir)
	}
	if cfg.PublicDir != "public" {
		t.Fatalf("PublicDir default expected 'public', got %q", cfg.PublicDir)
	}
	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.BaseURL != "localhost:3000" {
		t.Fatalf("BaseURL default expected 'localhost:3000', got %q", cfg.BaseURL)
	}
	if cfg.AllowedUserID != 0 {
		t.Fatalf("AllowedUserID default expected 0 (nobody), got %d", cfg.AllowedUserID)
	}
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_USER_ID", "123456")
	t.Setenv("DATABASE_URI", "postgres://u:p@localhost/vault")
	t.Setenv("BASE_URL", "example.com:8080")
	t.Setenv("AUTH_SECRET", "top")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AllowedUserID != 123456 {
		t.Fatalf("AllowedUserID expected 123456, got %d", cfg.AllowedUserID)
	}
	if cfg.DatabaseDSN != "postgres://u:p@localhost/vault" {
		t.Fatalf("DatabaseDSN expected from env, got %q", cfg.DatabaseDSN)
	}
	if cfg.BaseURL != "example.com:8080" {
		t.Fatalf("BaseURL expected 'example.com:8080', got %q", cfg.BaseURL)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected 'top', got %q", cfg.AuthSecret)
	}
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:3000
	clearEnv(t)
	t.Setenv("BASE_URL", "http://bad:8080")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:3000" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:3000', got %q", cfg.BaseURL)
	}
}
