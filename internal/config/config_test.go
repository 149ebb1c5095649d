package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"INVENTORY_DB_PATH", "INVENTORY_SECRET", "INVENTORY_SESSION_FILE", "INVENTORY_SESSION_TTL",
		"INVENTORY_PASSWORD_SCHEME", "INVENTORY_LOG_LEVEL", "INVENTORY_LOG_FILE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	// point at a file that does not exist so a developer's .env cannot leak in
	t.Setenv("INVENTORY_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.Database.Path != "inventory.db" || cfg.Auth.Secret == "" || cfg.Auth.SessionFile == "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.SessionTTL != 12*time.Hour || cfg.Auth.PasswordScheme != "plain" {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when INVENTORY_SECRET is not set")
	}
	t.Setenv("INVENTORY_SECRET", "x")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("INVENTORY_SESSION_TTL", "soon")
	if _, err := LoadWithDefaults(); err == nil {
		t.Fatalf("expected error for bad duration")
	}
	t.Setenv("INVENTORY_SESSION_TTL", "1h")
	t.Setenv("INVENTORY_PASSWORD_SCHEME", "md5")
	if _, err := LoadWithDefaults(); err == nil {
		t.Fatalf("expected error for unknown password scheme")
	}
}

func TestLoad_ReadsDotEnvWithoutOverriding(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "INVENTORY_DB_PATH=from-file.db\nINVENTORY_SECRET=file-secret\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("INVENTORY_ENV_FILE", envFile)
	t.Setenv("INVENTORY_SECRET", "env-secret")
	t.Cleanup(func() { os.Unsetenv("INVENTORY_DB_PATH") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "from-file.db" {
		t.Fatalf("db path = %q, want value from .env", cfg.Database.Path)
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Fatalf("secret overridden by .env: %q", cfg.Auth.Secret)
	}
}

func TestString_MasksSecret(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{Secret: "hunter2"}}
	if strings.Contains(cfg.String(), "hunter2") {
		t.Fatalf("secret leaked: %s", cfg.String())
	}
}
