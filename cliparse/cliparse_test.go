// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("AUTH_TOKEN_SALT", "test-salt")
	t.Setenv("REQUEST_TIMEOUT", "2s")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %s", cfg.RequestTimeout)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-token-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected default 5s timeout, got %s", cfg.RequestTimeout)
	}
}

func TestParseFlags_MissingSecrets(t *testing.T) {
	os.Unsetenv("AUTH_TOKEN_SALT")
	t.Setenv("DATABASE_URL", "file:test.db")

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when AUTH_TOKEN_SALT is missing")
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	_, err := ParseFlags([]string{"-d", "x", "-t", "mysql", "-token-salt", "s"})
	if err == nil {
		t.Error("expected error for unsupported database type")
	}
}
