package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ========== Load 测试 ==========

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "zola" {
		t.Errorf("App.Name = %s, want zola", cfg.App.Name)
	}
	if cfg.Quota.DailyLimitGuest != 5 {
		t.Errorf("Quota.DailyLimitGuest = %d, want 5", cfg.Quota.DailyLimitGuest)
	}
	if cfg.Quota.DailyLimitAuth != 1000 {
		t.Errorf("Quota.DailyLimitAuth = %d, want 1000", cfg.Quota.DailyLimitAuth)
	}
	if cfg.Quota.DailyLimitPro != 500 {
		t.Errorf("Quota.DailyLimitPro = %d, want 500", cfg.Quota.DailyLimitPro)
	}
	if cfg.Quota.AlertThreshold != 2 {
		t.Errorf("Quota.AlertThreshold = %d, want 2", cfg.Quota.AlertThreshold)
	}
	if cfg.Quota.ProfileCheckAttempts != 3 {
		t.Errorf("Quota.ProfileCheckAttempts = %d, want 3", cfg.Quota.ProfileCheckAttempts)
	}
	if cfg.Quota.ProfileCheckDelay() != 500*time.Millisecond {
		t.Errorf("ProfileCheckDelay() = %v, want 500ms", cfg.Quota.ProfileCheckDelay())
	}
}

func TestLoad_FromFile(t *testing.T) {
	content := `
server:
  host: 127.0.0.1
  port: 9090
quota:
  dailyLimitGuest: 10
  alertThreshold: 3
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.GetAddr() != "127.0.0.1:9090" {
		t.Errorf("Server.GetAddr() = %s, want 127.0.0.1:9090", cfg.Server.GetAddr())
	}
	if cfg.Quota.DailyLimitGuest != 10 {
		t.Errorf("Quota.DailyLimitGuest = %d, want 10", cfg.Quota.DailyLimitGuest)
	}
	if cfg.Quota.AlertThreshold != 3 {
		t.Errorf("Quota.AlertThreshold = %d, want 3", cfg.Quota.AlertThreshold)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "postgres", Password: "secret",
		DBName: "zola", SSLMode: "disable",
	}
	want := "host=db port=5432 user=postgres password=secret dbname=zola sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN() = %s, want %s", got, want)
	}
}
