package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotel_reservation/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	c, err := shared.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HTTPAddr != ":8080" || !c.AutoMigrate || c.CacheTTL != 15*time.Minute || c.RedisAddr != "" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hotel.yaml")
	yml := `
app_env: dev
http_addr: ":9090"
redis_addr: "cache:6379"
cache_ttl: 2m
import_ids: [10, 20]
auto_migrate: false
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("IMPORT_IDS", "1, 2,3")

	c, err := shared.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppEnv != "dev" || c.RedisAddr != "cache:6379" || c.CacheTTL != 2*time.Minute || c.AutoMigrate {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.HTTPAddr != ":7070" {
		t.Fatalf("env should win over file, got %s", c.HTTPAddr)
	}
	if len(c.ImportIDs) != 3 || c.ImportIDs[2] != 3 {
		t.Fatalf("unexpected ids: %v", c.ImportIDs)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("IMPORT_IDS", "1,x")
	if _, err := shared.Load(); err == nil {
		t.Fatalf("expected error for bad IMPORT_IDS")
	}

	t.Setenv("IMPORT_IDS", "")
	t.Setenv("AUTO_MIGRATE", "maybe")
	if _, err := shared.Load(); err == nil {
		t.Fatalf("expected error for bad AUTO_MIGRATE")
	}

	t.Setenv("AUTO_MIGRATE", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := shared.Load(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
