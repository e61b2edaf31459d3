package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mapLookup(env map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "propertybook.toml")
	body := `
[log]
level = "debug"

[storage]
driver = "sqlite"
sqlite_path = "/tmp/pb.db"
save_debounce = "1s"

[http]
addr = "127.0.0.1:9000"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Storage.Driver != "sqlite" || cfg.Storage.SQLitePath != "/tmp/pb.db" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Storage.SaveDebounce.Duration != time.Second {
		t.Fatalf("expected 1s debounce, got %v", cfg.Storage.SaveDebounce)
	}
	if cfg.HTTP.Addr != "127.0.0.1:9000" || cfg.Backup.Driver != "fs" {
		t.Fatalf("unexpected merge result: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte("[storage\ndriver="), 0o600)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := Default()
	err := applyEnv(&cfg, mapLookup(map[string]string{
		"LOG_LEVEL":                       "warn",
		"PROPERTYBOOK_STORAGE_DRIVER":     "postgres",
		"PROPERTYBOOK_POSTGRES_DSN":       "postgres://pb@localhost/pb",
		"PROPERTYBOOK_SEED_SAMPLE":        "false",
		"PROPERTYBOOK_BLOB_DRIVER":        "s3",
		"PROPERTYBOOK_BLOB_S3_BUCKET":     "backups",
		"PROPERTYBOOK_BLOB_S3_PATH_STYLE": "true",
		"PROPERTYBOOK_SAVE_DEBOUNCE":      "50ms",
	}))
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Storage.Driver != "postgres" || cfg.Storage.SeedSample {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !cfg.Backup.S3PathStyle || cfg.Backup.S3Bucket != "backups" || cfg.Storage.SaveDebounce.Duration != 50*time.Millisecond {
		t.Fatalf("env not applied: %+v", cfg.Backup)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestPrefixedLogLevelWins(t *testing.T) {
	cfg := Default()
	applyEnv(&cfg, mapLookup(map[string]string{"LOG_LEVEL": "warn", "PROPERTYBOOK_LOG_LEVEL": "error"}))
	if cfg.Log.Level != "error" {
		t.Fatalf("expected prefixed level, got %s", cfg.Log.Level)
	}
}

func TestEnvRejectsBadValues(t *testing.T) {
	cfg := Default()
	err := applyEnv(&cfg, mapLookup(map[string]string{
		"PROPERTYBOOK_SEED_SAMPLE":   "sometimes",
		"PROPERTYBOOK_SAVE_DEBOUNCE": "soon",
	}))
	if err == nil {
		t.Fatalf("expected errors for malformed values")
	}
}

func TestValidateDrivers(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.Storage.Driver = "mongo" },
		func(c *Config) { c.Storage.Driver = "postgres" },
		func(c *Config) { c.Storage.Driver = "sqlite"; c.Storage.SQLitePath = "" },
		func(c *Config) { c.Storage.JSONPath = "" },
		func(c *Config) { c.Backup.Driver = "s3" },
		func(c *Config) { c.Backup.Driver = "ftp" },
	}
	for i, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
