// Package config loads propertybook settings from an optional TOML file and
// PROPERTYBOOK_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full process configuration.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Storage StorageConfig `toml:"storage"`
	Backup  BackupConfig  `toml:"backup"`
	HTTP    HTTPConfig    `toml:"http"`
	Metrics MetricsConfig `toml:"metrics"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	AddSource bool   `toml:"add_source"`
	NoColor   bool   `toml:"no_color"`
}

// StorageConfig selects the snapshot store.
type StorageConfig struct {
	// Driver is one of memory, json, sqlite or postgres.
	Driver      string `toml:"driver"`
	JSONPath    string `toml:"json_path"`
	SQLitePath  string `toml:"sqlite_path"`
	PostgresDSN string `toml:"postgres_dsn"`
	// SeedSample loads sample data when the store is empty.
	SeedSample bool `toml:"seed_sample"`
	// SaveDebounce coalesces bursts of changes into one save.
	SaveDebounce Duration `toml:"save_debounce"`
}

// Duration decodes Go duration strings such as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// BackupConfig selects the blob store holding snapshot backups.
type BackupConfig struct {
	Driver      string `toml:"driver"`
	FSRoot      string `toml:"fs_root"`
	S3Bucket    string `toml:"s3_bucket"`
	S3Region    string `toml:"s3_region"`
	S3Endpoint  string `toml:"s3_endpoint"`
	S3PathStyle bool   `toml:"s3_path_style"`
}

type HTTPConfig struct {
	Addr string `toml:"addr"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
	Tracing bool `toml:"tracing"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", AddSource: true},
		Storage: StorageConfig{
			Driver:       "json",
			JSONPath:     "data/propertybook.json",
			SQLitePath:   "data/propertybook.db",
			SeedSample:   true,
			SaveDebounce: Duration{200 * time.Millisecond},
		},
		Backup: BackupConfig{
			Driver:   "fs",
			FSRoot:   "data/backups",
			S3Region: "us-east-1",
		},
		HTTP:    HTTPConfig{Addr: ":8080"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads path over the defaults, then applies environment overrides. A
// missing file is not an error when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("config file %s not found", path)
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown drivers and missing driver settings.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "json":
		if c.Storage.JSONPath == "" {
			return errors.New("storage.json_path required for json driver")
		}
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return errors.New("storage.sqlite_path required for sqlite driver")
		}
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn required for postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Backup.Driver {
	case "fs", "memory":
	case "s3":
		if c.Backup.S3Bucket == "" {
			return errors.New("backup.s3_bucket required for s3 driver")
		}
	default:
		return fmt.Errorf("unknown backup driver %q", c.Backup.Driver)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup("PROPERTYBOOK_" + key); ok {
			*dst = v
		}
	}
	var errs []error
	boolean := func(key string, dst *bool) {
		if v, ok := lookup("PROPERTYBOOK_" + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("PROPERTYBOOK_%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	str("LOG_LEVEL", &cfg.Log.Level)
	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	str("JSON_PATH", &cfg.Storage.JSONPath)
	str("SQLITE_PATH", &cfg.Storage.SQLitePath)
	str("POSTGRES_DSN", &cfg.Storage.PostgresDSN)
	boolean("SEED_SAMPLE", &cfg.Storage.SeedSample)
	if v, ok := lookup("PROPERTYBOOK_SAVE_DEBOUNCE"); ok {
		if err := cfg.Storage.SaveDebounce.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("PROPERTYBOOK_SAVE_DEBOUNCE: %w", err))
		}
	}
	str("BLOB_DRIVER", &cfg.Backup.Driver)
	str("BLOB_FS_ROOT", &cfg.Backup.FSRoot)
	str("BLOB_S3_BUCKET", &cfg.Backup.S3Bucket)
	str("BLOB_S3_REGION", &cfg.Backup.S3Region)
	str("BLOB_S3_ENDPOINT", &cfg.Backup.S3Endpoint)
	boolean("BLOB_S3_PATH_STYLE", &cfg.Backup.S3PathStyle)
	str("HTTP_ADDR", &cfg.HTTP.Addr)
	boolean("METRICS_ENABLED", &cfg.Metrics.Enabled)
	boolean("TRACING_ENABLED", &cfg.Metrics.Tracing)
	return errors.Join(errs...)
}
