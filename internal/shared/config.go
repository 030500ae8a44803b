package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv      string        `yaml:"app_env"`
	LogLevel    string        `yaml:"log_level"`
	HTTPAddr    string        `yaml:"http_addr"`
	MetricsAddr string        `yaml:"metrics_addr"`
	MySQLDSN    string        `yaml:"mysql_dsn"`
	AutoMigrate bool          `yaml:"auto_migrate"`
	RedisAddr   string        `yaml:"redis_addr"`
	RedisDB     int           `yaml:"redis_db"`
	RedisPass   string        `yaml:"redis_password"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	CatalogBase string        `yaml:"catalog_base_url"`
	CatalogKey  string        `yaml:"catalog_api_key"`
	Workers     int           `yaml:"import_workers"`
	ImportIDs   []int64       `yaml:"import_ids"`
}

func defaults() Config {
	return Config{
		AppEnv:      "prod",
		LogLevel:    "info",
		HTTPAddr:    ":8080",
		MySQLDSN:    "root:root@tcp(localhost:3306)/hotel?parseTime=true&charset=utf8mb4&loc=UTC",
		AutoMigrate: true,
		CacheTTL:    900 * time.Second,
		CatalogBase: "https://content-api.cupid.travel/v3.0",
		Workers:     8,
	}
}

// Load builds the config from defaults, then the YAML file named by CONFIG_FILE,
// then environment variables.
func Load() (Config, error) {
	c := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	atoi := func(k string, dst *int) {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			} else {
				log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
			}
		}
	}
	str := func(k string, dst *string) {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}

	str("APP_ENV", &c.AppEnv)
	str("LOG_LEVEL", &c.LogLevel)
	str("HTTP_ADDR", &c.HTTPAddr)
	str("METRICS_ADDR", &c.MetricsAddr)
	str("MYSQL_DSN", &c.MySQLDSN)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPass)
	atoi("REDIS_DB", &c.RedisDB)
	str("CATALOG_BASE_URL", &c.CatalogBase)
	str("CATALOG_API_KEY", &c.CatalogKey)
	atoi("IMPORT_WORKERS", &c.Workers)

	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AUTO_MIGRATE: %w", err)
		}
		c.AutoMigrate = b
	}
	ttl := -1
	atoi("CACHE_TTL_SECONDS", &ttl)
	if ttl >= 0 {
		c.CacheTTL = time.Duration(ttl) * time.Second
	}
	if v := os.Getenv("IMPORT_IDS"); v != "" {
		ids, err := parseIDs(v)
		if err != nil {
			return err
		}
		c.ImportIDs = ids
	}
	return nil
}

func parseIDs(s string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("IMPORT_IDS: %q is not an id", part)
		}
		out = append(out, id)
	}
	return out, nil
}
