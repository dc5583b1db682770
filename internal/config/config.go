package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the storefront runtime settings.
type Config struct {
	StorageDriver string
	StoragePath   string
	RedisAddr     string
	RedisPrefix   string
	CatalogPath   string // empty selects the bundled catalog
	LogFile       string
	LogLevel      string
	CheckoutDelay time.Duration
	NoticeTTL     time.Duration
}

const (
	defaultConfigPath    = "~/.config/storefront/config.toml"
	defaultDataDir       = "~/.local/share/storefront"
	defaultStorageDriver = "sqlite"
	defaultRedisAddr     = "127.0.0.1:6379"
	defaultRedisPrefix   = "storefront:"
	defaultLogLevel      = "info"
	defaultCheckoutDelay = 1500 * time.Millisecond
	defaultNoticeTTL     = 3 * time.Second
)

type fileConfig struct {
	Catalog       string `toml:"catalog"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	CheckoutDelay string `toml:"checkout_delay"`
	NoticeTTL     string `toml:"notice_ttl"`
	Storage       struct {
		Driver      string `toml:"driver"`
		Path        string `toml:"path"`
		RedisAddr   string `toml:"redis_addr"`
		RedisPrefix string `toml:"redis_prefix"`
	} `toml:"storage"`
}

// envConfig mirrors the overridable fields. Unset variables leave the file
// value in place.
type envConfig struct {
	StorageDriver string        `env:"STOREFRONT_STORAGE_DRIVER"`
	StoragePath   string        `env:"STOREFRONT_STORAGE_PATH"`
	RedisAddr     string        `env:"STOREFRONT_REDIS_ADDR"`
	RedisPrefix   string        `env:"STOREFRONT_REDIS_PREFIX"`
	Catalog       string        `env:"STOREFRONT_CATALOG"`
	LogFile       string        `env:"STOREFRONT_LOG_FILE"`
	LogLevel      string        `env:"STOREFRONT_LOG_LEVEL"`
	CheckoutDelay time.Duration `env:"STOREFRONT_CHECKOUT_DELAY"`
	NoticeTTL     time.Duration `env:"STOREFRONT_NOTICE_TTL"`
}

// Default returns the settings used when no file or environment overrides exist.
func Default() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		StorageDriver: defaultStorageDriver,
		StoragePath:   filepath.Join(dataDir, "storefront.db"),
		RedisAddr:     defaultRedisAddr,
		RedisPrefix:   defaultRedisPrefix,
		LogFile:       filepath.Join(dataDir, "storefront.log"),
		LogLevel:      defaultLogLevel,
		CheckoutDelay: defaultCheckoutDelay,
		NoticeTTL:     defaultNoticeTTL,
	}
}

// Load reads the config file at path (the default location when empty),
// applies environment overrides and fills defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyFile(raw); err != nil {
		return Config{}, err
	}

	var overrides envConfig
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.applyEnv(overrides)

	return cfg.normalize()
}

func readFile(path string) (fileConfig, error) {
	var raw fileConfig
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return raw, nil
		}
		return raw, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return raw, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return raw, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

func (c *Config) applyFile(raw fileConfig) error {
	setString(&c.StorageDriver, raw.Storage.Driver)
	setString(&c.StoragePath, raw.Storage.Path)
	setString(&c.RedisAddr, raw.Storage.RedisAddr)
	setString(&c.RedisPrefix, raw.Storage.RedisPrefix)
	setString(&c.CatalogPath, raw.Catalog)
	setString(&c.LogFile, raw.LogFile)
	setString(&c.LogLevel, raw.LogLevel)

	if v := strings.TrimSpace(raw.CheckoutDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: checkout_delay: %w", err)
		}
		c.CheckoutDelay = d
	}
	if v := strings.TrimSpace(raw.NoticeTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: notice_ttl: %w", err)
		}
		c.NoticeTTL = d
	}
	return nil
}

func (c *Config) applyEnv(e envConfig) {
	setString(&c.StorageDriver, e.StorageDriver)
	setString(&c.StoragePath, e.StoragePath)
	setString(&c.RedisAddr, e.RedisAddr)
	setString(&c.RedisPrefix, e.RedisPrefix)
	setString(&c.CatalogPath, e.Catalog)
	setString(&c.LogFile, e.LogFile)
	setString(&c.LogLevel, e.LogLevel)
	if e.CheckoutDelay > 0 {
		c.CheckoutDelay = e.CheckoutDelay
	}
	if e.NoticeTTL > 0 {
		c.NoticeTTL = e.NoticeTTL
	}
}

// normalize expands paths and repairs out-of-range durations. The storage
// driver name is only lower-cased; storage.Open rejects unknown drivers.
func (c Config) normalize() (Config, error) {
	c.StorageDriver = strings.ToLower(c.StorageDriver)
	c.StoragePath = mustExpand(c.StoragePath)
	c.LogFile = mustExpand(c.LogFile)
	if c.CatalogPath != "" {
		c.CatalogPath = mustExpand(c.CatalogPath)
	}
	if c.CheckoutDelay < 0 {
		c.CheckoutDelay = defaultCheckoutDelay
	}
	if c.NoticeTTL <= 0 {
		c.NoticeTTL = defaultNoticeTTL
	}
	return c, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
