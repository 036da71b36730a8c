// Package config loads the settings of the atelier command.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/atelier/internal/logging"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreFile   = "file"
)

// Config holds the server and storage settings.
type Config struct {
	Listen    string `yaml:"listen" json:"listen"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
	Namespace string `yaml:"namespace" json:"namespace"`
	AuditLog  bool   `yaml:"audit_log" json:"audit_log"`

	// Documents are loaded into the store on startup, one per file.
	Documents []string `yaml:"documents" json:"documents"`

	Store StoreConfig `yaml:"store" json:"store"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Kind  string      `yaml:"kind" json:"kind"`
	Redis RedisConfig `yaml:"redis" json:"redis"`
	// Dir is the directory of the file store.
	Dir string `yaml:"dir" json:"dir"`

	// EncryptionKey is a 64 character hex AES-256 key. Empty disables encryption.
	EncryptionKey string `yaml:"encryption_key" json:"encryption_key"`
	// Redact lists property name patterns masked before documents are stored.
	Redact []string `yaml:"redact" json:"redact"`

	LockTTL time.Duration `yaml:"lock_ttl" json:"lock_ttl"`
}

// RedisConfig configures the Redis store and locker.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
		Store: StoreConfig{
			Kind:    StoreMemory,
			LockTTL: 30 * time.Second,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
	}
}

// Load reads path over the defaults. Files ending in .json are decoded as
// JSON, everything else as YAML. Relative document paths are resolved
// against the directory of path, as is the file store directory.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if cfg.Store.Dir != "" && !filepath.IsAbs(cfg.Store.Dir) {
		cfg.Store.Dir = filepath.Join(dir, cfg.Store.Dir)
	}
	for i, doc := range cfg.Documents {
		if !filepath.IsAbs(doc) {
			cfg.Documents[i] = filepath.Join(dir, doc)
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings.
func (c Config) Validate() error {
	var errs []string
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}
	switch c.Store.Kind {
	case StoreMemory, StoreFile:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, "redis store requires an address")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown store kind %q", c.Store.Kind))
	}
	if k := c.Store.EncryptionKey; k != "" && len(k) != 64 {
		errs = append(errs, "encryption key must be 64 hex characters")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
