// Package config loads relay settings from an optional YAML file with
// environment overrides. The encryption key is mandatory: the process refuses
// to start without a usable AES-256 key.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pysugar/gift-relay/internal/crypto"
)

// ErrMissingKey is returned when no encryption key is configured.
var ErrMissingKey = errors.New("encryption key is required (set RELAY_ENCRYPTION_KEY)")

// Config holds runtime settings for the relay.
type Config struct {
	Addr          string `yaml:"addr"`
	DatabasePath  string `yaml:"database"`
	EncryptionKey string `yaml:"encryptionKey"`
	Headless      bool   `yaml:"headless"`
}

func defaults() Config {
	return Config{
		Addr:         "127.0.0.1:8086",
		DatabasePath: "relay.db",
		Headless:     true,
	}
}

// Load builds a Config from defaults, an optional YAML file (RELAY_CONFIG or
// ./relay.yaml) and environment variables, in that order.
func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("RELAY_CONFIG")
	if path == "" {
		if _, err := os.Stat("relay.yaml"); err == nil {
			path = "relay.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("RELAY_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("RELAY_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("RELAY_ENCRYPTION_KEY"); v != "" {
		cfg.EncryptionKey = v
	}
	if v := os.Getenv("RELAY_HEADLESS"); v != "" {
		cfg.Headless = v != "0" && v != "false"
	}

	if _, err := cfg.Key(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Key returns the AES-256 key bytes. A 64-character value is treated as hex,
// a 32-character value as the raw key.
func (c *Config) Key() ([]byte, error) {
	switch len(c.EncryptionKey) {
	case 0:
		return nil, ErrMissingKey
	case crypto.KeySize:
		return []byte(c.EncryptionKey), nil
	case crypto.KeySize * 2:
		key, err := hex.DecodeString(c.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("encryption key is not valid hex: %w", err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("encryption key must be %d raw or %d hex characters, got %d",
			crypto.KeySize, crypto.KeySize*2, len(c.EncryptionKey))
	}
}
