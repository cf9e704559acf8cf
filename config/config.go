// Package config loads lexvec settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/viant/lexvec/metric"
	"github.com/viant/lexvec/resolve"
)

// Store backend types.
const (
	StoreKVFile = "kvfile"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Ranking index types.
const (
	IndexBruteForce = "bruteforce"
	IndexSQLite     = "sqlite"
)

// StoreConfig selects and locates the vector store.
type StoreConfig struct {
	Type         string `yaml:"type"`
	Path         string `yaml:"path,omitempty"`
	Table        string `yaml:"table,omitempty"`
	TokenColumn  string `yaml:"token_column,omitempty"`
	VectorColumn string `yaml:"vector_column,omitempty"`
	RedisAddr    string `yaml:"redis_addr,omitempty"`
	RedisDB      int    `yaml:"redis_db,omitempty"`
	Key          string `yaml:"key,omitempty"`
}

// SimilarityConfig holds defaults for similarity queries.
type SimilarityConfig struct {
	N           int    `yaml:"n"`
	Metric      string `yaml:"metric"`
	Lower       bool   `yaml:"lower"`
	Parallelism int    `yaml:"parallelism,omitempty"`
	Index       string `yaml:"index,omitempty"`
}

// ResolverConfig controls token resolution.
type ResolverConfig struct {
	MissPolicy string `yaml:"miss_policy"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root configuration structure.
type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Resolver   ResolverConfig   `yaml:"resolver"`
	Log        LogConfig        `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store:      StoreConfig{Type: StoreKVFile, Key: "lexvec"},
		Similarity: SimilarityConfig{N: 10, Metric: string(metric.Default), Index: IndexBruteForce},
		Resolver:   ResolverConfig{MissPolicy: resolve.FallbackZero.String()},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a config with Read and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads a config from path and applies environment overrides and
// defaults without validating. A missing file yields the defaults.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: %s: %w", path, err)
			}
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Save writes cfg to path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreKVFile, StoreSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("config: store.path is required for %s", c.Store.Type)
		}
	case StoreRedis:
		if c.Store.RedisAddr == "" || c.Store.Key == "" {
			return fmt.Errorf("config: store.redis_addr and store.key are required for redis")
		}
	default:
		return fmt.Errorf("config: unknown store.type %q", c.Store.Type)
	}
	if _, err := metric.Parse(c.Similarity.Metric); err != nil {
		return fmt.Errorf("config: similarity.metric: %w", err)
	}
	switch c.Similarity.Index {
	case IndexBruteForce, IndexSQLite:
	default:
		return fmt.Errorf("config: unknown similarity.index %q", c.Similarity.Index)
	}
	if _, ok := resolve.ParseMissPolicy(c.Resolver.MissPolicy); !ok {
		return fmt.Errorf("config: unknown resolver.miss_policy %q", c.Resolver.MissPolicy)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	d := Default()
	if cfg.Store.Type == "" {
		cfg.Store.Type = d.Store.Type
	}
	if cfg.Store.Key == "" {
		cfg.Store.Key = d.Store.Key
	}
	if cfg.Similarity.N == 0 {
		cfg.Similarity.N = d.Similarity.N
	}
	if cfg.Similarity.Metric == "" {
		cfg.Similarity.Metric = d.Similarity.Metric
	}
	if cfg.Similarity.Index == "" {
		cfg.Similarity.Index = d.Similarity.Index
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = d.Log.Format
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LEXVEC_STORE_TYPE"); v != "" {
		cfg.Store.Type = strings.ToLower(v)
	}
	if v := os.Getenv("LEXVEC_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("LEXVEC_REDIS_ADDR"); v != "" {
		cfg.Store.RedisAddr = v
	}
	if v := os.Getenv("LEXVEC_REDIS_KEY"); v != "" {
		cfg.Store.Key = v
	}
	if v := os.Getenv("LEXVEC_METRIC"); v != "" {
		cfg.Similarity.Metric = v
	}
	if v := os.Getenv("LEXVEC_INDEX"); v != "" {
		cfg.Similarity.Index = strings.ToLower(v)
	}
	if v := os.Getenv("LEXVEC_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: LEXVEC_N: %w", err)
		}
		cfg.Similarity.N = n
	}
	if v := os.Getenv("LEXVEC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}
