// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

// Package config loads the application configuration from layered sources:
// built-in defaults, an optional YAML file and CRS_-prefixed environment
// variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/yourhu/CRS-System/internal/recommend"
	"github.com/yourhu/CRS-System/internal/storage"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/crs/config.yaml",
	"/etc/crs/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CRS_CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping them to
// config paths: CRS_SERVER_PORT -> server.port.
const envPrefix = "CRS_"

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  storage.Config  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	NLP       NLPConfig       `koanf:"nlp"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig tunes the HTTP server.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host" validate:"required"`

	// Port is the listen port.
	Port int `koanf:"port" validate:"gte=1,lte=65535"`

	// ReadTimeout bounds request reads.
	ReadTimeout time.Duration `koanf:"read_timeout" validate:"gt=0"`

	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// CORSOrigins are the allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the per-IP request budget per RateLimitWindow;
	// 0 disables rate limiting.
	RateLimitReqs int `koanf:"rate_limit_reqs" validate:"gte=0"`

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// LoggingConfig tunes log output.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line in logs.
	Caller bool `koanf:"caller"`
}

// NLPConfig tunes utterance interpretation.
type NLPConfig struct {
	// ModelPath is the statistical intent model artifact; empty runs on
	// the rule-based classifier alone.
	ModelPath string `koanf:"model_path"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	// Limit is the product count per recommendation reply.
	Limit int `koanf:"limit" validate:"gte=1"`

	// RuleWeight, CollaborativeWeight and ContentWeight are the fusion
	// weights for authenticated users.
	RuleWeight          float64 `koanf:"rule_weight" validate:"gte=0"`
	CollaborativeWeight float64 `koanf:"collaborative_weight" validate:"gte=0"`
	ContentWeight       float64 `koanf:"content_weight" validate:"gte=0"`

	// AnonymousRuleWeight and AnonymousContentWeight are the fusion
	// weights for anonymous users, who have no collaborative signal.
	AnonymousRuleWeight    float64 `koanf:"anonymous_rule_weight" validate:"gte=0"`
	AnonymousContentWeight float64 `koanf:"anonymous_content_weight" validate:"gte=0"`

	// SeedDemoData populates an empty database with the demo catalog.
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// EngineConfig converts the section into the engine's configuration.
func (c RecommendConfig) EngineConfig() recommend.EngineConfig {
	return recommend.EngineConfig{
		Weights: recommend.Weights{
			Rule:          c.RuleWeight,
			Collaborative: c.CollaborativeWeight,
			Content:       c.ContentWeight,
		},
		AnonymousWeights: recommend.Weights{
			Rule:    c.AnonymousRuleWeight,
			Content: c.AnonymousContentWeight,
		},
		DefaultLimit: c.Limit,
	}
}

// defaultConfig returns the built-in defaults, applied before the config
// file and environment variables.
func defaultConfig() *Config {
	weights := recommend.DefaultWeights()
	anonymous := recommend.AnonymousWeights()

	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Database: storage.Config{
			Path:      "/data/crs.duckdb",
			MaxMemory: "512MB",
			Threads:   0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		NLP: NLPConfig{
			ModelPath: "",
		},
		Recommend: RecommendConfig{
			Limit:                  5,
			RuleWeight:             weights.Rule,
			CollaborativeWeight:    weights.Collaborative,
			ContentWeight:          weights.Content,
			AnonymousRuleWeight:    anonymous.Rule,
			AnonymousContentWeight: anonymous.Content,
			SeedDemoData:           false,
		},
	}
}

// Load loads the configuration with layered precedence: defaults, then an
// optional YAML file, then CRS_-prefixed environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration's field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// findConfigFile returns the first existing config file path, preferring
// the CRS_CONFIG_PATH override, or empty when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps an environment variable name to a koanf path:
// CRS_SERVER_PORT -> server.port, CRS_DATABASE_MAX_MEMORY ->
// database.max_memory.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	// Section prefixes map to nested paths; the remainder is one field
	// name that may itself contain underscores.
	for _, section := range []string{"server", "database", "logging", "nlp", "recommend"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// sliceConfigPaths are the config paths parsed as comma-separated slices
// when set via environment variables.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings, but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("set %s: %w", path, err)
			}
		}
	}
	return nil
}
