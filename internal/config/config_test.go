// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("server = %+v, want default host and port", cfg.Server)
	}
	if cfg.Server.RateLimitReqs != 100 || cfg.Server.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%s, want 100/min", cfg.Server.RateLimitReqs, cfg.Server.RateLimitWindow)
	}
	if cfg.Database.Path != "/data/crs.duckdb" || cfg.Database.MaxMemory != "512MB" {
		t.Errorf("database = %+v, want defaults", cfg.Database)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Recommend.Limit != 5 {
		t.Errorf("recommend limit = %d, want 5", cfg.Recommend.Limit)
	}
	if cfg.Recommend.RuleWeight != 0.3 || cfg.Recommend.CollaborativeWeight != 0.4 || cfg.Recommend.ContentWeight != 0.3 {
		t.Errorf("weights = %+v, want 0.3/0.4/0.3", cfg.Recommend)
	}
	if cfg.Recommend.AnonymousRuleWeight != 0.6 || cfg.Recommend.AnonymousContentWeight != 0.4 {
		t.Errorf("anonymous weights = %+v, want 0.6/0.4", cfg.Recommend)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  read_timeout: 20s
logging:
  format: console
recommend:
  limit: 8
  seed_demo_data: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("read timeout = %s, want 20s from file", cfg.Server.ReadTimeout)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("format = %q, want console from file", cfg.Logging.Format)
	}
	if cfg.Recommend.Limit != 8 || !cfg.Recommend.SeedDemoData {
		t.Errorf("recommend = %+v, want file overrides", cfg.Recommend)
	}
	// Untouched sections keep their defaults.
	if cfg.Server.Host != "0.0.0.0" || cfg.Database.Path != "/data/crs.duckdb" {
		t.Errorf("defaults lost: host %q, database %q", cfg.Server.Host, cfg.Database.Path)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("CRS_SERVER_PORT", "9191")
	t.Setenv("CRS_DATABASE_PATH", ":memory:")
	t.Setenv("CRS_DATABASE_MAX_MEMORY", "1GB")
	t.Setenv("CRS_LOGGING_LEVEL", "debug")
	t.Setenv("CRS_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d, want 9191 from environment", cfg.Server.Port)
	}
	if cfg.Database.Path != ":memory:" || cfg.Database.MaxMemory != "1GB" {
		t.Errorf("database = %+v, want environment overrides", cfg.Database)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug from environment", cfg.Logging.Level)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.CORSOrigins) != len(want) {
		t.Fatalf("cors origins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSOrigins[i] != want[i] {
			t.Errorf("cors origins = %v, want comma-split %v", cfg.Server.CORSOrigins, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"zero recommendation limit", func(c *Config) { c.Recommend.Limit = 0 }, true},
		{"negative weight", func(c *Config) { c.Recommend.RuleWeight = -0.1 }, true},
		{"missing database path", func(c *Config) { c.Database.Path = "" }, true},
		{"negative rate limit", func(c *Config) { c.Server.RateLimitReqs = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"CRS_SERVER_PORT", "server.port"},
		{"CRS_SERVER_RATE_LIMIT_REQS", "server.rate_limit_reqs"},
		{"CRS_DATABASE_MAX_MEMORY", "database.max_memory"},
		{"CRS_LOGGING_LEVEL", "logging.level"},
		{"CRS_NLP_MODEL_PATH", "nlp.model_path"},
		{"CRS_RECOMMEND_ANONYMOUS_RULE_WEIGHT", "recommend.anonymous_rule_weight"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransform(tt.key); got != tt.want {
				t.Errorf("envTransform(%s) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestEngineConfigConversion(t *testing.T) {
	section := RecommendConfig{
		Limit:                  7,
		RuleWeight:             0.2,
		CollaborativeWeight:    0.5,
		ContentWeight:          0.3,
		AnonymousRuleWeight:    0.7,
		AnonymousContentWeight: 0.3,
	}

	engine := section.EngineConfig()
	if engine.DefaultLimit != 7 {
		t.Errorf("default limit = %d, want 7", engine.DefaultLimit)
	}
	if engine.Weights.Rule != 0.2 || engine.Weights.Collaborative != 0.5 || engine.Weights.Content != 0.3 {
		t.Errorf("weights = %+v", engine.Weights)
	}
	if engine.AnonymousWeights.Rule != 0.7 || engine.AnonymousWeights.Content != 0.3 ||
		engine.AnonymousWeights.Collaborative != 0 {
		t.Errorf("anonymous weights = %+v", engine.AnonymousWeights)
	}
}
