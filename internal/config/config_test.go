package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8000},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.Embedding.Backend != BackendLocal {
		t.Errorf("backend = %q", cfg.Embedding.Backend)
	}
	if cfg.Database.ReadTimeoutSec != 10 || cfg.Completion.TimeoutSec != 60 {
		t.Errorf("timeouts = %d/%d", cfg.Database.ReadTimeoutSec, cfg.Completion.TimeoutSec)
	}
	if cfg.Completion.MaxTokens != 2000 {
		t.Errorf("max tokens = %d", cfg.Completion.MaxTokens)
	}
	if cfg.Classify.DefaultMetric != "euclidean" || cfg.Classify.TopK != 5 {
		t.Errorf("classify = %+v", cfg.Classify)
	}
	if cfg.Embedding.Cache.Enabled {
		t.Error("cache must be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"no addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"valkey driver", func(c *Config) { c.Database.Driver = "valkey" }, "database.driver"},
		{"unknown backend", func(c *Config) { c.Embedding.Backend = "onnx" }, "embedding.backend"},
		{"clip without url", func(c *Config) { c.Embedding.Backend = BackendCLIP }, "embedding.base_url"},
		{"negative concurrency", func(c *Config) { c.Embedding.MaxConcurrency = -1 }, "max_concurrency"},
		{"unknown metric", func(c *Config) { c.Classify.DefaultMetric = "manhattan" }, "default_metric"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestParse_ExpandsEnvAndSplitsLabels(t *testing.T) {
	t.Setenv("MS_TEST_PORT", "9001")
	t.Setenv("MS_TEST_LABELS", "cat, dog ,,bird")

	cfg, err := Parse([]byte(`
http:
  port: ${MS_TEST_PORT}
database:
  addrs: ["${MS_TEST_REDIS:-localhost:6379}"]
embedding:
  backend: clip
  base_url: http://clip:8080
classify:
  labels:
    - ${MS_TEST_LABELS}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9001 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v", cfg.Database.Addrs)
	}
	want := []string{"cat", "dog", "bird"}
	if strings.Join(cfg.Classify.Labels, "|") != strings.Join(want, "|") {
		t.Errorf("labels = %v, want %v", cfg.Classify.Labels, want)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Embedding.MaxConcurrency != 1 {
		t.Errorf("max_concurrency = %d", cfg.Embedding.MaxConcurrency)
	}
	if len(cfg.Classify.Labels) < 2 {
		t.Errorf("labels = %v", cfg.Classify.Labels)
	}
}
