package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Embedding backends.
const (
	BackendCLIP  = "clip"
	BackendLocal = "local"
)

// Config holds the mediasense API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Completion CompletionConfig `yaml:"completion"`
	Classify   ClassifyConfig   `yaml:"classify"`
	Index      IndexConfig      `yaml:"index"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	ReadTimeoutSec   int      `yaml:"read_timeout_sec"`
}

// IndexConfig holds HNSW settings of the media vector index.
type IndexConfig struct {
	HNSWM           int `yaml:"hnsw_m"`
	HNSWEFConstruct int `yaml:"hnsw_ef_construction"`
}

// EmbeddingConfig selects and tunes the embedding backend.
type EmbeddingConfig struct {
	Backend        string      `yaml:"backend"` // clip, local
	BaseURL        string      `yaml:"base_url"`
	Model          string      `yaml:"model"`
	Dimensions     int         `yaml:"dimensions"`
	TimeoutSec     int         `yaml:"timeout_sec"`
	MaxConcurrency int         `yaml:"max_concurrency"` // 0 = unbounded
	DownloadSec    int         `yaml:"download_timeout_sec"`
	Cache          CacheConfig `yaml:"cache"`
}

// CacheConfig holds the text embedding cache settings.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	TTLSec  int  `yaml:"ttl_sec"` // 0 = no expiry
}

// CompletionConfig holds language model settings.
type CompletionConfig struct {
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	DefaultModel string `yaml:"default_model"`
	MaxTokens    int    `yaml:"max_tokens"`
	TimeoutSec   int    `yaml:"timeout_sec"`
}

// ClassifyConfig holds label classification defaults.
type ClassifyConfig struct {
	Labels        []string `yaml:"labels"`
	DefaultMetric string   `yaml:"default_metric"`
	TopK          int      `yaml:"top_k"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML with ${VAR} expansion, then applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 30
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 90 // completions may take up to 60s
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.ReadTimeoutSec <= 0 {
		c.Database.ReadTimeoutSec = 10
	}
	if c.Index.HNSWM <= 0 {
		c.Index.HNSWM = 16
	}
	if c.Index.HNSWEFConstruct <= 0 {
		c.Index.HNSWEFConstruct = 200
	}
	if c.Embedding.Backend == "" {
		c.Embedding.Backend = BackendLocal
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 512
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 30
	}
	if c.Embedding.DownloadSec <= 0 {
		c.Embedding.DownloadSec = 10
	}
	if c.Completion.DefaultModel == "" {
		c.Completion.DefaultModel = "gpt-4"
	}
	if c.Completion.MaxTokens <= 0 {
		c.Completion.MaxTokens = 2000
	}
	if c.Completion.TimeoutSec <= 0 {
		c.Completion.TimeoutSec = 60
	}
	if c.Classify.DefaultMetric == "" {
		c.Classify.DefaultMetric = "euclidean"
	}
	if c.Classify.TopK <= 0 {
		c.Classify.TopK = 5
	}
	if len(c.Classify.Labels) == 1 && strings.Contains(c.Classify.Labels[0], ",") {
		c.Classify.Labels = splitLabels(c.Classify.Labels[0])
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.Driver != "redis" {
		return fmt.Errorf("database.driver must be \"redis\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	switch c.Embedding.Backend {
	case BackendLocal:
	case BackendCLIP:
		if c.Embedding.BaseURL == "" {
			return fmt.Errorf("embedding.base_url is required for the clip backend")
		}
	default:
		return fmt.Errorf("embedding.backend must be \"clip\" or \"local\", got %q", c.Embedding.Backend)
	}
	if c.Embedding.MaxConcurrency < 0 {
		return fmt.Errorf("embedding.max_concurrency must be >= 0, got %d", c.Embedding.MaxConcurrency)
	}
	switch c.Classify.DefaultMetric {
	case "cosine", "euclidean":
	default:
		return fmt.Errorf(
			"classify.default_metric must be \"cosine\" or \"euclidean\", got %q",
			c.Classify.DefaultMetric,
		)
	}
	return nil
}

// splitLabels turns a CLASSIFY_LABELS style comma list into labels.
func splitLabels(s string) []string {
	var out []string
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
