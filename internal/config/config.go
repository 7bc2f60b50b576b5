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

// Config holds the Genesis Data Manager configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Vault     VaultConfig     `yaml:"vault"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Dedup     DedupConfig     `yaml:"dedup"`
	Upload    UploadConfig    `yaml:"upload"`
	Store     StoreConfig     `yaml:"vector_store"`
	Auth      AuthConfig      `yaml:"auth"`
	CORS      CORSConfig      `yaml:"cors"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// CORSConfig holds cross-origin settings for the browser UI.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"` // empty = allow all
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// VaultConfig holds the local data directory for the encrypted vault.
type VaultConfig struct {
	Dir string `yaml:"dir"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"` // 0 = provider default, no dimension check
	TimeoutSec  int    `yaml:"timeout_sec"`
	Concurrency int    `yaml:"concurrency"` // parallel chunk embeds per upload
	Cache       bool   `yaml:"cache"`
}

// DedupConfig holds the near-duplicate detection tunables.
type DedupConfig struct {
	Threshold   float64 `yaml:"threshold"` // similarity at or over this rejects the upload
	Metric      string  `yaml:"metric"`
	VectorField string  `yaml:"vector_field"`
	TopK        int     `yaml:"top_k"`
	NProbe      int     `yaml:"nprobe"`
}

// UploadConfig holds upload and chunking settings.
type UploadConfig struct {
	MaxFileBytes      int64 `yaml:"max_file_bytes"`
	ChunkWords        int   `yaml:"chunk_words"`
	ChunkOverlapWords int   `yaml:"chunk_overlap_words"`
}

// StoreConfig holds vector store client settings.
type StoreConfig struct {
	TimeoutSec int `yaml:"timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, docker, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
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

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
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
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 60
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Uploads embed every chunk before responding.
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Vault.Dir == "" {
		c.Vault.Dir = "data"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "sentence-transformers/all-MiniLM-L6-v2"
	}
	if c.Embedding.Dimensions < 0 {
		c.Embedding.Dimensions = 0
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 30
	}
	if c.Embedding.Concurrency <= 0 {
		c.Embedding.Concurrency = 4
	}
	if c.Dedup.Threshold <= 0 {
		c.Dedup.Threshold = 0.98
	}
	if c.Dedup.Metric == "" {
		c.Dedup.Metric = "COSINE"
	}
	if c.Dedup.VectorField == "" {
		c.Dedup.VectorField = "embedding"
	}
	if c.Dedup.TopK <= 0 {
		c.Dedup.TopK = 1
	}
	if c.Dedup.NProbe <= 0 {
		c.Dedup.NProbe = 10
	}
	if c.Upload.MaxFileBytes <= 0 {
		c.Upload.MaxFileBytes = 25 << 20
	}
	if c.Upload.ChunkWords <= 0 {
		c.Upload.ChunkWords = 750
	}
	if c.Upload.ChunkOverlapWords <= 0 {
		c.Upload.ChunkOverlapWords = 150
	}
	if c.Store.TimeoutSec <= 0 {
		c.Store.TimeoutSec = 30
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Embedding.BaseURL == "" {
		return fmt.Errorf("embedding.base_url is required")
	}
	if c.Dedup.Threshold > 1 {
		return fmt.Errorf("dedup.threshold must not exceed 1, got %v", c.Dedup.Threshold)
	}
	switch c.Dedup.Metric {
	case "COSINE", "IP", "L2":
		// ok
	default:
		return fmt.Errorf("dedup.metric must be COSINE, IP or L2, got %q", c.Dedup.Metric)
	}
	if c.Upload.ChunkOverlapWords >= c.Upload.ChunkWords {
		return fmt.Errorf(
			"upload.chunk_overlap_words must be less than upload.chunk_words, got %d >= %d",
			c.Upload.ChunkOverlapWords, c.Upload.ChunkWords,
		)
	}
	return nil
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

	// 3. Fallback to ./config/
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
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
