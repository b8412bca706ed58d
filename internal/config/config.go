// Package config loads the snipdex configuration from YAML files by
// environment name, with ${VAR} expansion, defaults, and validation.
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

// Vectorizer strategy names.
const (
	StrategyTFIDF  = "tfidf"
	StrategyOpenAI = "openai"
)

// Config holds the snipdex configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Vectorizer VectorizerConfig `yaml:"vectorizer"`
	Cache      CacheConfig      `yaml:"cache"`
	Query      QueryConfig      `yaml:"query"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CorpusConfig holds corpus source settings.
type CorpusConfig struct {
	Path           string `yaml:"path"`
	CollectionName string `yaml:"collection_name"`
}

// VectorizerConfig holds vectorization strategy settings. The sparse and
// dense strategies are mutually exclusive; Strategy selects one.
type VectorizerConfig struct {
	Strategy   string `yaml:"strategy"` // tfidf (default), openai
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// CacheConfig holds embedding cache settings (dense strategy only).
type CacheConfig struct {
	Enabled             bool     `yaml:"enabled"`
	Addrs               []string `yaml:"addrs"`
	Password            string   `yaml:"password"`
	TTLHours            int      `yaml:"ttl_hours"`
	ReadinessTimeoutSec int      `yaml:"readiness_timeout_sec"`
}

// QueryConfig holds query bounds enforced at the transport boundary.
type QueryConfig struct {
	DefaultResults int `yaml:"default_results"`
	MaxResults     int `yaml:"max_results"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
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

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Corpus.Path == "" {
		c.Corpus.Path = filepath.Join("data", "snippets.json")
	}
	if c.Corpus.CollectionName == "" {
		c.Corpus.CollectionName = "tech_snippets"
	}
	if c.Vectorizer.Strategy == "" {
		c.Vectorizer.Strategy = StrategyTFIDF
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 7 * 24
	}
	if c.Cache.ReadinessTimeoutSec <= 0 {
		c.Cache.ReadinessTimeoutSec = 10
	}
	if c.Query.DefaultResults <= 0 {
		c.Query.DefaultResults = 3
	}
	if c.Query.MaxResults <= 0 {
		c.Query.MaxResults = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Vectorizer.Strategy {
	case StrategyTFIDF:
		// no further settings
	case StrategyOpenAI:
		if c.Vectorizer.Model == "" {
			return fmt.Errorf("vectorizer.model is required for the openai strategy")
		}
		if c.Vectorizer.Dimensions <= 0 {
			return fmt.Errorf("vectorizer.dimensions must be positive for the openai strategy, got %d",
				c.Vectorizer.Dimensions)
		}
	default:
		return fmt.Errorf("vectorizer.strategy must be %q or %q, got %q",
			StrategyTFIDF, StrategyOpenAI, c.Vectorizer.Strategy)
	}
	if c.Cache.Enabled {
		if c.Vectorizer.Strategy != StrategyOpenAI {
			return fmt.Errorf("cache.enabled requires the openai strategy")
		}
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required when cache is enabled")
		}
	}
	if c.Query.DefaultResults > c.Query.MaxResults {
		return fmt.Errorf("query.default_results (%d) exceeds query.max_results (%d)",
			c.Query.DefaultResults, c.Query.MaxResults)
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
