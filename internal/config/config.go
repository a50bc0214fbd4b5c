package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic application metadata.
type AppInfo struct {
	Name        string `yaml:"name"`        // Application name
	Environment string `yaml:"environment"` // Runtime environment (e.g. "development", "production")
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `yaml:"level"` // Log level ("debug", "info", "warn", "error")
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"` // Listen address (e.g. ":8080")
}

// MilvusConfig holds the connection settings for a Milvus-backed document store.
type MilvusConfig struct {
	Address    string `yaml:"address"`    // Milvus service address
	Collection string `yaml:"collection"` // Collection holding the indexed chunks
	Dim        int    `yaml:"dim"`        // Embedding dimension of the collection
}

// StoreConfig selects and configures the document store backend.
// The "local" backend opens a file-based index from Path; the "milvus"
// backend connects to a Milvus collection.
type StoreConfig struct {
	Backend string       `yaml:"backend"` // "local" or "milvus"
	Path    string       `yaml:"path"`    // Index file path for the local backend
	Milvus  MilvusConfig `yaml:"milvus"`
}

// EmbeddingConfig pins the embedding provider and model. The same provider
// and model must be used to build the store and to embed queries; mixing
// them silently degrades retrieval relevance.
type EmbeddingConfig struct {
	Provider string `yaml:"provider"` // "google", "openai" or "ollama"
	Model    string `yaml:"model"`    // Embedding model name
	APIKey   string `yaml:"apiKey"`   // API key, usually expanded from the environment
	Host     string `yaml:"host"`     // Ollama host, unused by hosted providers
}

// GenerationConfig configures the answer-generating language model.
type GenerationConfig struct {
	Provider       string  `yaml:"provider"`       // "openai", "gemini" or "ollama"
	Model          string  `yaml:"model"`          // Generation model name
	APIKey         string  `yaml:"apiKey"`         // API key, usually expanded from the environment
	Host           string  `yaml:"host"`           // Ollama host, unused by hosted providers
	Temperature    float32 `yaml:"temperature"`    // Sampling temperature, low for factual answers
	MaxTokens      int     `yaml:"maxTokens"`      // Output token bound
	TimeoutSeconds int     `yaml:"timeoutSeconds"` // Per-call generation timeout
}

// RetrievalConfig controls the similarity search.
type RetrievalConfig struct {
	TopK int `yaml:"topK"` // Number of chunks retrieved per question
}

// CacheConfig configures the optional Redis answer cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Address    string `yaml:"address"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App        AppInfo          `yaml:"app"`
	Logger     LoggerConfig     `yaml:"logger"`
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Cache      CacheConfig      `yaml:"cache"`
}

// Defaults applied when the configuration file leaves a value unset.
const (
	DefaultTopK           = 4
	DefaultTemperature    = 0.1
	DefaultMaxTokens      = 1000
	DefaultTimeoutSeconds = 30
	DefaultCacheTTL       = 300
)

// LoadConfig reads, expands and validates the configuration file at path.
// Occurrences of ${VAR} in the file are replaced with the value of the
// corresponding environment variable before parsing, so credentials never
// need to live in the file itself.
func LoadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "local"
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = DefaultTopK
	}
	if c.Generation.Temperature <= 0 {
		c.Generation.Temperature = DefaultTemperature
	}
	if c.Generation.MaxTokens <= 0 {
		c.Generation.MaxTokens = DefaultMaxTokens
	}
	if c.Generation.TimeoutSeconds <= 0 {
		c.Generation.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = DefaultCacheTTL
	}
}

// Validate checks the parts of the configuration that have no usable default.
func (c *AppConfig) Validate() error {
	switch c.Store.Backend {
	case "local":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the local backend")
		}
	case "milvus":
		if c.Store.Milvus.Address == "" {
			return fmt.Errorf("store.milvus.address is required for the milvus backend")
		}
		if c.Store.Milvus.Collection == "" {
			return fmt.Errorf("store.milvus.collection is required for the milvus backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", c.Store.Backend)
	}

	if c.Embedding.Provider == "" {
		return fmt.Errorf("embedding.provider is required")
	}
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required")
	}
	if c.Generation.Provider == "" {
		return fmt.Errorf("generation.provider is required")
	}
	if c.Generation.Model == "" {
		return fmt.Errorf("generation.model is required")
	}

	return nil
}
