package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

const minimalConfig = `
store:
  backend: "local"
  path: "data/index.json"
embedding:
  provider: "google"
  model: "embedding-001"
  apiKey: "${TEST_API_KEY}"
generation:
  provider: "gemini"
  model: "gemini-1.5-flash"
`

func TestLoadConfigExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_API_KEY", "secret-key-value")

	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Embedding.APIKey != "secret-key-value" {
		t.Errorf("APIKey = %q, want expanded environment value", cfg.Embedding.APIKey)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Retrieval.TopK != DefaultTopK {
		t.Errorf("TopK = %d, want default %d", cfg.Retrieval.TopK, DefaultTopK)
	}
	if cfg.Generation.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want default %v", cfg.Generation.Temperature, DefaultTemperature)
	}
	if cfg.Generation.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want default %d", cfg.Generation.MaxTokens, DefaultMaxTokens)
	}
	if cfg.Generation.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want default %d", cfg.Generation.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want info", cfg.Logger.Level)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want :8080", cfg.Server.Address)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name: "local backend without path",
			content: `
store:
  backend: "local"
embedding:
  provider: "google"
  model: "embedding-001"
generation:
  provider: "gemini"
  model: "gemini-1.5-flash"
`,
		},
		{
			name: "milvus backend without address",
			content: `
store:
  backend: "milvus"
  milvus:
    collection: "chunks"
embedding:
  provider: "google"
  model: "embedding-001"
generation:
  provider: "gemini"
  model: "gemini-1.5-flash"
`,
		},
		{
			name: "unknown backend",
			content: `
store:
  backend: "postgres"
embedding:
  provider: "google"
  model: "embedding-001"
generation:
  provider: "gemini"
  model: "gemini-1.5-flash"
`,
		},
		{
			name: "missing embedding model",
			content: `
store:
  backend: "local"
  path: "data/index.json"
embedding:
  provider: "google"
generation:
  provider: "gemini"
  model: "gemini-1.5-flash"
`,
		},
		{
			name: "missing generation provider",
			content: `
store:
  backend: "local"
  path: "data/index.json"
embedding:
  provider: "google"
  model: "embedding-001"
generation:
  model: "gemini-1.5-flash"
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tc.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
