// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads the application configuration from YAML.
// Environment variables referenced by *_env keys are resolved at load
// time so secrets stay out of config files.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AIConfig configures the OpenAI-compatible language model endpoints.
type AIConfig struct {
	EmbeddingHost  string `yaml:"embedding_host"`
	ParserHost     string `yaml:"parser_host"`
	EmbeddingModel string `yaml:"embedding_model"`
	ParserModel    string `yaml:"parser_model"`
	TokenEnv       string `yaml:"token_env"`
}

// QdrantConfig contains connection details for the Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OCRConfig configures the recognition engines.
type OCRConfig struct {
	Languages           []string `yaml:"languages"`
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`
	SecondaryURL        string   `yaml:"secondary_url"`
}

// CacheConfig configures the on-disk embedding cache.
// TTLHours of zero keeps entries forever.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	TTLHours int    `yaml:"ttl_hours"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	AI     AIConfig     `yaml:"ai"`
	Qdrant QdrantConfig `yaml:"qdrant"`
	OCR    OCRConfig    `yaml:"ocr"`
	Cache  CacheConfig  `yaml:"cache"`
	TopK   int          `yaml:"top_k"`
}

// Token resolves the AI API token from the configured environment variable.
func (c *AIConfig) Token() string {
	if c.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.TokenEnv)
}

// APIKey resolves the Qdrant API key from the configured environment variable.
func (c *QdrantConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./querent.yaml first, then ~/.config/querent/config.yaml.
// If neither exists, it returns defaults without writing anything.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "querent.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	return defaultConfig(), "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "querent", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.AI.EmbeddingHost == "" {
		cfg.AI.EmbeddingHost = "http://localhost:11434"
	}
	if cfg.AI.ParserHost == "" {
		cfg.AI.ParserHost = cfg.AI.EmbeddingHost
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = "all-minilm"
	}
	if cfg.AI.ParserModel == "" {
		cfg.AI.ParserModel = "mistral-small-latest"
	}
	if cfg.AI.TokenEnv == "" {
		cfg.AI.TokenEnv = "QUERENT_AI_TOKEN"
	}
	if cfg.Qdrant.URL == "" {
		cfg.Qdrant.URL = "http://localhost:6333"
	}
	if cfg.Qdrant.APIKeyEnv == "" {
		cfg.Qdrant.APIKeyEnv = "QDRANT_API_KEY"
	}
	if cfg.Qdrant.Collection == "" {
		cfg.Qdrant.Collection = "client_profiles"
	}
	if cfg.Qdrant.TimeoutSecs == 0 {
		cfg.Qdrant.TimeoutSecs = 30
	}
	if len(cfg.OCR.Languages) == 0 {
		cfg.OCR.Languages = []string{"eng"}
	}
	if cfg.OCR.ConfidenceThreshold == 0 {
		cfg.OCR.ConfidenceThreshold = 60
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(".querent", "cache")
	}
	if cfg.TopK == 0 {
		cfg.TopK = 5
	}
}
