// Package file loads and persists application configuration as a TOML file
// under the askitty config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultDirName is the config directory under the user's home.
const DefaultDirName = ".askitty"

// configFileName is the file inside the config directory.
const configFileName = "config.toml"

// Config is the full application configuration.
type Config struct {
	Storage   StorageConfig  `toml:"storage"`
	Embedding ProviderConfig `toml:"embedding"`
	LLM       ProviderConfig `toml:"llm"`
	Chunking  ChunkingConfig `toml:"chunking"`
	Query     QueryConfig    `toml:"query"`
	Server    ServerConfig   `toml:"server"`
}

// StorageConfig locates the chunk database and the document drop directory.
type StorageConfig struct {
	// DataDir holds the chunk database (default: <configdir>/data).
	DataDir string `toml:"data_dir"`

	// ObjectsDir is the directory served as the object store
	// (default: <configdir>/objects).
	ObjectsDir string `toml:"objects_dir"`
}

// ProviderConfig selects and configures a model backend.
type ProviderConfig struct {
	// Provider is "ollama" or "openai"; the LLM additionally
	// accepts "anthropic".
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates hosted providers. Ignored by Ollama.
	APIKey string `toml:"api_key"`

	// RequestsPerSecond throttles requests during bulk work. Zero means
	// the built-in default; only the embedding provider uses it.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// ChunkingConfig tunes the ingestion window.
type ChunkingConfig struct {
	MaxChars int `toml:"max_chars"`
	Overlap  int `toml:"overlap"`
}

// QueryConfig tunes retrieval.
type QueryConfig struct {
	// TopK caps the passages fed to the model.
	TopK int `toml:"top_k"`

	// ScanCeiling bounds the corpus scan per query.
	ScanCeiling int `toml:"scan_ceiling"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default: :8080).
	Addr string `toml:"addr"`
}

// Store reads and writes the configuration file.
type Store struct {
	dir  string
	path string
}

// NewStore creates a store over configDir, creating the directory if needed.
// An empty configDir defaults to ~/.askitty.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, DefaultDirName)
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	return &Store{
		dir:  configDir,
		path: filepath.Join(configDir, configFileName),
	}, nil
}

// Dir returns the config directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration, applying defaults for unset fields. A
// missing file yields the defaults without error.
func (s *Store) Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", s.path, err)
	}

	s.applyDefaults(cfg)
	return cfg, nil
}

// Save persists the configuration with restricted permissions; it may hold
// API keys.
func (s *Store) Save(cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (s *Store) applyDefaults(cfg *Config) {
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = filepath.Join(s.dir, "data")
	}
	if cfg.Storage.ObjectsDir == "" {
		cfg.Storage.ObjectsDir = filepath.Join(s.dir, "objects")
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "ollama"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}
