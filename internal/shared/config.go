package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	ErrorModeLegacy = "legacy"
	ErrorModeTyped  = "typed"
)

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	DataDir      string `yaml:"data_dir"`
	DataFile     string `yaml:"data_file"`
	Backend      string `yaml:"backend"`    // "file" | "sqlite" | "memory"
	DBPath       string `yaml:"db_path"`    // sqlite backend only
	ErrorMode    string `yaml:"error_mode"` // "legacy" (all 400) | "typed"
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// LoadServerConfig reads an optional YAML file, fills defaults and applies
// SHOPLIST_* environment overrides. A missing file is not an error.
func LoadServerConfig(path string) (*ServerConfig, error) {
	var c ServerConfig
	if path != "" {
		// #nosec G304 -- path comes from the -config flag
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	if c.DataFile == "" {
		c.DataFile = "shopping-list.json"
	}
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.ErrorMode == "" {
		c.ErrorMode = ErrorModeLegacy
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 2 << 20
	}

	// env vars take precedence over the file
	if v := os.Getenv("SHOPLIST_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("SHOPLIST_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("SHOPLIST_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("SHOPLIST_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SHOPLIST_ERROR_MODE"); v != "" {
		c.ErrorMode = v
	}
	if v := os.Getenv("SHOPLIST_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SHOPLIST_MAX_BODY_BYTES: %w", err)
		}
		c.MaxBodyBytes = n
	}

	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "shopping-list.db")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

func (c *ServerConfig) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("backend must be one of file, sqlite, memory, got %q", c.Backend)
	}
	switch c.ErrorMode {
	case ErrorModeLegacy, ErrorModeTyped:
	default:
		return fmt.Errorf("error_mode must be legacy or typed, got %q", c.ErrorMode)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// DataPath is the location of the JSON file used by the file backend.
func (c *ServerConfig) DataPath() string {
	return filepath.Join(c.DataDir, c.DataFile)
}

type ClientConfig struct {
	ServerURL      string `json:"server_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// LoadClientConfig falls back to defaults when the file does not exist.
// SHOPLIST_URL overrides server_url.
func LoadClientConfig(path string) (*ClientConfig, error) {
	var c ClientConfig
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}
	if v := os.Getenv("SHOPLIST_URL"); v != "" {
		c.ServerURL = v
	}
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:3000"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	return &c, nil
}

func SaveClientConfig(path string, c *ClientConfig) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}
