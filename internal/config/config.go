// Package config provides configuration management for brandmatch.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	// DefaultWorkerPort is the default HTTP port for the worker service.
	DefaultWorkerPort = 38585

	// DefaultStyleLimit is the default number of scored styles returned.
	DefaultStyleLimit = 8

	// DefaultVideoLimit is the default number of video references returned.
	DefaultVideoLimit = 6
)

// Config holds the application configuration.
type Config struct {
	// Worker settings
	WorkerPort int `json:"worker_port"`

	// Database settings. PostgresDSN selects the postgres backend when set,
	// otherwise the embedded sqlite store at DBPath is used.
	PostgresDSN string `json:"postgres_dsn"`
	DBPath      string `json:"db_path"`
	MaxConns    int    `json:"max_conns"`

	// Taxonomy settings
	TaxonomyPath  string `json:"taxonomy_path"`
	WatchTaxonomy bool   `json:"watch_taxonomy"`

	// Recommendation settings
	StyleLimit int `json:"style_limit"`
	VideoLimit int `json:"video_limit"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// DataDir returns the data directory path (~/.brandmatch).
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".brandmatch")
}

// DBPath returns the database file path.
func DBPath() string {
	return filepath.Join(DataDir(), "brandmatch.db")
}

// SettingsPath returns the settings file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), "settings.json")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0750)
}

// EnsureSettings creates a default settings file if it doesn't exist.
func EnsureSettings() error {
	path := SettingsPath()

	if _, err := os.Stat(path); err == nil {
		return nil // File exists
	}

	defaultSettings := `{
  "BRANDMATCH_WORKER_PORT": 38585,
  "BRANDMATCH_STYLE_LIMIT": 8,
  "BRANDMATCH_VIDEO_LIMIT": 6
}
`
	return os.WriteFile(path, []byte(defaultSettings), 0600)
}

// EnsureAll ensures all required directories and files exist.
func EnsureAll() error {
	if err := EnsureDataDir(); err != nil {
		return err
	}
	if err := EnsureSettings(); err != nil {
		return err
	}
	return nil
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		WorkerPort: DefaultWorkerPort,
		DBPath:     DBPath(),
		MaxConns:   4,
		StyleLimit: DefaultStyleLimit,
		VideoLimit: DefaultVideoLimit,
	}
}

// Load loads configuration from the settings file, merging with defaults.
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// Load settings into a map to preserve unknown fields
	var settings map[string]interface{}
	if err := json.Unmarshal(data, &settings); err != nil {
		return cfg, nil // Return defaults on parse error
	}

	if v, ok := settings["BRANDMATCH_WORKER_PORT"].(float64); ok && v > 0 {
		cfg.WorkerPort = int(v)
	}
	if v, ok := settings["BRANDMATCH_POSTGRES_DSN"].(string); ok {
		cfg.PostgresDSN = v
	}
	if v, ok := settings["BRANDMATCH_DB_PATH"].(string); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := settings["BRANDMATCH_MAX_CONNS"].(float64); ok && v > 0 {
		cfg.MaxConns = int(v)
	}
	if v, ok := settings["BRANDMATCH_TAXONOMY_PATH"].(string); ok {
		cfg.TaxonomyPath = v
	}
	if v, ok := settings["BRANDMATCH_WATCH_TAXONOMY"].(bool); ok {
		cfg.WatchTaxonomy = v
	}
	if v, ok := settings["BRANDMATCH_STYLE_LIMIT"].(float64); ok && v > 0 {
		cfg.StyleLimit = int(v)
	}
	if v, ok := settings["BRANDMATCH_VIDEO_LIMIT"].(float64); ok && v > 0 {
		cfg.VideoLimit = int(v)
	}

	// Environment overrides settings for deployment targets.
	if dsn := os.Getenv("BRANDMATCH_POSTGRES_DSN"); dsn != "" {
		cfg.PostgresDSN = dsn
	}

	return cfg, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configOnce.Do(func() {
		var err error
		globalConfig, err = Load()
		if err != nil {
			globalConfig = Default()
		}
	})

	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}

// GetWorkerPort returns the worker port from environment or config.
func GetWorkerPort() int {
	if port := os.Getenv("BRANDMATCH_WORKER_PORT"); port != "" {
		var p int
		if err := json.Unmarshal([]byte(port), &p); err == nil && p > 0 {
			return p
		}
	}
	return Get().WorkerPort
}
