// Package config provides configuration management for brandmatch.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ConfigSuite tests defaults and settings-file merging.
type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	// Point the data dir at a throwaway home.
	s.T().Setenv("HOME", s.T().TempDir())
}

// TestDefault tests the default configuration values.
func (s *ConfigSuite) TestDefault() {
	cfg := Default()
	s.Equal(DefaultWorkerPort, cfg.WorkerPort)
	s.Equal(DefaultStyleLimit, cfg.StyleLimit)
	s.Equal(DefaultVideoLimit, cfg.VideoLimit)
	s.Equal(4, cfg.MaxConns)
	s.Empty(cfg.PostgresDSN)
	s.Contains(cfg.DBPath, ".brandmatch")
}

// TestLoadMissingFile tests that a missing settings file yields defaults.
func (s *ConfigSuite) TestLoadMissingFile() {
	cfg, err := Load()
	s.NoError(err)
	s.Equal(Default(), cfg)
}

// TestLoadMergesSettings tests settings-file overrides.
func (s *ConfigSuite) TestLoadMergesSettings() {
	s.Require().NoError(EnsureDataDir())
	settings := `{
  "BRANDMATCH_WORKER_PORT": 40000,
  "BRANDMATCH_TAXONOMY_PATH": "/etc/brandmatch/taxonomy.yaml",
  "BRANDMATCH_WATCH_TAXONOMY": true,
  "BRANDMATCH_STYLE_LIMIT": 12
}`
	s.Require().NoError(os.WriteFile(SettingsPath(), []byte(settings), 0600))

	cfg, err := Load()
	s.Require().NoError(err)
	s.Equal(40000, cfg.WorkerPort)
	s.Equal("/etc/brandmatch/taxonomy.yaml", cfg.TaxonomyPath)
	s.True(cfg.WatchTaxonomy)
	s.Equal(12, cfg.StyleLimit)
	// Untouched keys keep their defaults.
	s.Equal(DefaultVideoLimit, cfg.VideoLimit)
}

// TestLoadMalformedSettings tests that parse errors degrade to defaults.
func (s *ConfigSuite) TestLoadMalformedSettings() {
	s.Require().NoError(EnsureDataDir())
	s.Require().NoError(os.WriteFile(SettingsPath(), []byte("{broken"), 0600))

	cfg, err := Load()
	s.NoError(err)
	s.Equal(Default(), cfg)
}

// TestEnsureSettings tests the default settings file creation.
func (s *ConfigSuite) TestEnsureSettings() {
	s.Require().NoError(EnsureAll())
	s.FileExists(SettingsPath())
	s.DirExists(filepath.Dir(SettingsPath()))

	// Existing files are left alone.
	s.Require().NoError(os.WriteFile(SettingsPath(), []byte(`{"BRANDMATCH_WORKER_PORT": 1}`), 0600))
	s.Require().NoError(EnsureSettings())
	data, err := os.ReadFile(SettingsPath())
	s.Require().NoError(err)
	s.Contains(string(data), `"BRANDMATCH_WORKER_PORT": 1`)
}

// TestEnvOverridesDSN tests the environment override for the postgres DSN.
func (s *ConfigSuite) TestEnvOverridesDSN() {
	s.T().Setenv("BRANDMATCH_POSTGRES_DSN", "postgres://env")
	cfg, err := Load()
	s.Require().NoError(err)
	s.Equal("postgres://env", cfg.PostgresDSN)
}
