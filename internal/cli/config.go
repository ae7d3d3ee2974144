package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/evcraddock/nycviz/internal/soda"
)

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	APIURL     string `yaml:"api_url,omitempty"`
	AppToken   string `yaml:"app_token,omitempty"`
	ExportDir  string `yaml:"export_dir,omitempty"`
	DBPath     string `yaml:"db_path,omitempty"`
	SpeciesURL string `yaml:"species_url,omitempty"`
}

// Defaults used when neither the environment nor the config file sets a
// value.
const (
	defaultExportDir  = "export"
	defaultSpeciesURL = "http://localhost:5000"
)

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "nycviz", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// setting resolves a value from an env var, then the config file, then a
// default. An unreadable config file is logged and skipped.
func setting(env string, fromConfig func(CLIConfig) string, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err != nil {
		slog.Warn("ignoring config file", "error", err, "env", env)
		return def
	}
	if v := fromConfig(cfg); v != "" {
		return v
	}
	return def
}

// getAPIURL returns the tree census resource URL.
func getAPIURL() string {
	return setting("NYCVIZ_API_URL", func(c CLIConfig) string { return c.APIURL }, soda.DefaultTreesURL)
}

// getAppToken returns the optional Socrata app token.
func getAppToken() string {
	return setting("NYCVIZ_APP_TOKEN", func(c CLIConfig) string { return c.AppToken }, "")
}

// getExportDir returns where rendered images are written.
func getExportDir() string {
	return setting("NYCVIZ_EXPORT_DIR", func(c CLIConfig) string { return c.ExportDir }, defaultExportDir)
}

// getDBPath returns the configured database path, or "" for the default.
func getDBPath() string {
	return setting("NYCVIZ_DB", func(c CLIConfig) string { return c.DBPath }, "")
}

// getSpeciesURL returns the species API base URL used by lookups.
func getSpeciesURL() string {
	return setting("NYCVIZ_SPECIES_URL", func(c CLIConfig) string { return c.SpeciesURL }, defaultSpeciesURL)
}
