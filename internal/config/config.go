// Package config handles repository layout and configuration.
//
// A bibxml repository is any directory containing a .bibxml/ directory:
// dataset JSONL files live under the datasets directory, and the derived
// SQLite index under .bibxml/cache/.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the repository configuration stored in .bibxml/config.yaml.
type Config struct {
	DatasetsDir string `yaml:"datasets_dir,omitempty"` // Relative to repo root; defaults to "datasets"
	FetchBase   string `yaml:"fetch_base,omitempty"`   // Base URL for `bibxml fetch <dataset>`
}

const (
	BibxmlDir  = ".bibxml"
	ConfigFile = "config.yaml"
	CacheDir   = "cache"
	DBFile     = "refs.db"

	// DefaultDatasetsDir is used when config.yaml does not set one.
	DefaultDatasetsDir = "datasets"
)

// BibxmlPath returns the path to the .bibxml directory from a root path.
func BibxmlPath(root string) string {
	return filepath.Join(root, BibxmlDir)
}

// ConfigPath returns the path to config.yaml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, BibxmlDir, ConfigFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, BibxmlDir, CacheDir)
}

// DBPath returns the path to the index database from a root path.
func DBPath(root string) string {
	return filepath.Join(root, BibxmlDir, CacheDir, DBFile)
}

// DatasetsPath returns the datasets directory for a repository.
func (c *Config) DatasetsPath(root string) string {
	dir := c.DatasetsDir
	if dir == "" {
		dir = DefaultDatasetsDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// DatasetPath returns the JSONL file path for a named dataset.
func (c *Config) DatasetPath(root, name string) string {
	return filepath.Join(c.DatasetsPath(root), name+".jsonl")
}

// IsRepository checks if the given path contains a bibxml repository.
func IsRepository(root string) bool {
	info, err := os.Stat(BibxmlPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a bibxml
// repository. Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a bibxml repository (no .bibxml directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root. A
// missing config file yields defaults.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
