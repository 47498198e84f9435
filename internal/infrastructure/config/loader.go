package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/ask-go/assets"
	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/pkg/filesystem"
	"github.com/doeshing/ask-go/internal/ports"
)

// FileStore loads and saves YAML configuration at ~/.ask/config.yaml
// (overridable via ASK_CONFIG).
type FileStore struct {
	overridePath string
}

// NewFileStore builds a store. An empty path defers resolution to the
// ASK_CONFIG environment variable and then the home directory default.
func NewFileStore(path string) *FileStore {
	return &FileStore{overridePath: path}
}

// Load implements ports.ConfigStore. A missing file hydrates the embedded
// defaults and writes them so later saves have a resolved location. Values
// present in the file override defaults field by field.
func (s *FileStore) Load(context.Context) (domain.Config, error) {
	path := s.Path()
	if err := filesystem.EnsureDir(filepath.Dir(path)); err != nil {
		return domain.Config{}, fmt.Errorf("create config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := s.Save(cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration with owner-only permissions. The file
// holds the API key.
func (s *FileStore) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := s.Path()
	if err := filesystem.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Delete removes the configuration file. A fs.ErrNotExist passes through
// so callers can report that nothing was configured.
func (s *FileStore) Delete() error {
	return os.Remove(s.Path())
}

// Path returns the resolved configuration file location.
func (s *FileStore) Path() string {
	if s.overridePath != "" {
		return s.overridePath
	}
	if custom := os.Getenv("ASK_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".ask", "config.yaml")
}

func defaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		cfg = domain.Config{}
	}
	cfg.Normalize()
	return cfg
}

var _ ports.ConfigStore = (*FileStore)(nil)
