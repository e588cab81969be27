package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fivetwenty-io/contentapi/internal/constants"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigPersister reads and writes the CLI config file. Only values stored
// in the file are persisted; flag and environment overrides never are.
type ConfigPersister struct {
	mutex sync.Mutex
	path  string
}

// NewConfigPersister creates a persister for the config file at path.
func NewConfigPersister(path string) *ConfigPersister {
	return &ConfigPersister{path: path}
}

// newDefaultConfigPersister uses the file viper loaded, or
// ~/.contentapi/config.yml when none was found.
func newDefaultConfigPersister() (*ConfigPersister, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	return NewConfigPersister(path), nil
}

func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".contentapi", "config.yml"), nil
}

// Path returns the config file location.
func (p *ConfigPersister) Path() string {
	return p.path
}

// Load reads the config file. A missing file yields an empty config.
func (p *ConfigPersister) Load() (*Config, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.load()
}

// Update loads the config, applies fn and writes the result back.
func (p *ConfigPersister) Update(fn func(*Config) error) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := p.load()
	if err != nil {
		return err
	}

	if err := fn(config); err != nil {
		return err
	}

	return p.save(config)
}

// Remove deletes the config file. Removing a missing file is not an error.
func (p *ConfigPersister) Remove() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	err := os.Remove(p.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	return nil
}

func (p *ConfigPersister) load() (*Config, error) {
	config := &Config{}

	// p.path comes from the --config flag or the user's home directory
	// #nosec G304
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func (p *ConfigPersister) save(config *Config) error {
	if err := os.MkdirAll(filepath.Dir(p.path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(p.path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
