package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// DefaultEntryPoint is the function the driver calls after loading a script.
const DefaultEntryPoint = "mew"

// Config holds the settings shared by the cookable tools.
type Config struct {
	Verbose    bool              `json:"verbose" yaml:"verbose"`
	Debug      bool              `json:"debug" yaml:"debug"`
	EntryPoint string            `json:"entry_point" yaml:"entry_point"`
	Seed       int64             `json:"seed" yaml:"seed"`
	Watch      bool              `json:"watch" yaml:"watch"`
	Libraries  map[string]string `json:"libraries,omitempty" yaml:"libraries,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		EntryPoint: DefaultEntryPoint,
		Libraries:  map[string]string{},
	}
}

// LoadConfig loads configuration from a .json, .yml or .yaml file. A
// missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yml", ".yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(config); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if config.EntryPoint == "" {
		config.EntryPoint = DefaultEntryPoint
	}
	return config, nil
}

// SaveConfig saves configuration to file, as YAML when the extension asks
// for it and JSON otherwise.
func (c *Config) SaveConfig(configPath string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yml", ".yaml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Constraints parses the per-library version constraints.
func (c *Config) Constraints() (map[string]*semver.Constraints, error) {
	out := make(map[string]*semver.Constraints, len(c.Libraries))
	for name, raw := range c.Libraries {
		constraint, err := semver.NewConstraint(raw)
		if err != nil {
			return nil, fmt.Errorf("library %s: invalid version constraint %q: %w", name, raw, err)
		}
		out[name] = constraint
	}
	return out, nil
}
