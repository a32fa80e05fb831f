package check

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/mzstk"
	"github.com/gnoswap-labs/mzstk/parser"
)

// DefaultConfigPath is the configuration file looked up by the CLI.
const DefaultConfigPath = ".mzstk.yaml"

// Config represents the translator configuration.
type Config struct {
	Name        string   `yaml:"name" toml:"name"`
	Extension   string   `yaml:"extension" toml:"extension"`
	MaxDepth    int      `yaml:"max_depth" toml:"max_depth"`
	IgnorePaths []string `yaml:"ignore_paths,omitempty" toml:"ignore_paths"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Name:      "mzstk",
		Extension: mzstk.DefaultExtension,
		MaxDepth:  parser.DefaultMaxDepth,
	}
}

// Validate reports configuration values the translator cannot use.
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if len(c.Extension) < 2 || c.Extension[0] != '.' {
		return fmt.Errorf("extension must start with '.', got %q", c.Extension)
	}
	return nil
}

// LoadConfig reads the YAML or TOML configuration at configurationPath,
// chosen by its extension. Unset fields keep their default values and a
// missing file yields DefaultConfig.
func LoadConfig(configurationPath string) (Config, error) {
	config := DefaultConfig()
	if configurationPath == "" {
		return config, nil
	}

	content, err := os.ReadFile(configurationPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}

	switch filepath.Ext(configurationPath) {
	case ".toml":
		if _, err := toml.Decode(string(content), &config); err != nil {
			return config, fmt.Errorf("error parsing %s: %w", configurationPath, err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return config, fmt.Errorf("error parsing %s: %w", configurationPath, err)
		}
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid configuration %s: %w", configurationPath, err)
	}
	return config, nil
}

// WriteConfig writes config as YAML to configurationPath.
func WriteConfig(configurationPath string, config Config) error {
	if configurationPath == "" {
		configurationPath = DefaultConfigPath
	}

	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
