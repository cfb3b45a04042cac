package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the name of the config file read from the user's home
// directory when --config is not given.
const DefaultConfigName = ".diylisp.yaml"

// Config holds the settings that may be given in a config file.  Command line
// flags take precedence over the file.
type Config struct {
	Prompt      string `yaml:"prompt"`
	Stdlib      string `yaml:"stdlib"`
	NoStdlib    bool   `yaml:"no_stdlib"`
	MaxStack    int    `yaml:"max_stack"`
	Trace       bool   `yaml:"trace"`
	HistoryFile string `yaml:"history_file"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Prompt: "diylisp> ",
	}
}

// ReadConfig decodes YAML from r on top of the default settings.  Unknown
// keys are an error.
func ReadConfig(r io.Reader) (*Config, error) {
	config := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(config)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if config.MaxStack < 0 {
		return nil, fmt.Errorf("max_stack must not be negative: %d", config.MaxStack)
	}
	return config, nil
}

// LoadConfig reads the config file at path.  When path is empty the default
// file in the user's home directory is used if it exists.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, DefaultConfigName)
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	config, err := ReadConfig(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}
