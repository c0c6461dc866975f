package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "configs/config.yaml"

// LoadConfig decodes the YAML file over Default(), applies environment
// overrides and validates the result. A missing file at DefaultConfigPath is
// not an error: the defaults are used.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(filePath)
	switch {
	case err == nil:
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				log.Printf("Warning: failed to close config file: %v", closeErr)
			}
		}()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && filePath == DefaultConfigPath:
		filePath = ""
	default:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	if cfg.SelectorsFile != "" {
		selectors, err := LoadSelectors(resolveSelectorsPath(filePath, cfg.SelectorsFile))
		if err != nil {
			return nil, err
		}
		cfg.Selectors = *selectors
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("config env override error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides selected fields from the environment.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("EKANTIPUR_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("EKANTIPUR_HEADLESS: %w", err)
		}
		c.Rod.Headless = headless
	}
	if v := os.Getenv("EKANTIPUR_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("EKANTIPUR_DRIVER"); v != "" {
		c.Driver = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Observability.LogLevel = v
	}
	if v := os.Getenv("MSSQL_DSN"); v != "" {
		c.Storage.DSN = v
	}
	return nil
}
