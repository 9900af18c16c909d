package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
// Input and output directories are deliberately absent: they are positional
// CLI arguments, never configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Ingestion IngestionConfig `yaml:"ingestion" envconfig:"INGESTION"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// IngestionConfig contains ingestion stage configuration
type IngestionConfig struct {
	// IncludeExcel also admits .xlsx workbooks with the same five-column
	// layout as the CSV inputs. Off by default.
	IncludeExcel bool `yaml:"include_excel" envconfig:"INCLUDE_EXCEL"`
}

// Load loads configuration from an optional YAML file and environment
// variables. Precedence, lowest to highest: built-in defaults, config file,
// environment (UAR_ prefix). Defaults live in Default rather than in
// envconfig default tags: those are re-applied on every Process call and
// would silently clobber file-loaded values.
func Load() (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("UAR", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration used when no file or
// environment overrides are present. It is the fallback the CLIs use when
// Load fails.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: "logs/merger.log",
		},
	}
}

// loadFromFile loads configuration from a YAML file over cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the config file location: UAR_CONFIG_PATH if
// set, otherwise config.yaml in the working directory.
func getConfigFilePath() string {
	if path := os.Getenv("UAR_CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}

// validate checks the configuration against the struct validation tags
func (c *Config) validate() error {
	v := validator.New()

	// Use YAML tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.Struct(c); err != nil {
		return err
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging file_path is required for output %q", c.Logging.Output)
	}

	return nil
}
