// Package config loads run configuration from the environment, an optional
// YAML file and command line overrides.
package config

import (
	"call-distributions/errors"
	"call-distributions/models"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable, e.g. CALLDIST_INPUT.
const EnvPrefix = "CALLDIST"

// Config is the complete run configuration.
type Config struct {
	Input     string        `yaml:"input" envconfig:"INPUT" default:"raw_police_data.csv" validate:"required"`
	OutputDir string        `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"." validate:"required"`
	Year      int           `yaml:"year" envconfig:"YEAR" validate:"omitempty,min=1000,max=9999"`
	Format    string        `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json csv"`
	Charts    bool          `yaml:"charts" envconfig:"CHARTS"`
	Workbook  bool          `yaml:"workbook" envconfig:"WORKBOOK"`
	Logging   LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Metrics   MetricsConfig `yaml:"metrics" envconfig:"METRICS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// MetricsConfig contains Prometheus exposition settings.
type MetricsConfig struct {
	Addr    string `yaml:"addr" envconfig:"ADDR"`
	PushURL string `yaml:"push_url" envconfig:"PUSH_URL" validate:"omitempty,url"`
	Wait    bool   `yaml:"wait" envconfig:"WAIT"`
}

// YearFilter returns the configured year filter.
func (c *Config) YearFilter() models.YearFilter {
	return models.YearFilter{Year: c.Year}
}

// Load reads configuration from environment variables, then fills anything
// still unset from the YAML file at path. A missing file is not an error.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			fileConfig, err := loadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileConfig, cfg)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks the configuration after all overrides have been applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				if fe.StructField() == "Year" {
					return fmt.Errorf("%w: %d (must be a 4-digit year or 0 for all)", errors.ErrInvalidYear, c.Year)
				}
			}
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays the file config onto the env config. Variables set in
// the environment always win.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if _, ok := os.LookupEnv(EnvPrefix + "_INPUT"); !ok && fileConfig.Input != "" {
		envConfig.Input = fileConfig.Input
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_OUTPUT_DIR"); !ok && fileConfig.OutputDir != "" {
		envConfig.OutputDir = fileConfig.OutputDir
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_YEAR"); !ok && fileConfig.Year != 0 {
		envConfig.Year = fileConfig.Year
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_FORMAT"); !ok && fileConfig.Format != "" {
		envConfig.Format = fileConfig.Format
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_CHARTS"); !ok && fileConfig.Charts {
		envConfig.Charts = true
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_WORKBOOK"); !ok && fileConfig.Workbook {
		envConfig.Workbook = true
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_LOGGING_LEVEL"); !ok && fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_LOGGING_FORMAT"); !ok && fileConfig.Logging.Format != "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_METRICS_ADDR"); !ok && fileConfig.Metrics.Addr != "" {
		envConfig.Metrics.Addr = fileConfig.Metrics.Addr
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_METRICS_PUSH_URL"); !ok && fileConfig.Metrics.PushURL != "" {
		envConfig.Metrics.PushURL = fileConfig.Metrics.PushURL
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_METRICS_WAIT"); !ok && fileConfig.Metrics.Wait {
		envConfig.Metrics.Wait = true
	}
	return envConfig
}
