package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	API     APIConfig     `yaml:"api" envconfig:"API"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// APIConfig contains FTS API client configuration
type APIConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL" default:"http://fts.unocha.org/api/v1/" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"30s" validate:"gt=0"`
}

// ExportConfig contains CSV export configuration
type ExportConfig struct {
	OutputDir string   `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"/tmp" validate:"required"`
	Countries []string `yaml:"countries" envconfig:"COUNTRIES" default:"COL,SSD,YEM,PAK" validate:"min=1,dive,required"`
	Workbook  bool     `yaml:"workbook" envconfig:"WORKBOOK" default:"false"`
	Schedule  string   `yaml:"schedule" envconfig:"SCHEDULE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/ftscli.log"`
}

// Load loads configuration from environment variables and an optional YAML file.
// Environment variables (prefix FTS) take precedence over file values.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FTS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileConfig, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileConfig, cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
// envconfig fills every field with defaults, so the file only wins where the
// environment left the default untouched and the file sets something else.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if fileConfig.API.BaseURL != "" && !isEnvSet("FTS_API_BASE_URL") {
		envConfig.API.BaseURL = fileConfig.API.BaseURL
	}
	if fileConfig.API.Timeout != 0 && !isEnvSet("FTS_API_TIMEOUT") {
		envConfig.API.Timeout = fileConfig.API.Timeout
	}
	if fileConfig.Export.OutputDir != "" && !isEnvSet("FTS_EXPORT_OUTPUT_DIR") {
		envConfig.Export.OutputDir = fileConfig.Export.OutputDir
	}
	if len(fileConfig.Export.Countries) > 0 && !isEnvSet("FTS_EXPORT_COUNTRIES") {
		envConfig.Export.Countries = fileConfig.Export.Countries
	}
	if fileConfig.Export.Workbook && !isEnvSet("FTS_EXPORT_WORKBOOK") {
		envConfig.Export.Workbook = fileConfig.Export.Workbook
	}
	if fileConfig.Export.Schedule != "" && !isEnvSet("FTS_EXPORT_SCHEDULE") {
		envConfig.Export.Schedule = fileConfig.Export.Schedule
	}
	if fileConfig.Logging.Level != "" && !isEnvSet("FTS_LOGGING_LEVEL") {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Output != "" && !isEnvSet("FTS_LOGGING_OUTPUT") {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && !isEnvSet("FTS_LOGGING_FILE_PATH") {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	return envConfig
}

func isEnvSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
