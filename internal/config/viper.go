// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Extractor struct {
		Endpoint        string `mapstructure:"endpoint" yaml:"endpoint"`
		TimeoutSeconds  int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		FallbackEnabled bool   `mapstructure:"fallback_enabled" yaml:"fallback_enabled"`
	} `mapstructure:"extractor" yaml:"extractor"`

	Fallback struct {
		Days int   `mapstructure:"days" yaml:"days"`
		Seed int64 `mapstructure:"seed" yaml:"seed"`
	} `mapstructure:"fallback" yaml:"fallback"`

	Categorization struct {
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"categorization" yaml:"categorization"`

	History struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		Limit     int    `mapstructure:"limit" yaml:"limit"`
	} `mapstructure:"history" yaml:"history"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config.yaml, then KSAVERS_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ksavers")
	v.AddConfigPath(".ksavers")
	v.AddConfigPath(".")

	v.SetEnvPrefix("KSAVERS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars on a broken config file.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("extractor.endpoint", "http://localhost:3000/pdf-parse")
	v.SetDefault("extractor.timeout_seconds", 30)
	v.SetDefault("extractor.fallback_enabled", true)

	v.SetDefault("fallback.days", 90)
	v.SetDefault("fallback.seed", 0)

	v.SetDefault("categorization.categories_file", "")

	v.SetDefault("history.directory", ".ksavers/history")
	v.SetDefault("history.limit", 10)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Extractor.TimeoutSeconds < 1 || config.Extractor.TimeoutSeconds > 300 {
		return fmt.Errorf("extractor.timeout_seconds must be between 1 and 300, got: %d", config.Extractor.TimeoutSeconds)
	}

	if config.Fallback.Days < 1 || config.Fallback.Days > 365 {
		return fmt.Errorf("fallback.days must be between 1 and 365, got: %d", config.Fallback.Days)
	}

	if config.History.Limit < 1 {
		return fmt.Errorf("history.limit must be at least 1, got: %d", config.History.Limit)
	}

	return nil
}
