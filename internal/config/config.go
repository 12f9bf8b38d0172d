// Package config loads service configuration from an optional yaml file with
// VCS_-prefixed environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Session  SessionConfig  `mapstructure:"session"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Env   string `mapstructure:"env"`
}

type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load reads configuration from the given path (or the working directory
// when empty). A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", "vcs_tracking.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.env", "development")
	v.SetDefault("auth.secret", "vcs-dev-secret")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("session.ttl", 30*time.Minute)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("VCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
