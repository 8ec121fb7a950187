// Package config loads tool configuration from file, environment and
// defaults via viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	BaseURL string `mapstructure:"base_url"`
	Session string `mapstructure:"session"`
	Project string `mapstructure:"project"`
}

// Init reads sbcode.yaml from ~/.config/sbcode, the home directory or the
// working directory, applies SBCODE_* environment overrides and returns the
// result. A missing config file is not an error.
func Init() (Config, error) {
	v := viper.New()

	v.SetDefault("base_url", "https://scrapbox.io")
	v.SetDefault("session", "")
	v.SetDefault("project", "")

	v.SetConfigName("sbcode")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "sbcode"))
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("SBCODE")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	var cfg Config

	err := v.Unmarshal(&cfg)

	return cfg, err
}
