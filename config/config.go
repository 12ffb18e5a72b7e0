// Package config loads tool configuration with viper: a .libadmin.yml file,
// LIBADMIN_-prefixed environment variables, and flags bound by the cmd
// package, in that order of increasing priority. The theme preference is
// the only setting the tool ever writes back.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Theme values accepted by the renderer.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config is the resolved tool configuration.
type Config struct {
	API   APIConfig `mapstructure:"api"`
	Theme string    `mapstructure:"theme"`
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

// RequestTimeout returns the configured timeout as a duration.
func (a APIConfig) RequestTimeout() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// Init points viper at the config sources. An explicit file wins; otherwise
// .libadmin.yml is searched in the working directory and the home
// directory. A missing file is fine, defaults apply.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".libadmin")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("LIBADMIN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("api.base_url", "http://localhost:3000/api")
	viper.SetDefault("api.timeout", 15)
	viper.SetDefault("theme", ThemeLight)

	_ = viper.ReadInConfig()
}

// Load materializes the resolved configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Theme != ThemeLight && cfg.Theme != ThemeDark {
		return nil, fmt.Errorf("invalid theme %q: want %q or %q", cfg.Theme, ThemeLight, ThemeDark)
	}
	return &cfg, nil
}

// SaveTheme persists the theme preference, the single piece of state that
// survives across runs. It is the only writer of the config file.
func SaveTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("invalid theme %q: want %q or %q", theme, ThemeLight, ThemeDark)
	}
	viper.Set("theme", theme)
	if viper.ConfigFileUsed() == "" {
		// First run: no config file exists yet, create one in the home dir.
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		return viper.WriteConfigAs(filepath.Join(home, ".libadmin.yml"))
	}
	return viper.WriteConfig()
}
