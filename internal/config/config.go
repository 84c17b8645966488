package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Export   ExportConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ExportConfig holds document export settings.
type ExportConfig struct {
	Dir string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Background string
	DateFormat string
}

// Load reads configuration from file and env. Env var overrides use prefix MAVITKANBAN_.
func Load() (Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "mavitkanban", "mavitkanban.db"))
	v.SetDefault("export.dir", filepath.Join(home, "Downloads"))
	v.SetDefault("ui.background", "midnight")
	v.SetDefault("ui.date_format", "02 Jan")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MAVITKANBAN_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "mavitkanban"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MAVITKANBAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config
// directory if needed. Used by the TUI when the user changes
// preferences that belong in the config file rather than app state.
func Save(cfg Config) error {
	path := os.Getenv("MAVITKANBAN_CONFIG")
	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, ".config", "mavitkanban", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("ui.background", cfg.UI.Background)
	v.Set("ui.date_format", cfg.UI.DateFormat)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
