package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
	Server  ServerConfig  `mapstructure:"server"`
}

// APIConfig points the editor at the catalog backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig locates the signed-in vendor file.
type SessionConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the zap logger. An empty Path disables file logging.
type LogConfig struct {
	Path       string `mapstructure:"path"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ConfirmDelete bool          `mapstructure:"confirm_delete"`
	NoticeTimeout time.Duration `mapstructure:"notice_timeout"`
}

// ServerConfig is used by the development backend only.
type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	DatabasePath string `mapstructure:"database_path"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// CATALOGEDIT_. An explicit path wins over CATALOGEDIT_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "catalogedit")
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("session.path", filepath.Join(os.Getenv("HOME"), ".config", "catalogedit", "session.json"))
	v.SetDefault("log.path", filepath.Join(dataDir, "catalogedit.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 16)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("ui.confirm_delete", true)
	v.SetDefault("ui.notice_timeout", 3*time.Second)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.database_path", filepath.Join(dataDir, "catalog.db"))

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("CATALOGEDIT_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "catalogedit"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CATALOGEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		return Config{}, fmt.Errorf("api.base_url must not be empty")
	}
	return c, nil
}
