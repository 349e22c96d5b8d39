package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds client settings.
type Config struct {
	ServerURL string        `mapstructure:"server_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoadConfig reads configuration from file, env and bound flags.
// Env var overrides use prefix NONBON_.
func LoadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("server_url", "http://localhost:5000")
	v.SetDefault("timeout", 10*time.Second)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("NONBON_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "nonbon"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("NONBON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ServerURL == "" {
		return Config{}, errors.New("server url is empty")
	}
	return c, nil
}
