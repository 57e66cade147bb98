package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir string `mapstructure:"data_dir"`

	Pool struct {
		Size int `mapstructure:"size"`
	} `mapstructure:"pool"`
}

// Load reads the configuration from the yaml file at path, falling back to
// defaults and MINIDB_* environment variables. An empty path loads only
// defaults and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", "./data")
	v.SetDefault("pool.size", 100)

	v.SetEnvPrefix("minidb")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
