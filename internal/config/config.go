package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Output         string `mapstructure:"output"`
	Format         string `mapstructure:"format"`
	CacheOnly      bool   `mapstructure:"cache_only"`
	IncludeHost    bool   `mapstructure:"include_host"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
	LogFile        string `mapstructure:"log_file"`
	LogMaxSizeMB   int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups  int    `mapstructure:"log_max_backups"`
}

func Default() *Config {
	return &Config{
		Format:         "json",
		CacheOnly:      true,
		TimeoutSeconds: 120,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

func Load(cfgFile string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("updates-collector")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/updates-collector")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("UPDATES")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
