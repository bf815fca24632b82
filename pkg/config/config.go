// Package config provides a reusable loader for zlkdex configuration files
// and environment variables. Grounded on the teacher's pkg/config package:
// same viper-backed default+override merge, same AutomaticEnv behavior.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"zlkdex/pkg/utils"
)

// Config is the unified configuration for a zlkdex node (CLI or server).
type Config struct {
	Network struct {
		ID         string `mapstructure:"id" json:"id"`
		ListenAddr string `mapstructure:"listen_addr" json:"listen_addr"`
	} `mapstructure:"network" json:"network"`

	Ledger struct {
		// ExistentialDeposit is the minimum balance a KeepAlive currency
		// transfer must leave behind in its source account (spec.md §5).
		ExistentialDeposit uint64 `mapstructure:"existential_deposit" json:"existential_deposit"`
	} `mapstructure:"ledger" json:"ledger"`

	DexServer struct {
		Addr        string `mapstructure:"addr" json:"addr"`
		MetricsAddr string `mapstructure:"metrics_addr" json:"metrics_addr"`
	} `mapstructure:"dex_server" json:"dex_server"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load.
var AppConfig Config

// Load reads the default configuration and merges the given environment's
// override file, if any. The result is stored in AppConfig and returned.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merge %s config: %w", env, err)
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the ZLKDEX_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("ZLKDEX_ENV", ""))
}
