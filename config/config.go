package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Every field can be supplied through
// the environment; a config.yaml in the working directory is optional.
type Config struct {
	Token                string `mapstructure:"BOT_TOKEN"`
	DBPath               string `mapstructure:"DB_PATH"`
	T1DropID             string `mapstructure:"T1_DROP_ID"`
	T2DropID             string `mapstructure:"T2_DROP_ID"`
	SubmissionsTable     string `mapstructure:"UGC_SUBMISSIONS_TABLE"`
	CodeTable            string `mapstructure:"UGC_CODE_TABLE"`
	LedgerTable          string `mapstructure:"REWARD_LEDGER_TABLE"`
	MaxSubmissionsPerDay int    `mapstructure:"MAX_SUBMISSIONS_PER_DAY"`
	SnowflakeNode        int64  `mapstructure:"SNOWFLAKE_NODE"`
}

// Load reads configuration from the environment, overlaid on an optional
// config.yaml. Missing config file is not an error.
func Load() (*Config, error) {
	viper.SetDefault("BOT_TOKEN", "")
	viper.SetDefault("DB_PATH", "./data/ugc.db")
	viper.SetDefault("T1_DROP_ID", "")
	viper.SetDefault("T2_DROP_ID", "")
	viper.SetDefault("UGC_SUBMISSIONS_TABLE", "ugc_submissions")
	viper.SetDefault("UGC_CODE_TABLE", "ugc_codes")
	viper.SetDefault("REWARD_LEDGER_TABLE", "reward_ledger")
	viper.SetDefault("MAX_SUBMISSIONS_PER_DAY", 20)
	viper.SetDefault("SNOWFLAKE_NODE", 1)

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings a running bot cannot do without.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("BOT_TOKEN is required")
	}
	if c.T1DropID == "" || c.T2DropID == "" {
		return errors.New("T1_DROP_ID and T2_DROP_ID are required")
	}
	if c.MaxSubmissionsPerDay <= 0 {
		return errors.New("MAX_SUBMISSIONS_PER_DAY must be positive")
	}
	return nil
}
