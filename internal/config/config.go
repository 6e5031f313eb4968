package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service settings. Values come from defaults, an optional
// config file and the environment, in increasing precedence.
type Config struct {
	AppPort             string        `mapstructure:"app_port"`
	DatabaseDriver      string        `mapstructure:"database_driver"` // sqlite | postgres
	DatabaseDSN         string        `mapstructure:"database_dsn"`
	JWTSecret           string        `mapstructure:"jwt_secret"`
	JWTTTL              time.Duration `mapstructure:"jwt_ttl"`
	RabbitMQURL         string        `mapstructure:"rabbitmq_url"` // empty disables the event bus
	UploadDir           string        `mapstructure:"upload_dir"`
	RateLimitRPS        float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst      int           `mapstructure:"rate_limit_burst"`
	ListingRewardPoints int           `mapstructure:"listing_reward_points"`
	SeedSampleData      bool          `mapstructure:"seed_sample_data"`
	LogDebug            bool          `mapstructure:"log_debug"`
}

// Load reads configuration. path may be empty, in which case only defaults
// and environment variables are used.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app_port", ":8080")
	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_dsn", "rewear.db")
	v.SetDefault("jwt_secret", "change-me")
	v.SetDefault("jwt_ttl", "24h")
	v.SetDefault("rabbitmq_url", "")
	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("rate_limit_rps", 20)
	v.SetDefault("rate_limit_burst", 40)
	v.SetDefault("listing_reward_points", 10)
	v.SetDefault("seed_sample_data", false)
	v.SetDefault("log_debug", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must not be empty")
	}
	if c.ListingRewardPoints < 0 {
		return fmt.Errorf("listing_reward_points must not be negative")
	}
	return nil
}
