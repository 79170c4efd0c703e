package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DatabasePath        string `mapstructure:"DATABASE_PATH"`
	HTTPAddr            string `mapstructure:"HTTP_ADDR"`
	CORSOrigins         string `mapstructure:"CORS_ORIGINS"`
	DiscordBotToken     string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordChannelId    string `mapstructure:"DISCORD_CHANNEL_ID"`
	RabbitMQURL         string `mapstructure:"RABBITMQ_URL"`
	EventsExchange      string `mapstructure:"EVENTS_EXCHANGE"`
	InterestJobSchedule string `mapstructure:"INTEREST_JOB_SCHEDULE"`
	LogLevel            string `mapstructure:"LOG_LEVEL"`
}

func Load() (*Config, error) {
	viper.SetDefault("DATABASE_PATH", "ledger.db")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("EVENTS_EXCHANGE", "ledger.events")
	viper.SetDefault("INTEREST_JOB_SCHEDULE", "0 1 1 * *") // 01:00 on the first of each month
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	for _, key := range []string{"DISCORD_BOT_TOKEN", "DISCORD_CHANNEL_ID", "RABBITMQ_URL"} {
		if err := viper.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if cfg.DiscordBotToken != "" && cfg.DiscordChannelId == "" {
		return nil, fmt.Errorf("DISCORD_CHANNEL_ID is not set")
	}

	return &cfg, nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
