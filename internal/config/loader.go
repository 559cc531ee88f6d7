package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a YAML file plus environment
// variables. A missing config file is not an error, defaults apply.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.gamelytics")
		v.AddConfigPath("/etc/gamelytics")
	}

	v.SetEnvPrefix("GAMELYTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	expandEnvVars(&config)

	return &config, nil
}

// setDefaults registers the default value for every knob.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.debug", false)

	v.SetDefault("riot.api_key", "")
	v.SetDefault("riot.timeout", "30s")

	// Riot development key quotas.
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.requests_per_2min", 100)
	v.SetDefault("rate_limit.short_window", "1s")
	v.SetDefault("rate_limit.long_window", "2m")
	v.SetDefault("rate_limit.max_backoff", "60s")

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.cleanup_interval", "5m")
	v.SetDefault("cache.live_game_ttl", "30s")
	v.SetDefault("cache.analytics_ttl", "10m")
	v.SetDefault("cache.match_ttl", "30m")
	v.SetDefault("cache.champion_ttl", "1h")
	v.SetDefault("cache.summoner_ttl", "15m")
	v.SetDefault("cache.enemy_ttl", "5m")
	v.SetDefault("cache.build_ttl", "1m")

	v.SetDefault("database.path", "./data/gamelytics.db")

	// Style metric coefficients, see ScoringConfig.
	v.SetDefault("scoring.aggression_kill_weight", 1.5)
	v.SetDefault("scoring.aggression_damage_scale", 2000.0)
	v.SetDefault("scoring.farming_cs_baseline", 8.0)
	v.SetDefault("scoring.survivability_death_base", 2.0)
	v.SetDefault("scoring.survivability_penalty", 1.5)
	v.SetDefault("scoring.vision_baseline", 50.0)
	v.SetDefault("scoring.versatility_pool_size", 5.0)
	v.SetDefault("scoring.consistency_var_penalty", 0.5)
	v.SetDefault("scoring.consistency_max_penalty", 3.0)
}

// expandEnvVars expands ${VAR} references in secret fields.
func expandEnvVars(config *Config) {
	config.Riot.APIKey = os.ExpandEnv(config.Riot.APIKey)
	config.Cache.RedisPassword = os.ExpandEnv(config.Cache.RedisPassword)
}
