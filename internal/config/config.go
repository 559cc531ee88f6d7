package config

import "time"

// Config is the top level application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Riot      RiotConfig      `mapstructure:"riot"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// RiotConfig holds upstream Riot API settings.
type RiotConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig holds the dual window quotas for outbound Riot calls.
// The defaults match a Riot development key: 20 requests per second and
// 100 requests per 2 minutes.
type RateLimitConfig struct {
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	RequestsPer2Min   int           `mapstructure:"requests_per_2min"`
	ShortWindow       time.Duration `mapstructure:"short_window"`
	LongWindow        time.Duration `mapstructure:"long_window"`
	MaxBackoff        time.Duration `mapstructure:"max_backoff"`
}

// CacheConfig holds cache backend selection and per category TTLs.
type CacheConfig struct {
	Type            string        `mapstructure:"type"` // memory or redis
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`

	LiveGameTTL  time.Duration `mapstructure:"live_game_ttl"`
	AnalyticsTTL time.Duration `mapstructure:"analytics_ttl"`
	MatchTTL     time.Duration `mapstructure:"match_ttl"`
	ChampionTTL  time.Duration `mapstructure:"champion_ttl"`
	SummonerTTL  time.Duration `mapstructure:"summoner_ttl"`
	EnemyTTL     time.Duration `mapstructure:"enemy_ttl"`
	BuildTTL     time.Duration `mapstructure:"build_ttl"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ScoringConfig holds the hand tuned coefficients behind the 0-10 style
// metrics. These are product tuning constants, kept configurable so they
// can be adjusted without a rebuild.
type ScoringConfig struct {
	AggressionKillWeight   float64 `mapstructure:"aggression_kill_weight"`
	AggressionDamageScale  float64 `mapstructure:"aggression_damage_scale"`
	FarmingCSBaseline      float64 `mapstructure:"farming_cs_baseline"`
	SurvivabilityDeathBase float64 `mapstructure:"survivability_death_base"`
	SurvivabilityPenalty   float64 `mapstructure:"survivability_penalty"`
	VisionBaseline         float64 `mapstructure:"vision_baseline"`
	VersatilityPoolSize    float64 `mapstructure:"versatility_pool_size"`
	ConsistencyVarPenalty  float64 `mapstructure:"consistency_var_penalty"`
	ConsistencyMaxPenalty  float64 `mapstructure:"consistency_max_penalty"`
}
