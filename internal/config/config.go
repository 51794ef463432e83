package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`

	SentryEnabled bool `toml:"sentry_enabled"`

	// postgres, holds profiles / daily logs / settings
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis, holds admin sessions and rate limiting counters
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	PrometheusMetricsHost string `toml:"prom_metrics_host"`
	PrometheusMetricsPort string `toml:"prom_metrics_port"`

	// flat-file data locations
	UserDataDir       string `toml:"user_data_dir"`
	UploadsRootDir    string `toml:"uploads_root_dir"`
	VideosDir         string `toml:"videos_dir"`
	UserProgressPath  string `toml:"user_progress_path"`
	WorkoutLogPath    string `toml:"workout_log_path"`
	VideosMappingPath string `toml:"videos_mapping_path"`
	VideosLibraryPath string `toml:"videos_library_path"`

	TipsCsvPath string `toml:"tips_csv_path"`

	MaxVideoMB                  int `toml:"max_video_mb"`
	CoachRateLimitAllowedPerMin int `toml:"coach_rate_limit_per_min"`
	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_per_min"`

	// resolved from the environment at startup, not from the TOML file
	AdminMode bool
	ReadOnly  bool
}

// AdminUIEnabled reports whether the admin surface is exposed.
// Read-only mode wins over admin mode.
func (c *Config) AdminUIEnabled() bool {
	return c.AdminMode && !c.ReadOnly
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s empty", env)
	}

	cfg.Environment = env
	return cfg, nil
}

// ParseBoolFlag interprets boolean-like flag values the lenient way:
// "1", "true", "yes" and "on" (any casing) are true, everything else false.
func ParseBoolFlag(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
