package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// StoreKind selects the plan repository backend
type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StoreRedis    StoreKind = "redis"
	StorePostgres StoreKind = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Store        StoreKind       `yaml:"store"`
	DataDir      string          `yaml:"data_dir"` // empty = embedded reference data
	DefaultLevel int             `yaml:"default_level"`
	Redis        RedisConfig     `yaml:"redis"`
	Postgres     PostgresConfig  `yaml:"postgres"`
	Discord      DiscordConfig   `yaml:"discord"`
	Telemetry    TelemetryConfig `yaml:"telemetry"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	URL      string `yaml:"url"` // overrides Addr/Password/DB when set
}

// PostgresConfig holds the PostgreSQL connection string
type PostgresConfig struct {
	URL string `yaml:"url"`
}

// DiscordConfig holds the optional notifier settings
type DiscordConfig struct {
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
}

// Enabled reports whether planner notices should be posted to Discord
func (d DiscordConfig) Enabled() bool {
	return d.Token != "" && d.ChannelID != ""
}

// TelemetryConfig holds OpenTelemetry exporter settings
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint"` // empty = tracing disabled
	ServiceName string `yaml:"service_name"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Store:        StoreMemory,
		DefaultLevel: 100,
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "raidplan",
		},
	}
}

// LoadFile overlays a YAML file on top of the defaults.
// If the file doesn't exist, returns defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Load loads configuration from RAIDPLAN_CONFIG (if set) and environment variables.
// Environment variables win over the file.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("RAIDPLAN_CONFIG"); path != "" {
		fromFile, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}

	cfg.Store = StoreKind(getEnvOrDefault("RAIDPLAN_STORE", string(cfg.Store)))
	cfg.DataDir = getEnvOrDefault("RAIDPLAN_DATA_DIR", cfg.DataDir)
	cfg.DefaultLevel = getEnvAsIntOrDefault("RAIDPLAN_DEFAULT_LEVEL", cfg.DefaultLevel)

	cfg.Redis.Addr = getEnvOrDefault("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.URL = getEnvOrDefault("REDIS_URL", cfg.Redis.URL)

	cfg.Postgres.URL = getEnvOrDefault("DATABASE_URL", cfg.Postgres.URL)

	cfg.Discord.Token = getEnvOrDefault("DISCORD_TOKEN", cfg.Discord.Token)
	cfg.Discord.ChannelID = getEnvOrDefault("DISCORD_CHANNEL_ID", cfg.Discord.ChannelID)

	cfg.Telemetry.Endpoint = getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.ServiceName = getEnvOrDefault("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store %q, expected memory, redis or postgres", c.Store)
	}

	if c.DefaultLevel <= 0 {
		return fmt.Errorf("default level must be positive, got %d", c.DefaultLevel)
	}
	if c.Discord.Token != "" && c.Discord.ChannelID == "" {
		return fmt.Errorf("DISCORD_CHANNEL_ID is required when DISCORD_TOKEN is set")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
