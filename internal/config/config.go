package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/yukikurage/team-dashboard/internal/constants"
)

type Config struct {
	Port string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string

	RemoteBaseURL string
	RemoteTimeout time.Duration

	// LocalStore selects the task cache backend: "redis" or "memory"
	LocalStore     string
	StoreMinDelay  time.Duration
	StoreMaxDelay  time.Duration
	StoreNamespace string

	NotifyDuration time.Duration

	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "dashboard")
	v.SetDefault("DB_PASSWORD", "dashboard")
	v.SetDefault("DB_NAME", "team_dashboard")

	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_SECRET", "default-secret-key-change-me")
	v.SetDefault("GIN_MODE", "debug")

	v.SetDefault("REMOTE_BASE_URL", "http://localhost:8080")
	v.SetDefault("REMOTE_TIMEOUT", constants.DefaultRemoteTimeout)

	v.SetDefault("LOCAL_STORE", "")
	v.SetDefault("STORE_MIN_DELAY", constants.DefaultStoreMinDelay)
	v.SetDefault("STORE_MAX_DELAY", constants.DefaultStoreMaxDelay)
	v.SetDefault("STORE_NAMESPACE", "")

	v.SetDefault("NOTIFY_DURATION", constants.DefaultNotificationDuration)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

// Load reads configuration from defaults, an optional config.yaml in the
// working directory, and environment variables (highest precedence).
func Load() (*Config, error) {
	return LoadWithPath("")
}

// LoadWithPath is Load with an additional directory searched for config.yaml
func LoadWithPath(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:           v.GetString("PORT"),
		DBDriver:       v.GetString("DB_DRIVER"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		RedisHost:      v.GetString("REDIS_HOST"),
		RedisPort:      v.GetString("REDIS_PORT"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		GinMode:        v.GetString("GIN_MODE"),
		RemoteBaseURL:  v.GetString("REMOTE_BASE_URL"),
		RemoteTimeout:  v.GetDuration("REMOTE_TIMEOUT"),
		LocalStore:     v.GetString("LOCAL_STORE"),
		StoreMinDelay:  v.GetDuration("STORE_MIN_DELAY"),
		StoreMaxDelay:  v.GetDuration("STORE_MAX_DELAY"),
		StoreNamespace: v.GetString("STORE_NAMESPACE"),
		NotifyDuration: v.GetDuration("NOTIFY_DURATION"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
	}

	if cfg.LocalStore == "" {
		if cfg.RedisHost != "" {
			cfg.LocalStore = "redis"
		} else {
			cfg.LocalStore = "memory"
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// RedisAddr returns host:port of the Redis server, or "" when Redis is not configured
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func validate(cfg *Config) error {
	switch cfg.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.LocalStore {
	case "memory":
	case "redis":
		if cfg.RedisHost == "" {
			return errors.New("LOCAL_STORE=redis requires REDIS_HOST")
		}
	default:
		return fmt.Errorf("unsupported LOCAL_STORE %q", cfg.LocalStore)
	}

	if cfg.StoreMinDelay < 0 || cfg.StoreMaxDelay < cfg.StoreMinDelay {
		return fmt.Errorf("store delay range [%s, %s] is invalid", cfg.StoreMinDelay, cfg.StoreMaxDelay)
	}

	if cfg.RemoteTimeout <= 0 {
		return errors.New("REMOTE_TIMEOUT must be positive")
	}

	return nil
}
