package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/deskhub/deskhub/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Auth       sharedConfig.AuthConfig       `mapstructure:"auth"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	Realtime   sharedConfig.RealtimeConfig   `mapstructure:"realtime"`
	Scheduler  sharedConfig.SchedulerConfig  `mapstructure:"scheduler"`
	Mail       sharedConfig.MailConfig       `mapstructure:"mail"`
	Storage    sharedConfig.StorageConfig    `mapstructure:"storage"`
	Permission sharedConfig.PermissionConfig `mapstructure:"permission"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configPath) and DESKHUB_* environment
// variables. A missing config file is not an error: defaults plus env apply.
func Load(env, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("DESKHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case sharedConfig.DriverMySQL, sharedConfig.DriverPostgres, sharedConfig.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Realtime.Delivery {
	case sharedConfig.DeliveryBroadcast, sharedConfig.DeliveryTargeted:
	default:
		return fmt.Errorf("unsupported realtime delivery mode %q", c.Realtime.Delivery)
	}
	if c.Scheduler.ArchiveIntervalHours <= 0 {
		return fmt.Errorf("scheduler.archive_interval_hours must be positive")
	}
	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "deskhub_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.slow_threshold_ms", 200)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.access_exp_minutes", 60*24)
	v.SetDefault("auth.bcrypt_cost", 12)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "deskhub:events")

	v.SetDefault("realtime.delivery", sharedConfig.DeliveryBroadcast)
	v.SetDefault("realtime.send_buffer", 256)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.archive_interval_hours", 2)
	v.SetDefault("scheduler.archive_after_months", 2)

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.smtp_host", "localhost")
	v.SetDefault("mail.smtp_port", 1025)
	v.SetDefault("mail.from_address", "noreply@deskhub.local")
	v.SetDefault("mail.from_name", "Deskhub")

	v.SetDefault("storage.upload_dir", "./uploads")
	v.SetDefault("storage.max_size_mb", 10)
	v.SetDefault("storage.allowed_types", []string{"image/png", "image/jpeg", "image/gif", "application/pdf", "text/plain"})

	v.SetDefault("permission.seed_defaults", true)

	v.SetDefault("ratelimit.uploads_per_minute", 30)
	v.SetDefault("ratelimit.connects_per_minute", 20)
}
