package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Database drivers accepted by database.Init.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	SlowThresholdMs int    `mapstructure:"slow_threshold_ms"`
}

// GetDSN renders the driver-specific connection string. For sqlite,
// Database is the file path (":memory:" allowed).
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case DriverPostgres:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case DriverSQLite:
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT        JWTConfig `mapstructure:"jwt"`
	BcryptCost int       `mapstructure:"bcrypt_cost"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Delivery modes for realtime events.
const (
	DeliveryBroadcast = "broadcast"
	DeliveryTargeted  = "targeted"
)

type RealtimeConfig struct {
	Delivery   string   `mapstructure:"delivery"`
	SendBuffer int      `mapstructure:"send_buffer"`
	Origins    []string `mapstructure:"origins"`
}

type SchedulerConfig struct {
	Enabled              bool `mapstructure:"enabled"`
	ArchiveIntervalHours int  `mapstructure:"archive_interval_hours"`
	ArchiveAfterMonths   int  `mapstructure:"archive_after_months"`
}

func (s *SchedulerConfig) ArchiveInterval() time.Duration {
	return time.Duration(s.ArchiveIntervalHours) * time.Hour
}

type MailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`

	// HRAddress receives holiday decision notices
	HRAddress string `mapstructure:"hr_address"`
}

type StorageConfig struct {
	UploadDir    string   `mapstructure:"upload_dir"`
	MaxSizeMB    int      `mapstructure:"max_size_mb"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

type PermissionConfig struct {
	SeedDefaults bool `mapstructure:"seed_defaults"`
}

// RateLimitConfig caps uploads and websocket upgrades per actor. Zero
// disables a limit.
type RateLimitConfig struct {
	UploadsPerMinute  int `mapstructure:"uploads_per_minute"`
	ConnectsPerMinute int `mapstructure:"connects_per_minute"`
}
