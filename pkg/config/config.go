package config

import (
	"path/filepath"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Storage    StorageConfig    `koanf:"storage"    validate:"required"`
	Runtime    RuntimeConfig    `koanf:"runtime"    validate:"required"`
	Monitoring MonitoringConfig `koanf:"monitoring"`
	Export     ExportConfig     `koanf:"export"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host           string          `koanf:"host"             env:"SERVER_HOST"             validate:"required"`
	Port           int             `koanf:"port"             env:"SERVER_PORT"             validate:"min=1,max=65535"`
	ReadTimeout    time.Duration   `koanf:"read_timeout"     env:"SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration   `koanf:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"`
	MaxUploadBytes int64           `koanf:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES" validate:"min=1"`
	RateLimit      RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig caps requests per client IP. A zero Limit disables it.
type RateLimitConfig struct {
	Limit  int64         `koanf:"limit"  env:"SERVER_RATE_LIMIT"        validate:"min=0"`
	Period time.Duration `koanf:"period" env:"SERVER_RATE_LIMIT_PERIOD" validate:"required_with=Limit"`
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StorageConfig selects and configures the project storage backend.
type StorageConfig struct {
	Driver      string          `koanf:"driver"       env:"STORAGE_DRIVER"       validate:"oneof=memory file redis sqlite postgres"`
	DataDir     string          `koanf:"data_dir"     env:"STORAGE_DATA_DIR"     validate:"required_if=Driver file"`
	RedisURL    SensitiveString `koanf:"redis_url"    env:"STORAGE_REDIS_URL"    validate:"required_if=Driver redis"     sensitive:"true"`
	RedisPrefix string          `koanf:"redis_prefix" env:"STORAGE_REDIS_PREFIX"`
	SQLitePath  string          `koanf:"sqlite_path"  env:"STORAGE_SQLITE_PATH"  validate:"required_if=Driver sqlite"`
	PostgresDSN SensitiveString `koanf:"postgres_dsn" env:"STORAGE_POSTGRES_DSN" validate:"required_if=Driver postgres" sensitive:"true"`
	// CacheSize bounds the read cache in front of the backend; 0 disables it.
	CacheSize int `koanf:"cache_size" env:"STORAGE_CACHE_SIZE" validate:"min=0"`
}

// RuntimeConfig contains logging behavior.
type RuntimeConfig struct {
	LogLevel  string `koanf:"log_level"  env:"LOG_LEVEL"  validate:"oneof=debug info warn error disabled"`
	LogJSON   bool   `koanf:"log_json"   env:"LOG_JSON"`
	LogSource bool   `koanf:"log_source" env:"LOG_SOURCE"`
}

// MonitoringConfig toggles the Prometheus endpoint.
type MonitoringConfig struct {
	Enabled bool   `koanf:"enabled" env:"MONITORING_ENABLED"`
	Path    string `koanf:"path"    env:"MONITORING_PATH"    validate:"required_if=Enabled true"`
}

// ExportConfig sets defaults for the export command.
type ExportConfig struct {
	Format string `koanf:"format" env:"EXPORT_FORMAT" validate:"oneof=json yaml"`
	Dir    string `koanf:"dir"    env:"EXPORT_DIR"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8686,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   60 * time.Second,
			MaxUploadBytes: 64 << 20,
			RateLimit: RateLimitConfig{
				Period: time.Minute,
			},
		},
		Storage: StorageConfig{
			Driver:      DriverFile,
			DataDir:     "data",
			RedisPrefix: "labelforge",
			SQLitePath:  filepath.Join("data", "labelforge.db"),
			CacheSize:   128,
		},
		Runtime: RuntimeConfig{
			LogLevel: "info",
		},
		Monitoring: MonitoringConfig{
			Enabled: false,
			Path:    "/metrics",
		},
		Export: ExportConfig{
			Format: "json",
			Dir:    "export",
		},
	}
}

// SensitiveString hides its value when printed.
type SensitiveString string

func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// Value returns the underlying secret.
func (s SensitiveString) Value() string {
	return string(s)
}

func (s SensitiveString) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}
