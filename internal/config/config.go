package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string        `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int           `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	// QueryTimeout bounds every single datastore round trip.
	QueryTimeout time.Duration `mapstructure:"query_timeout"  validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=44640"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// StorageConfig selects and configures where uploaded media bytes are kept.
type StorageConfig struct {
	Backend        string `mapstructure:"backend"          validate:"required,oneof=local s3"`
	LocalDir       string `mapstructure:"local_dir"        validate:"required_if=Backend local"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" validate:"gt=0"`

	S3Bucket    string `mapstructure:"s3_bucket"     validate:"required_if=Backend s3"`
	S3Region    string `mapstructure:"s3_region"     validate:"required_if=Backend s3"`
	S3Endpoint  string `mapstructure:"s3_endpoint"   validate:"omitempty,url"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
}
