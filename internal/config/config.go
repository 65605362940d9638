package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Storage
	StorageDriver string `mapstructure:"STORAGE_DRIVER"` // memory | file | redis | sql
	StorageSlot   string `mapstructure:"STORAGE_SLOT"`
	StoragePath   string `mapstructure:"STORAGE_PATH"` // directory for the file driver
	DatabaseURL   string `mapstructure:"DATABASE_URL"` // sql driver DSN (sqlite path or postgres URL)

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	CredentialScheme   string `mapstructure:"CREDENTIAL_SCHEME"` // legacy | bcrypt

	// Remote account API; empty disables the remote path entirely
	RemoteAPIURL            string `mapstructure:"REMOTE_API_URL"`
	RemoteAPITimeoutSeconds int    `mapstructure:"REMOTE_API_TIMEOUT_SECONDS"`

	// SMTP; empty host falls back to logging recovery codes
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	// Business
	ReceiptStoragePath string `mapstructure:"RECEIPT_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 4000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 5)
	viper.SetDefault("STORAGE_DRIVER", "file")
	viper.SetDefault("STORAGE_SLOT", "barVeredalesDB")
	viper.SetDefault("STORAGE_PATH", "./data")
	viper.SetDefault("DATABASE_URL", "./data/barveredales.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 168)
	viper.SetDefault("CREDENTIAL_SCHEME", "legacy")
	viper.SetDefault("REMOTE_API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("RECEIPT_STORAGE_PATH", "/tmp/barveredales/recibos")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
