package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
	Extract ExtractConfig
	GST     GSTConfig
	Upload  UploadConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for the rendered-invoice archive.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExtractConfig holds vision-model extraction settings.
type ExtractConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// GSTConfig holds tax rates as decimal fractions (0.09 = 9%).
type GSTConfig struct {
	CGSTRate string `mapstructure:"cgst_rate"`
	SGSTRate string `mapstructure:"sgst_rate"`
	IGSTRate string `mapstructure:"igst_rate"`
}

// UploadConfig holds limits on uploaded documents.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxFileSizeBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the INVOICEGEN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOICEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invoicegen")
	v.SetDefault("db.password", "invoicegen_secret")
	v.SetDefault("db.name", "invoicegen_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults (archive disabled until a bucket is configured)
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "invoicegen-archive")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Extraction defaults
	v.SetDefault("extract.api_key", "")
	v.SetDefault("extract.model", "gpt-4o")
	v.SetDefault("extract.timeout_secs", 120)

	// GST rate defaults
	v.SetDefault("gst.cgst_rate", "0.09")
	v.SetDefault("gst.sgst_rate", "0.09")
	v.SetDefault("gst.igst_rate", "0.18")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "INVOICEGEN_SERVER_PORT",
		"server.read_timeout":     "INVOICEGEN_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "INVOICEGEN_SERVER_WRITE_TIMEOUT",
		"server.environment":      "INVOICEGEN_SERVER_ENVIRONMENT",
		"db.host":                 "INVOICEGEN_DB_HOST",
		"db.port":                 "INVOICEGEN_DB_PORT",
		"db.user":                 "INVOICEGEN_DB_USER",
		"db.password":             "INVOICEGEN_DB_PASSWORD",
		"db.name":                 "INVOICEGEN_DB_NAME",
		"db.sslmode":              "INVOICEGEN_DB_SSLMODE",
		"db.max_open":             "INVOICEGEN_DB_MAX_OPEN",
		"db.max_idle":             "INVOICEGEN_DB_MAX_IDLE",
		"s3.enabled":              "INVOICEGEN_S3_ENABLED",
		"s3.region":               "INVOICEGEN_S3_REGION",
		"s3.bucket":               "INVOICEGEN_S3_BUCKET",
		"s3.endpoint":             "INVOICEGEN_S3_ENDPOINT",
		"s3.access_key":           "INVOICEGEN_S3_ACCESS_KEY",
		"s3.secret_key":           "INVOICEGEN_S3_SECRET_KEY",
		"s3.presign_expiry":       "INVOICEGEN_S3_PRESIGN_EXPIRY",
		"log.level":               "INVOICEGEN_LOG_LEVEL",
		"log.format":              "INVOICEGEN_LOG_FORMAT",
		"extract.api_key":         "INVOICEGEN_EXTRACT_API_KEY",
		"extract.model":           "INVOICEGEN_EXTRACT_MODEL",
		"extract.timeout_secs":    "INVOICEGEN_EXTRACT_TIMEOUT_SECS",
		"gst.cgst_rate":           "INVOICEGEN_GST_CGST_RATE",
		"gst.sgst_rate":           "INVOICEGEN_GST_SGST_RATE",
		"gst.igst_rate":           "INVOICEGEN_GST_IGST_RATE",
		"upload.max_file_size_mb": "INVOICEGEN_UPLOAD_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":    "INVOICEGEN_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOICEGEN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICEGEN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Extract = ExtractConfig{
		APIKey:      v.GetString("extract.api_key"),
		Model:       v.GetString("extract.model"),
		TimeoutSecs: v.GetInt("extract.timeout_secs"),
	}
	cfg.GST = GSTConfig{
		CGSTRate: v.GetString("gst.cgst_rate"),
		SGSTRate: v.GetString("gst.sgst_rate"),
		IGSTRate: v.GetString("gst.igst_rate"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
