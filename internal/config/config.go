package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig
	Server  ServerConfig
	Staging StagingConfig
	Gallery GalleryConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
}

// APIConfig holds settings for the remote analysis backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 keeps the transport default
}

// Validate checks that the base URL is an absolute http(s) URL.
func (a *APIConfig) Validate() error {
	if a.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", a.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url has no host: %q", a.BaseURL)
	}
	if a.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", a.Timeout)
	}
	return nil
}

// ServerConfig holds local bridge server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StagingConfig controls where images are materialized before upload.
type StagingConfig struct {
	Dir string `mapstructure:"dir"`
}

// GalleryConfig limits which local files the bridge server may read for
// image_ref submissions. An empty Dir disables path and file:// references there.
type GalleryConfig struct {
	Dir string `mapstructure:"dir"`
}

// S3Config holds settings for reading s3:// image references.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Flags returns the standard logger flags for the configured format.
// "plain" drops timestamps for hosts that add their own.
func (l *LogConfig) Flags() int {
	if l.Format == "plain" {
		return 0
	}
	return log.LstdFlags | log.Lmicroseconds
}

// Debug reports whether verbose framework logging is wanted.
func (c *Config) Debug() bool {
	return c.Log.Level == "debug" && c.Server.Environment != "production"
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the AINOGGO_ prefix.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("AINOGGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// API defaults
	v.SetDefault("api.base_url", "https://ainoggo-server.onrender.com")
	v.SetDefault("api.timeout", "0s")

	// Server defaults
	v.SetDefault("server.port", "127.0.0.1:8090")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Staging defaults
	v.SetDefault("staging.dir", os.TempDir())

	v.SetDefault("gallery.dir", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"api.base_url":         "AINOGGO_API_BASE_URL",
		"api.timeout":          "AINOGGO_API_TIMEOUT",
		"server.port":          "AINOGGO_SERVER_PORT",
		"server.read_timeout":  "AINOGGO_SERVER_READ_TIMEOUT",
		"server.write_timeout": "AINOGGO_SERVER_WRITE_TIMEOUT",
		"server.environment":   "AINOGGO_SERVER_ENVIRONMENT",
		"staging.dir":          "AINOGGO_STAGING_DIR",
		"gallery.dir":          "AINOGGO_GALLERY_DIR",
		"s3.region":            "AINOGGO_S3_REGION",
		"s3.endpoint":          "AINOGGO_S3_ENDPOINT",
		"s3.access_key":        "AINOGGO_S3_ACCESS_KEY",
		"s3.secret_key":        "AINOGGO_S3_SECRET_KEY",
		"log.level":            "AINOGGO_LOG_LEVEL",
		"log.format":           "AINOGGO_LOG_FORMAT",
		"cors.allowed_origins": "AINOGGO_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("api.base_url"), "/"),
		Timeout: v.GetDuration("api.timeout"),
	}
	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}

	// Render/Heroku set a PORT env var. Use it if AINOGGO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("AINOGGO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Staging = StagingConfig{
		Dir: v.GetString("staging.dir"),
	}
	cfg.Gallery = GalleryConfig{
		Dir: v.GetString("gallery.dir"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

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
