package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Values come from
// environment variables (SRDASH_ prefix) with an optional YAML file
// underneath; env wins.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Email   EmailConfig   `yaml:"email" envconfig:"EMAIL"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	// MaxUploadBytes bounds one multipart upload batch. Exports are small;
	// 64MB leaves plenty of headroom for a month of transactions.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"67108864"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
}

// EmailConfig contains the report delivery settings. Delivery is optional;
// when the sender identity is absent the email endpoints report the
// feature as not configured instead of failing a send.
type EmailConfig struct {
	SMTPHost    string   `yaml:"smtp_host" envconfig:"SMTP_HOST" default:"smtp.office365.com"`
	SMTPPort    int      `yaml:"smtp_port" envconfig:"SMTP_PORT" default:"587"`
	Sender      string   `yaml:"sender" envconfig:"SENDER"`
	AppPassword string   `yaml:"app_password" envconfig:"APP_PASSWORD"`
	Recipients  []string `yaml:"recipients" envconfig:"RECIPIENTS"`
	CC          []string `yaml:"cc" envconfig:"CC"`
}

// Configured reports whether the sending identity is present. Recipients
// may come from config or per request. It is recomputed on every call;
// there is no cached global to invalidate.
func (e EmailConfig) Configured() bool {
	return e.Sender != "" && e.AppPassword != ""
}

// ReportConfig contains report output settings.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"reports"`
	// Title is printed in the PDF header and used in email subjects.
	Title string `yaml:"title" envconfig:"TITLE" default:"Merchant SR Dashboard"`
}

// Load reads configuration from an optional config.yaml and the
// environment, env taking precedence, then validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(configFilePath()); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("SRDASH", cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}
	if c.Email.SMTPPort <= 0 || c.Email.SMTPPort > 65535 {
		return fmt.Errorf("invalid smtp port: %d", c.Email.SMTPPort)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	return nil
}

// configFilePath returns the first config file found in the usual spots.
func configFilePath() string {
	for _, location := range []string{"config.yaml", "configs/config.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxUploadBytes:  64 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Email: EmailConfig{
			SMTPHost: "smtp.office365.com",
			SMTPPort: 587,
		},
		Report: ReportConfig{
			OutputDir: "reports",
			Title:     "Merchant SR Dashboard",
		},
	}
}
