// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Transport describes how the database link is secured. It is a closed set:
// either PlainTransport or EncryptedTransport. Constructing the encrypted
// variant without certificate material is impossible; Config.Transport
// returns an error instead.
type Transport interface {
	isTransport()
}

// PlainTransport is an unencrypted database connection.
type PlainTransport struct{}

func (PlainTransport) isTransport() {}

// EncryptedTransport is a TLS database connection verified against the
// root-CA bundle at CertFile.
type EncryptedTransport struct {
	CertFile string
}

func (EncryptedTransport) isTransport() {}

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"APP_PORT"`
	Env            string `mapstructure:"APP_ENV"`
	DBServer       string `mapstructure:"DB_SERVER"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWD"`
	DBName         string `mapstructure:"DB_DATABASE"`
	UseSSL         bool   `mapstructure:"USE_SSL"`
	DBSSLCert      string `mapstructure:"DB_SSL_CERT"`
	AuthSecret     string `mapstructure:"AUTH_SECRET"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DBMaxOpenConns           int `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBConnectTimeoutSeconds  int `mapstructure:"DB_CONNECT_TIMEOUT_SECONDS"`
	DBReadTimeoutSeconds     int `mapstructure:"DB_READ_TIMEOUT_SECONDS"`
	DBWriteTimeoutSeconds    int `mapstructure:"DB_WRITE_TIMEOUT_SECONDS"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults are
	// enough to run.
	_ = viper.ReadInConfig()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_SERVER", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_USER", "")
	viper.SetDefault("DB_PASSWD", "")
	viper.SetDefault("DB_DATABASE", "")
	viper.SetDefault("USE_SSL", false)
	viper.SetDefault("DB_SSL_CERT", "./cert/DigiCertGlobalRootCA.crt.pem")
	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("DB_CONNECT_TIMEOUT_SECONDS", 5)
	viper.SetDefault("DB_READ_TIMEOUT_SECONDS", 30)
	viper.SetDefault("DB_WRITE_TIMEOUT_SECONDS", 30)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Transport resolves the database transport variant. Requesting encrypted
// transport without a readable certificate bundle is a configuration error,
// reported here so it fails at startup rather than at first query.
func (c *Config) Transport() (Transport, error) {
	if !c.UseSSL {
		return PlainTransport{}, nil
	}
	if c.DBSSLCert == "" {
		return nil, errors.New("USE_SSL is true but DB_SSL_CERT is empty")
	}
	info, err := os.Stat(c.DBSSLCert)
	if err != nil {
		return nil, fmt.Errorf("USE_SSL is true but certificate bundle %q is not readable: %w", c.DBSSLCert, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("USE_SSL is true but certificate bundle %q is a directory", c.DBSSLCert)
	}
	return EncryptedTransport{CertFile: c.DBSSLCert}, nil
}

// Validate ensures that required configuration values are present. Failures
// here are fatal at startup; the process must not begin serving requests.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("APP_PORT is required")
	}
	if c.DBServer == "" {
		return errors.New("DB_SERVER is required")
	}
	if c.DBPort == "" {
		return errors.New("DB_PORT is required")
	}
	if c.DBUser == "" {
		return errors.New("DB_USER is required")
	}
	if c.DBPassword == "" {
		return errors.New("DB_PASSWD is required")
	}
	if c.DBName == "" {
		return errors.New("DB_DATABASE is required")
	}

	// Timeouts are mandatory so the service stays responsive under
	// database slowness.
	if c.DBConnectTimeoutSeconds <= 0 {
		return errors.New("DB_CONNECT_TIMEOUT_SECONDS must be positive")
	}
	if c.DBReadTimeoutSeconds <= 0 {
		return errors.New("DB_READ_TIMEOUT_SECONDS must be positive")
	}
	if c.DBWriteTimeoutSeconds <= 0 {
		return errors.New("DB_WRITE_TIMEOUT_SECONDS must be positive")
	}
	if c.DBMaxOpenConns <= 0 {
		return errors.New("DB_MAX_OPEN_CONNS must be positive")
	}
	if c.DBMaxIdleConns < 0 {
		return errors.New("DB_MAX_IDLE_CONNS must not be negative")
	}
	if c.DBConnMaxLifetimeMinutes <= 0 {
		return errors.New("DB_CONN_MAX_LIFETIME_MINUTES must be positive")
	}

	if _, err := c.Transport(); err != nil {
		return err
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction {
		if c.AuthSecret == "" {
			return errors.New("AUTH_SECRET is required in production")
		}
		if len(c.AuthSecret) < 32 {
			return errors.New("AUTH_SECRET must be at least 32 characters in production")
		}
	}

	return nil
}
