package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                     "8080",
		Env:                      "test",
		DBServer:                 "localhost",
		DBPort:                   "3306",
		DBUser:                   "codemmunity",
		DBPassword:               "secret",
		DBName:                   "codemmunity",
		DBMaxOpenConns:           25,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 5,
		DBConnectTimeoutSeconds:  5,
		DBReadTimeoutSeconds:     30,
		DBWriteTimeoutSeconds:    30,
	}
}

func writeTempCert(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "root-ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("-----BEGIN CERTIFICATE-----\n-----END CERTIFICATE-----\n"), 0o600))
	return path
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing db user", func(c *Config) { c.DBUser = "" }, true},
		{"missing db password", func(c *Config) { c.DBPassword = "" }, true},
		{"missing db name", func(c *Config) { c.DBName = "" }, true},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"zero connect timeout", func(c *Config) { c.DBConnectTimeoutSeconds = 0 }, true},
		{"negative read timeout", func(c *Config) { c.DBReadTimeoutSeconds = -1 }, true},
		{"zero write timeout", func(c *Config) { c.DBWriteTimeoutSeconds = 0 }, true},
		{"zero max open conns", func(c *Config) { c.DBMaxOpenConns = 0 }, true},
		{"zero conn lifetime", func(c *Config) { c.DBConnMaxLifetimeMinutes = 0 }, true},
		{"production requires auth secret", func(c *Config) { c.Env = "production" }, true},
		{"production with short auth secret", func(c *Config) {
			c.Env = "production"
			c.AuthSecret = "too-short"
		}, true},
		{"production with strong auth secret", func(c *Config) {
			c.Env = "production"
			c.AuthSecret = "an-auth-secret-of-at-least-32-chars!"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Transport_Plain(t *testing.T) {
	c := validConfig()
	transport, err := c.Transport()
	require.NoError(t, err)
	assert.IsType(t, PlainTransport{}, transport)
}

func TestConfig_Transport_Encrypted(t *testing.T) {
	c := validConfig()
	c.UseSSL = true
	c.DBSSLCert = writeTempCert(t)

	transport, err := c.Transport()
	require.NoError(t, err)
	enc, ok := transport.(EncryptedTransport)
	require.True(t, ok)
	assert.Equal(t, c.DBSSLCert, enc.CertFile)
}

func TestConfig_Transport_SSLWithoutCertificate(t *testing.T) {
	tests := []struct {
		name     string
		certPath string
	}{
		{"empty path", ""},
		{"missing file", "/nonexistent/root-ca.pem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.UseSSL = true
			c.DBSSLCert = tt.certPath

			_, err := c.Transport()
			assert.Error(t, err)

			// The same failure must be fatal at validation time, before
			// any request is served.
			assert.Error(t, c.Validate())
		})
	}
}

func TestConfig_Transport_CertIsDirectory(t *testing.T) {
	c := validConfig()
	c.UseSSL = true
	c.DBSSLCert = t.TempDir()

	_, err := c.Transport()
	assert.Error(t, err)
}
