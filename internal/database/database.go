// Package database handles the database connection lifecycle: DSN and TLS
// construction, pool configuration, and schema migration.
package database

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"time"

	"codemmunity/internal/config"
	"codemmunity/internal/middleware"
	"codemmunity/internal/models"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// tlsProfile is the name the root-CA bundle is registered under with the
// mysql driver when encrypted transport is requested.
const tlsProfile = "codemmunity"

// Connect opens the database connection described by cfg and returns the
// gorm handle. The handle is the only way to reach the database; there is no
// package-level singleton. A single failed attempt surfaces immediately so
// the caller decides on retry policy.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	transport, err := cfg.Transport()
	if err != nil {
		return nil, err
	}

	dsn, err := buildDSN(cfg, transport)
	if err != nil {
		return nil, err
	}

	gormLogger := &CustomGormLogger{
		logger: middleware.Logger,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	}

	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, classifyConnectionError(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, models.NewConnectionError("failed to access connection pool", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMinutes) * time.Minute)

	// Fail at startup, not at first query.
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.DBConnectTimeoutSeconds)*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, classifyConnectionError(err)
	}

	middleware.Logger.Info("Database connected successfully")

	isProduction := cfg.Env == "production" || cfg.Env == "prod"
	if !isProduction {
		// Keep AutoMigrate in non-production for developer/test ergonomics.
		if err := db.AutoMigrate(
			&models.User{},
			&models.Post{},
			&models.Comment{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		middleware.Logger.Info("Database migration completed")
	}

	return db, nil
}

// buildDSN assembles the mysql DSN from typed driver configuration. The
// mandatory connect/read/write timeouts come from cfg; the TLS profile is
// registered when the transport is encrypted.
func buildDSN(cfg *config.Config, transport config.Transport) (string, error) {
	dsnCfg := mysql.NewConfig()
	dsnCfg.User = cfg.DBUser
	dsnCfg.Passwd = cfg.DBPassword
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = net.JoinHostPort(cfg.DBServer, cfg.DBPort)
	dsnCfg.DBName = cfg.DBName
	dsnCfg.ParseTime = true
	dsnCfg.Timeout = time.Duration(cfg.DBConnectTimeoutSeconds) * time.Second
	dsnCfg.ReadTimeout = time.Duration(cfg.DBReadTimeoutSeconds) * time.Second
	dsnCfg.WriteTimeout = time.Duration(cfg.DBWriteTimeoutSeconds) * time.Second

	if enc, ok := transport.(config.EncryptedTransport); ok {
		if err := registerTLSProfile(enc); err != nil {
			return "", err
		}
		dsnCfg.TLSConfig = tlsProfile
	}

	return dsnCfg.FormatDSN(), nil
}

// registerTLSProfile loads the root-CA bundle and registers it with the
// mysql driver under the named profile.
func registerTLSProfile(transport config.EncryptedTransport) error {
	pem, err := readCertBundle(transport.CertFile)
	if err != nil {
		return models.NewConnectionError("failed to read certificate bundle", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return models.NewConnectionError(
			fmt.Sprintf("certificate bundle %q contains no usable certificates", transport.CertFile),
			ErrCertificateInvalid,
		)
	}

	return mysql.RegisterTLSConfig(tlsProfile, &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	})
}
