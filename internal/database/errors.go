package database

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"os"

	"codemmunity/internal/models"

	"github.com/go-sql-driver/mysql"
)

// Sentinel causes for connection failures. They are wrapped inside a
// models.AppError with code CONNECTION_ERROR so callers can both map the
// failure to a status and inspect the cause with errors.Is.
var (
	ErrAuthenticationFailed = errors.New("database authentication failed")
	ErrNetworkUnreachable   = errors.New("database network unreachable")
	ErrCertificateInvalid   = errors.New("database certificate validation failed")
)

// MySQL server error numbers for rejected credentials.
const (
	mysqlErrDBAccessDenied   = 1044
	mysqlErrAccessDenied     = 1045
	mysqlErrAccessDeniedPass = 1698
)

func readCertBundle(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// classifyConnectionError distinguishes authentication failures, unreachable
// networks, and certificate validation failures, per the connection manager
// contract. Anything unrecognized is still a connection error, just without
// a specific cause.
func classifyConnectionError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDBAccessDenied, mysqlErrAccessDenied, mysqlErrAccessDeniedPass:
			return models.NewConnectionError(err.Error(), ErrAuthenticationFailed)
		}
	}

	var x509Unknown x509.UnknownAuthorityError
	var x509Invalid x509.CertificateInvalidError
	var x509Hostname x509.HostnameError
	// crypto/tls returns RecordHeaderError by value, so the target must be
	// value-typed for errors.As to match.
	var tlsRecord tls.RecordHeaderError
	var tlsCertVerify *tls.CertificateVerificationError
	if errors.As(err, &x509Unknown) ||
		errors.As(err, &x509Invalid) ||
		errors.As(err, &x509Hostname) ||
		errors.As(err, &tlsRecord) ||
		errors.As(err, &tlsCertVerify) {
		return models.NewConnectionError(err.Error(), ErrCertificateInvalid)
	}

	var netErr net.Error
	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.As(err, &netErr) || errors.Is(err, mysql.ErrInvalidConn) {
		return models.NewConnectionError(err.Error(), ErrNetworkUnreachable)
	}

	return models.NewConnectionError("database connection failed", err)
}
