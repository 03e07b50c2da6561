package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Validation", NewValidationError("bad input"), fiber.StatusBadRequest},
		{"Not Found", NewNotFoundError("Post", "p1"), fiber.StatusNotFound},
		{"Forbidden", NewForbiddenError("not yours"), fiber.StatusForbidden},
		{"Connection", NewConnectionError("db down", errors.New("dial failed")), fiber.StatusServiceUnavailable},
		{"Internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"Bare Record Not Found", gorm.ErrRecordNotFound, fiber.StatusNotFound},
		{"Plain Error", errors.New("boom"), fiber.StatusInternalServerError},
		// Driver and network errors escaping a repository mid-request are
		// infrastructure failures, not server bugs.
		{"Invalid Connection", mysql.ErrInvalidConn, fiber.StatusServiceUnavailable},
		{"Bad Connection", fmt.Errorf("query: %w", driver.ErrBadConn), fiber.StatusServiceUnavailable},
		{"Network Op Error", &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset")}, fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForError(tt.err))
		})
	}
}
