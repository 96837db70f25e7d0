package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/atm-simulator/internal/domain/error"
	"gorm.io/gorm"
)

// ErrorType represents the class of a driver error
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	NotFoundError     ErrorType = "not_found"
	TransientError    ErrorType = "transient"
	ConnectionError   ErrorType = "connection"
)

// ErrorMapper maps sqlite, postgres and mysql driver errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// Classify returns the class of err, or "" when it is not recognised
func (m *ErrorMapper) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFoundError
	case m.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case m.IsTransientError(err):
		return TransientError
	case m.IsConnectionError(err):
		return ConnectionError
	default:
		return ""
	}
}

// IsDuplicateKeyError checks if the error is a unique constraint violation
func (m *ErrorMapper) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "Duplicate entry")
}

// IsTransientError checks if an error is transient and the statement can be retried
func (m *ErrorMapper) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "too many connections") ||
		strings.Contains(msg, "server closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "timeout")
}

// IsConnectionError checks if the error is related to database connectivity
func (m *ErrorMapper) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection") ||
		strings.Contains(msg, "dial") ||
		strings.Contains(msg, "network") ||
		strings.Contains(msg, "unable to open database")
}

// MapError maps a database error to a domain error, keeping the driver text
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch m.Classify(err) {
	case NotFoundError:
		return errs.ErrAccountNotFound
	case DuplicateKeyError:
		return errs.ErrDuplicateAccount
	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
	}
}
