package error

import (
	"errors"
	"fmt"
)

// Error codes reported in structured log fields
const (
	// 4xxx - Client errors
	CodeInsufficientFunds = 4001
	CodeInvalidAmount     = 4002
	CodeInvalidAccountID  = 4003
	CodeDuplicateAccount  = 4004
	CodeInvalidPIN        = 4005
	CodeAmountOverflow    = 4006
	CodeAuthentication    = 4010
	CodeNotLoggedIn       = 4011
	CodeAccountNotFound   = 4040

	// 5xxx - Store errors
	CodeDatabaseConnection = 5000
	CodeInternal           = 5001
)

// Base error types
var (
	// ErrInsufficientFunds is returned when a withdrawal exceeds the current balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned when an amount is malformed or not strictly positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountOverflow is returned when a deposit would overflow the balance
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidAccountID is returned when an account identifier is empty
	ErrInvalidAccountID = errors.New("account number is required")

	// ErrInvalidPIN is returned when a PIN does not meet the minimum length policy
	ErrInvalidPIN = errors.New("PIN does not meet the length policy")

	// ErrDuplicateAccount is returned when creating an account that already exists
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrAccountNotFound is returned when the store holds no row for an account
	ErrAccountNotFound = errors.New("account not found")

	// ErrAuthentication is returned for an unknown account or a PIN mismatch
	ErrAuthentication = errors.New("invalid account number or PIN")

	// ErrNotLoggedIn is returned when a session operation runs without a bound account
	ErrNotLoggedIn = errors.New("no account is logged in")

	// ErrDatabaseConnection is returned when the record store cannot complete a call
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternal is returned for unexpected failures
	ErrInternal = errors.New("internal error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrInvalidAccountID):
		return CodeInvalidAccountID
	case errors.Is(err, ErrInvalidPIN):
		return CodeInvalidPIN
	case errors.Is(err, ErrDuplicateAccount):
		return CodeDuplicateAccount
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrAuthentication):
		return CodeAuthentication
	case errors.Is(err, ErrNotLoggedIn):
		return CodeNotLoggedIn
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternal
	}
}

// InsufficientFundsError carries the balance and requested amount of a rejected withdrawal
type InsufficientFundsError struct {
	AccountID      string
	Amount         string
	CurrentBalance string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for account %s: requested %s, available %s",
		e.AccountID, e.Amount, e.CurrentBalance)
}

// Is reports whether target is ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"account":         e.AccountID,
		"amount":          e.Amount,
		"current_balance": e.CurrentBalance,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a detailed insufficient funds error
func NewInsufficientFundsError(accountID, amount, currentBalance string) error {
	return &InsufficientFundsError{
		AccountID:      accountID,
		Amount:         amount,
		CurrentBalance: currentBalance,
	}
}

// PersistenceError describes a failed durable write for one account
type PersistenceError struct {
	Operation string
	AccountID string
	Err       error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s for account %s: %v", e.Operation, e.AccountID, e.Err)
}

// Unwrap returns the underlying error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PersistenceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "persistence_error",
		"operation":  e.Operation,
		"account":    e.AccountID,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewPersistenceError wraps a store failure with the operation that triggered it
func NewPersistenceError(operation, accountID string, err error) error {
	return &PersistenceError{
		Operation: operation,
		AccountID: accountID,
		Err:       err,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsAuthenticationError checks if the error is a credential failure
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}
