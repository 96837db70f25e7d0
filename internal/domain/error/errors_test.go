package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrInsufficientFunds.Error() != "insufficient funds" {
		t.Errorf("ErrInsufficientFunds has unexpected message: %s", ErrInsufficientFunds.Error())
	}
	if ErrInvalidAmount.Error() != "invalid amount" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientFunds", ErrInsufficientFunds, 4001},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"InvalidAccountID", ErrInvalidAccountID, 4003},
		{"DuplicateAccount", ErrDuplicateAccount, 4004},
		{"InvalidPIN", ErrInvalidPIN, 4005},
		{"AmountOverflow", ErrAmountOverflow, 4006},
		{"Authentication", ErrAuthentication, 4010},
		{"NotLoggedIn", ErrNotLoggedIn, 4011},
		{"AccountNotFound", ErrAccountNotFound, 4040},
		{"DatabaseConnection", ErrDatabaseConnection, 5000},
		{"UnknownError", errors.New("unknown error"), 5001},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidPIN), 4005},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError("2001", "1000.00", "300.00")

	expected := "insufficient funds for account 2001: requested 1000.00, available 300.00"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("errors.Is(err, ErrInsufficientFunds) = false, want true")
	}
	if errors.Is(err, ErrInvalidAmount) {
		t.Errorf("insufficient funds must not match ErrInvalidAmount")
	}

	var detailed *InsufficientFundsError
	if !errors.As(err, &detailed) {
		t.Fatalf("errors.As failed for InsufficientFundsError")
	}
	fields := detailed.LogFields()
	if fields["error_code"] != CodeInsufficientFunds {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeInsufficientFunds)
	}
}

func TestPersistenceError(t *testing.T) {
	cause := fmt.Errorf("%w: disk I/O error", ErrDatabaseConnection)
	err := NewPersistenceError("update balance", "1001", cause)

	expected := "failed to update balance for account 1001: database connection error: disk I/O error"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrDatabaseConnection) {
		t.Errorf("errors.Is(err, ErrDatabaseConnection) = false, want true")
	}
	if ErrorCode(err) != CodeDatabaseConnection {
		t.Errorf("ErrorCode = %d, want %d", ErrorCode(err), CodeDatabaseConnection)
	}
}

func TestErrorHelperFunctions(t *testing.T) {
	if !IsInsufficientFundsError(NewInsufficientFundsError("1", "2.00", "1.00")) {
		t.Error("IsInsufficientFundsError should be true")
	}
	if !IsAuthenticationError(fmt.Errorf("login: %w", ErrAuthentication)) {
		t.Error("IsAuthenticationError should see wrapped errors")
	}
	if IsInsufficientFundsError(ErrInvalidAmount) {
		t.Error("invalid amount is not insufficient funds")
	}
	if IsAuthenticationError(NewPersistenceError("update PIN", "1", ErrDatabaseConnection)) {
		t.Error("a store failure is not an authentication error")
	}
}
