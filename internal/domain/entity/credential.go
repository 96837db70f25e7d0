package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	errs "github.com/amirhossein-jamali/atm-simulator/internal/domain/error"
)

// MinPINLength is the shortest PIN accepted at account creation and PIN change
const MinPINLength = 4

// ValidatePIN enforces the PIN length policy
func ValidatePIN(pin string) error {
	if utf8.RuneCountInString(pin) < MinPINLength {
		return fmt.Errorf("%w: must be at least %d characters", errs.ErrInvalidPIN, MinPINLength)
	}
	return nil
}

// NormalizeAccountNumber trims surrounding whitespace and rejects empty identifiers
func NormalizeAccountNumber(accountNumber string) (string, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return "", errs.ErrInvalidAccountID
	}
	return accountNumber, nil
}
