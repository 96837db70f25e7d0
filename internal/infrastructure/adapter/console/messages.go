package console

import (
	"errors"

	errs "github.com/amirhossein-jamali/atm-simulator/internal/domain/error"
)

// Console text
const (
	msgAccountRequired   = "Account number required."
	msgAccountExists     = "Account number exists."
	msgPINTooShort       = "PIN must be at least 4 digits."
	msgAccountCreated    = "Account created. Initial balance: %s0."
	msgCreateFailed      = "Failed to create account."
	msgLoginSuccessful   = "Login successful."
	msgLoginFailed       = "Invalid account number or PIN."
	msgBalance           = "Balance: %s%s"
	msgInvalidAmount     = "Invalid amount."
	msgAmountNotPositive = "Amount must be > 0."
	msgAmountTooLarge    = "Amount too large."
	msgWithdrawOK        = "Withdrawal successful."
	msgInsufficient      = "Insufficient balance."
	msgDepositOK         = "Deposit successful."
	msgNoTransactions    = "No transactions this session."
	msgPINChanged        = "PIN changed successfully."
	msgPINChangeFailed   = "PIN change failed."
	msgPINWrongCurrent   = "PIN change failed: current PIN is incorrect."
	msgPINNewTooShort    = "PIN change failed: new PIN must be at least 4 digits."
	msgStoreFailed       = "Transaction could not be saved. Please try again."
	msgInvalidChoice     = "Invalid choice."
	msgInvalidOption     = "Invalid option."
	msgGoodbye           = "Goodbye."
)

// amountFailureMessage picks the console text for a failed deposit or withdrawal
func amountFailureMessage(err error) string {
	switch {
	case errs.IsInsufficientFundsError(err):
		return msgInsufficient
	case errors.Is(err, errs.ErrInvalidAmount):
		return msgAmountNotPositive
	case errors.Is(err, errs.ErrAmountOverflow):
		return msgAmountTooLarge
	default:
		return msgStoreFailed
	}
}

// changePINFailureMessage picks the console text for a failed PIN change
func changePINFailureMessage(err error) string {
	switch {
	case errs.IsAuthenticationError(err):
		return msgPINWrongCurrent
	case errors.Is(err, errs.ErrInvalidPIN):
		return msgPINNewTooShort
	default:
		return msgPINChangeFailed
	}
}

// createFailureMessage picks the console text for a failed account creation
func createFailureMessage(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvalidAccountID):
		return msgAccountRequired
	case errors.Is(err, errs.ErrDuplicateAccount):
		return msgAccountExists
	case errors.Is(err, errs.ErrInvalidPIN):
		return msgPINTooShort
	default:
		return msgCreateFailed
	}
}
