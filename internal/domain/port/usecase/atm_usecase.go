package usecase

import (
	"context"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/entity"
)

// AccountLedger is the operation surface of one loaded account
type AccountLedger interface {
	// ID returns the account number
	ID() string

	// VerifyPIN reports whether pin matches the stored digest
	VerifyPIN(pin string) bool

	// Inquire records an INQUIRY and returns the balance in minor units
	Inquire() int64

	// Deposit adds amount (minor units) after persisting the new balance
	Deposit(ctx context.Context, amount int64) error

	// Withdraw subtracts amount (minor units) after persisting the new balance
	Withdraw(ctx context.Context, amount int64) error

	// ChangePIN replaces the digest after verifying oldPIN and persisting the new digest
	ChangePIN(ctx context.Context, oldPIN, newPIN string) error

	// History returns a copy of this session's transaction records in order
	History() []entity.TransactionRecord
}

// ATMUseCase defines the session controller used by the console
type ATMUseCase interface {
	// Bootstrap prepares the schema, seeds the sample accounts and loads every ledger
	Bootstrap(ctx context.Context) error

	// SeedDefaultAccounts inserts the sample accounts when they are absent
	SeedDefaultAccounts(ctx context.Context) error

	// CreateAccount stores a zero-balance account and loads its ledger; it does not log in
	CreateAccount(ctx context.Context, accountNumber, pin string) error

	// HasAccount reports whether accountNumber is loaded
	HasAccount(accountNumber string) bool

	// Authenticate binds the session to the account when the PIN matches
	Authenticate(ctx context.Context, accountNumber, pin string) error

	// Logout clears the session binding; the ledger stays loaded
	Logout()

	// Current returns the bound ledger or ErrNotLoggedIn
	Current() (AccountLedger, error)

	// IsLoggedIn reports whether an account is bound
	IsLoggedIn() bool

	// AccountCount returns the number of loaded ledgers
	AccountCount() int
}
