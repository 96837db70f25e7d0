package persistence

import (
	"context"
)

// AccountRecord is one durable account row as the store sees it
type AccountRecord struct {
	AccountNumber string
	PINDigest     string
	Balance       int64 // minor units
}

// AccountRepository defines the keyed record store behind the account ledgers.
// Every write is committed before the call returns.
type AccountRepository interface {
	// FetchAll returns every stored account ordered by account number
	//
	// Possible errors:
	// - ErrDatabaseConnection: If the query fails
	FetchAll(ctx context.Context) ([]AccountRecord, error)

	// InsertIfAbsent stores a new account unless the account number is taken.
	// Returns true when a row was inserted and false when one already existed;
	// an existing row is never overwritten.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If the insert fails for another reason
	InsertIfAbsent(ctx context.Context, record AccountRecord) (bool, error)

	// UpdateBalance overwrites the balance of an existing account
	//
	// Possible errors:
	// - ErrAccountNotFound: If no row has the account number
	// - ErrDatabaseConnection: If the update fails
	UpdateBalance(ctx context.Context, accountNumber string, balance int64) error

	// UpdateDigest overwrites the PIN digest of an existing account
	//
	// Possible errors:
	// - ErrAccountNotFound: If no row has the account number
	// - ErrDatabaseConnection: If the update fails
	UpdateDigest(ctx context.Context, accountNumber string, digest string) error
}

// SchemaManager prepares the store for use
type SchemaManager interface {
	// EnsureSchema creates or upgrades the schema; safe to call on every start
	EnsureSchema(ctx context.Context) error
}
