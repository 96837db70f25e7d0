package ledger

import (
	"context"
	"crypto/subtle"
	"fmt"
	"math"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/entity"
	errs "github.com/amirhossein-jamali/atm-simulator/internal/domain/error"
	coreport "github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/usecase"
)

var _ usecase.AccountLedger = (*Ledger)(nil)

// Ledger is the in-memory, durably backed state of one account.
// Balance and digest change only through its methods, and only after the
// store has accepted the new value.
type Ledger struct {
	id      string
	balance int64 // minor units, never negative
	digest  string

	repo         persistence.AccountRepository
	hasher       coreport.CredentialHasher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	history      *entity.TransactionLog
}

// NewLedger builds a ledger from a stored account record
func NewLedger(
	record persistence.AccountRecord,
	repo persistence.AccountRepository,
	hasher coreport.CredentialHasher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) (*Ledger, error) {
	id, err := entity.NormalizeAccountNumber(record.AccountNumber)
	if err != nil {
		return nil, err
	}
	if record.Balance < 0 {
		return nil, fmt.Errorf("%w: account %s has negative balance %s",
			errs.ErrInternal, id, entity.FormatAmount(record.Balance))
	}

	return &Ledger{
		id:           id,
		balance:      record.Balance,
		digest:       record.PINDigest,
		repo:         repo,
		hasher:       hasher,
		timeProvider: timeProvider,
		logger:       logger,
		history:      entity.NewTransactionLog(),
	}, nil
}

// ID returns the account number
func (l *Ledger) ID() string {
	return l.id
}

// Balance returns the current balance without recording an inquiry
func (l *Ledger) Balance() int64 {
	return l.balance
}

// VerifyPIN compares the digest of pin with the stored digest
func (l *Ledger) VerifyPIN(pin string) bool {
	return subtle.ConstantTimeCompare([]byte(l.hasher.Digest(pin)), []byte(l.digest)) == 1
}

// Inquire records an INQUIRY and returns the current balance
func (l *Ledger) Inquire() int64 {
	l.history.Append(entity.NewTransactionRecord(entity.KindInquiry, 0, l.balance, l.timeProvider))

	l.logger.Debug("Balance inquiry", map[string]any{
		"account": l.id,
		"balance": entity.FormatAmount(l.balance),
	})
	return l.balance
}

// Deposit adds amount to the balance
func (l *Ledger) Deposit(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit must be greater than zero", errs.ErrInvalidAmount)
	}
	if amount > math.MaxInt64-l.balance {
		return errs.ErrAmountOverflow
	}

	newBalance := l.balance + amount
	if err := l.persistBalance(ctx, "deposit", newBalance); err != nil {
		return err
	}

	l.balance = newBalance
	l.history.Append(entity.NewTransactionRecord(entity.KindDeposit, amount, l.balance, l.timeProvider))

	l.logger.Info("Deposit completed", map[string]any{
		"account":     l.id,
		"amount":      entity.FormatAmount(amount),
		"new_balance": entity.FormatAmount(l.balance),
	})
	return nil
}

// Withdraw subtracts amount from the balance when funds allow
func (l *Ledger) Withdraw(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdrawal must be greater than zero", errs.ErrInvalidAmount)
	}
	if amount > l.balance {
		err := errs.NewInsufficientFundsError(l.id, entity.FormatAmount(amount), entity.FormatAmount(l.balance))
		l.logger.Warn("Withdrawal rejected", err.(*errs.InsufficientFundsError).LogFields())
		return err
	}

	newBalance := l.balance - amount
	if err := l.persistBalance(ctx, "withdraw", newBalance); err != nil {
		return err
	}

	l.balance = newBalance
	l.history.Append(entity.NewTransactionRecord(entity.KindWithdraw, amount, l.balance, l.timeProvider))

	l.logger.Info("Withdrawal completed", map[string]any{
		"account":     l.id,
		"amount":      entity.FormatAmount(amount),
		"new_balance": entity.FormatAmount(l.balance),
	})
	return nil
}

// ChangePIN rotates the credential. It does not add a history record.
func (l *Ledger) ChangePIN(ctx context.Context, oldPIN, newPIN string) error {
	if !l.VerifyPIN(oldPIN) {
		l.logger.Warn("PIN change rejected: current PIN mismatch", map[string]any{
			"account": l.id,
		})
		return errs.ErrAuthentication
	}
	if err := entity.ValidatePIN(newPIN); err != nil {
		return err
	}

	digest := l.hasher.Digest(newPIN)
	if err := l.repo.UpdateDigest(ctx, l.id, digest); err != nil {
		perr := errs.NewPersistenceError("update PIN", l.id, err)
		l.logger.Error("Failed to persist PIN change", perr.(*errs.PersistenceError).LogFields())
		return perr
	}

	l.digest = digest
	l.logger.Info("PIN changed", map[string]any{
		"account": l.id,
	})
	return nil
}

// History returns a copy of the session records in the order they were appended
func (l *Ledger) History() []entity.TransactionRecord {
	return l.history.Records()
}

// persistBalance writes the new balance before any in-memory change
func (l *Ledger) persistBalance(ctx context.Context, operation string, newBalance int64) error {
	if err := l.repo.UpdateBalance(ctx, l.id, newBalance); err != nil {
		perr := errs.NewPersistenceError("update balance", l.id, err)
		fields := perr.(*errs.PersistenceError).LogFields()
		fields["ledger_operation"] = operation
		fields["attempted_balance"] = entity.FormatAmount(newBalance)
		l.logger.Error("Failed to persist balance", fields)
		return perr
	}
	return nil
}
