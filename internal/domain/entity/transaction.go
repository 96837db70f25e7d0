package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
)

// TransactionKind identifies the ledger operation a record describes
type TransactionKind string

// Transaction kinds
const (
	KindInquiry  TransactionKind = "INQUIRY"
	KindDeposit  TransactionKind = "DEPOSIT"
	KindWithdraw TransactionKind = "WITHDRAW"
)

// timestampLayout matches the receipt format printed at the console
const timestampLayout = "2006-01-02 15:04:05"

// TransactionRecord describes one ledger operation performed during the session.
// Records live only in memory and are owned by the ledger that appended them.
type TransactionRecord struct {
	Reference    string          // Receipt reference (UUID)
	Kind         TransactionKind // Operation kind
	Amount       int64           // Amount in minor units, 0 for inquiries
	BalanceAfter int64           // Balance snapshot after the operation
	Timestamp    time.Time       // Capture time
}

// NewTransactionRecord stamps a record with a fresh reference and the provider's clock
func NewTransactionRecord(kind TransactionKind, amount, balanceAfter int64, timeProvider coreport.TimeProvider) TransactionRecord {
	return TransactionRecord{
		Reference:    uuid.NewString(),
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Timestamp:    timeProvider.Now(),
	}
}

// Format renders the record as a receipt line using the given currency symbol
func (r TransactionRecord) Format(currencySymbol string) string {
	return fmt.Sprintf("[%s] %-10s | Amount: %s%s | Balance: %s%s | Ref: %s",
		r.Timestamp.Format(timestampLayout),
		r.Kind,
		currencySymbol, FormatAmount(r.Amount),
		currencySymbol, FormatAmount(r.BalanceAfter),
		shortReference(r.Reference),
	)
}

// String implements fmt.Stringer without a currency symbol
func (r TransactionRecord) String() string {
	return r.Format("")
}

func shortReference(reference string) string {
	if len(reference) > 8 {
		return reference[:8]
	}
	return reference
}
