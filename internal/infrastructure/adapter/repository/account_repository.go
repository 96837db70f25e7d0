package repository

import (
	"context"

	errs "github.com/amirhossein-jamali/atm-simulator/internal/domain/error"
	coreport "github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ persistence.AccountRepository = (*AccountRepository)(nil)

// AccountRepository implements the durable record store using GORM.
// Every method is a single auto-committed statement.
type AccountRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *database.ErrorMapper
	retry        database.RetryConfig
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  database.NewErrorMapper(),
		retry:        database.DefaultRetryConfig(),
	}
}

// handleDatabaseError logs a driver error and maps it to a domain error
func (r *AccountRepository) handleDatabaseError(operation string, err error, accountNumber string) error {
	r.logger.Error("Database error when "+operation, map[string]any{
		"account": accountNumber,
		"error":   err.Error(),
	})
	return r.errorMapper.MapError(err, operation)
}

// FetchAll returns every stored account ordered by account number
func (r *AccountRepository) FetchAll(ctx context.Context) ([]persistence.AccountRecord, error) {
	var rows []model.Account
	if err := r.db.WithContext(ctx).Order("account_number").Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("fetching accounts", err, "")
	}

	records := make([]persistence.AccountRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, persistence.AccountRecord{
			AccountNumber: row.AccountNumber,
			PINDigest:     row.PINDigest,
			Balance:       row.Balance,
		})
	}

	r.logger.Debug("Accounts fetched", map[string]any{
		"count": len(records),
	})
	return records, nil
}

// InsertIfAbsent stores record unless the account number already exists.
// An existing row is never overwritten.
func (r *AccountRepository) InsertIfAbsent(ctx context.Context, record persistence.AccountRecord) (bool, error) {
	now := r.timeProvider.Now()
	row := model.Account{
		AccountNumber: record.AccountNumber,
		PINDigest:     record.PINDigest,
		Balance:       record.Balance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var inserted bool
	err := database.RetryOnTransientError(ctx, r.retry, func() error {
		tx := r.db.WithContext(ctx)
		if tx.Dialector.Name() != database.DriverMySQL {
			tx = tx.Clauses(clause.OnConflict{DoNothing: true})
		}
		// MySQL reports the duplicate-key error instead, handled below
		result := tx.Create(&row)
		if result.Error != nil {
			return result.Error
		}
		inserted = result.RowsAffected == 1
		return nil
	}, r.errorMapper, r.logger)

	if err != nil {
		if r.errorMapper.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, r.handleDatabaseError("inserting account", err, record.AccountNumber)
	}

	r.logger.Debug("Insert if absent", map[string]any{
		"account":  record.AccountNumber,
		"inserted": inserted,
	})
	return inserted, nil
}

// UpdateBalance overwrites the stored balance
func (r *AccountRepository) UpdateBalance(ctx context.Context, accountNumber string, balance int64) error {
	return r.updateColumn(ctx, "updating balance", accountNumber, "balance", balance)
}

// UpdateDigest overwrites the stored PIN digest
func (r *AccountRepository) UpdateDigest(ctx context.Context, accountNumber string, digest string) error {
	return r.updateColumn(ctx, "updating PIN digest", accountNumber, "pin", digest)
}

// updateColumn sets one column plus updated_at. Zero affected rows means the
// account does not exist; the MySQL DSN sets clientFoundRows so unchanged rows still count.
func (r *AccountRepository) updateColumn(ctx context.Context, operation, accountNumber, column string, value any) error {
	var rowsAffected int64
	err := database.RetryOnTransientError(ctx, r.retry, func() error {
		result := r.db.WithContext(ctx).Model(&model.Account{}).
			Where("account_number = ?", accountNumber).
			Updates(map[string]any{
				column:       value,
				"updated_at": r.timeProvider.Now(),
			})
		rowsAffected = result.RowsAffected
		return result.Error
	}, r.errorMapper, r.logger)

	if err != nil {
		return r.handleDatabaseError(operation, err, accountNumber)
	}

	if rowsAffected == 0 {
		r.logger.Warn("Account not found during update", map[string]any{
			"account":   accountNumber,
			"operation": operation,
		})
		return errs.ErrAccountNotFound
	}

	r.logger.Debug("Account updated", map[string]any{
		"account":   accountNumber,
		"operation": operation,
	})
	return nil
}
