package atm

import (
	"context"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/persistence"
)

// DefaultAccounts are the sample accounts every fresh store starts with
var DefaultAccounts = []struct {
	AccountNumber string
	PIN           string
}{
	{AccountNumber: "1001", PIN: "1234"},
	{AccountNumber: "1002", PIN: "5678"},
	{AccountNumber: "1003", PIN: "0000"},
}

// SeedDefaultAccounts inserts the sample accounts with a zero balance when they are absent.
// Existing rows are left untouched, so repeated startups never duplicate or reset them.
func (s *Service) SeedDefaultAccounts(ctx context.Context) error {
	for _, account := range DefaultAccounts {
		inserted, err := s.repo.InsertIfAbsent(ctx, persistence.AccountRecord{
			AccountNumber: account.AccountNumber,
			PINDigest:     s.hasher.Digest(account.PIN),
			Balance:       0,
		})
		if err != nil {
			s.logger.Error("Failed to seed default account", map[string]any{
				"account": account.AccountNumber,
				"error":   err.Error(),
			})
			return err
		}

		if inserted {
			s.logger.Info("Default account created", map[string]any{
				"account": account.AccountNumber,
			})
			continue
		}
		s.logger.Debug("Default account already exists", map[string]any{
			"account": account.AccountNumber,
		})
	}

	s.logger.Info("Default accounts created or verified", nil)
	return nil
}
