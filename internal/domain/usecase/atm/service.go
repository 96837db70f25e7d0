package atm

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/entity"
	errs "github.com/amirhossein-jamali/atm-simulator/internal/domain/error"
	coreport "github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/atm-simulator/internal/domain/usecase/ledger"
)

var _ usecase.ATMUseCase = (*Service)(nil)

// Service is the ATM session controller. It owns the account number to ledger
// mapping and the single logged-in binding.
type Service struct {
	repo         persistence.AccountRepository
	schema       persistence.SchemaManager
	hasher       coreport.CredentialHasher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	seedDefaults bool

	ledgers map[string]*ledger.Ledger
	current *ledger.Ledger
}

// NewService creates a session controller with no accounts loaded; call Bootstrap before use
func NewService(
	repo persistence.AccountRepository,
	schema persistence.SchemaManager,
	hasher coreport.CredentialHasher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	seedDefaults bool,
) *Service {
	return &Service{
		repo:         repo,
		schema:       schema,
		hasher:       hasher,
		timeProvider: timeProvider,
		logger:       logger,
		seedDefaults: seedDefaults,
		ledgers:      make(map[string]*ledger.Ledger),
	}
}

// Bootstrap prepares the schema, seeds the sample accounts and loads every stored account
func (s *Service) Bootstrap(ctx context.Context) error {
	if err := s.schema.EnsureSchema(ctx); err != nil {
		s.logger.Error("Failed to ensure schema", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("ensure schema: %w", err)
	}

	if s.seedDefaults {
		if err := s.SeedDefaultAccounts(ctx); err != nil {
			return fmt.Errorf("seed default accounts: %w", err)
		}
	}

	return s.loadAccounts(ctx)
}

// loadAccounts instantiates a ledger for every stored row
func (s *Service) loadAccounts(ctx context.Context) error {
	records, err := s.repo.FetchAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load accounts", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("load accounts: %w", err)
	}

	for _, record := range records {
		l, err := ledger.NewLedger(record, s.repo, s.hasher, s.timeProvider, s.logger)
		if err != nil {
			s.logger.Warn("Skipping unusable account row", map[string]any{
				"account": record.AccountNumber,
				"error":   err.Error(),
			})
			continue
		}
		s.ledgers[l.ID()] = l
	}

	s.logger.Info("Accounts loaded", map[string]any{
		"count":          len(s.ledgers),
		"hash_algorithm": s.hasher.Algorithm(),
	})
	return nil
}

// CreateAccount stores a zero-balance account and loads its ledger. The
// in-memory map changes only after the store confirms the insert.
func (s *Service) CreateAccount(ctx context.Context, accountNumber, pin string) error {
	id, err := entity.NormalizeAccountNumber(accountNumber)
	if err != nil {
		return err
	}
	if _, exists := s.ledgers[id]; exists {
		return errs.ErrDuplicateAccount
	}
	if err := entity.ValidatePIN(pin); err != nil {
		return err
	}

	record := persistence.AccountRecord{
		AccountNumber: id,
		PINDigest:     s.hasher.Digest(pin),
		Balance:       0,
	}

	inserted, err := s.repo.InsertIfAbsent(ctx, record)
	if err != nil {
		perr := errs.NewPersistenceError("create account", id, err)
		s.logger.Error("Failed to create account", perr.(*errs.PersistenceError).LogFields())
		return perr
	}
	if !inserted {
		s.logger.Warn("Account already present in store", map[string]any{
			"account": id,
		})
		return errs.ErrDuplicateAccount
	}

	l, err := ledger.NewLedger(record, s.repo, s.hasher, s.timeProvider, s.logger)
	if err != nil {
		return err
	}
	s.ledgers[id] = l

	s.logger.Info("Account created", map[string]any{
		"account": id,
	})
	return nil
}

// HasAccount reports whether accountNumber (trimmed) is loaded
func (s *Service) HasAccount(accountNumber string) bool {
	_, ok := s.ledgers[strings.TrimSpace(accountNumber)]
	return ok
}

// Authenticate binds the session to the account when the PIN matches.
// Unknown accounts and wrong PINs fail the same way.
func (s *Service) Authenticate(_ context.Context, accountNumber, pin string) error {
	id := strings.TrimSpace(accountNumber)

	l, ok := s.ledgers[id]
	if !ok || !l.VerifyPIN(pin) {
		s.logger.Warn("Login failed", map[string]any{
			"account": id,
		})
		return errs.ErrAuthentication
	}

	s.current = l
	s.logger.Info("Login succeeded", map[string]any{
		"account": id,
	})
	return nil
}

// Logout clears the session binding; the ledger stays loaded for later logins
func (s *Service) Logout() {
	if s.current == nil {
		return
	}
	s.logger.Info("Logged out", map[string]any{
		"account": s.current.ID(),
	})
	s.current = nil
}

// Current returns the logged-in ledger
func (s *Service) Current() (usecase.AccountLedger, error) {
	if s.current == nil {
		return nil, errs.ErrNotLoggedIn
	}
	return s.current, nil
}

// IsLoggedIn reports whether an account is bound to the session
func (s *Service) IsLoggedIn() bool {
	return s.current != nil
}

// AccountCount returns the number of loaded ledgers
func (s *Service) AccountCount() int {
	return len(s.ledgers)
}
