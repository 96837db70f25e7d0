package atm

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/entity"
	errs "github.com/amirhossein-jamali/atm-simulator/internal/domain/error"
	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/persistence"
	coremocks "github.com/amirhossein-jamali/atm-simulator/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/atm-simulator/mocks/port/persistence"
)

type stubHasher struct{}

func (stubHasher) Digest(pin string) string { return "digest:" + pin }
func (stubHasher) Algorithm() string        { return "stub" }

// memoryRepository keeps rows in a map so scenarios can observe durable state
type memoryRepository struct {
	rows map[string]persistence.AccountRecord
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[string]persistence.AccountRecord)}
}

func (r *memoryRepository) FetchAll(context.Context) ([]persistence.AccountRecord, error) {
	out := make([]persistence.AccountRecord, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, nil
}

func (r *memoryRepository) InsertIfAbsent(_ context.Context, record persistence.AccountRecord) (bool, error) {
	if _, ok := r.rows[record.AccountNumber]; ok {
		return false, nil
	}
	r.rows[record.AccountNumber] = record
	return true, nil
}

func (r *memoryRepository) UpdateBalance(_ context.Context, accountNumber string, balance int64) error {
	row, ok := r.rows[accountNumber]
	if !ok {
		return errs.ErrAccountNotFound
	}
	row.Balance = balance
	r.rows[accountNumber] = row
	return nil
}

func (r *memoryRepository) UpdateDigest(_ context.Context, accountNumber string, digest string) error {
	row, ok := r.rows[accountNumber]
	if !ok {
		return errs.ErrAccountNotFound
	}
	row.PINDigest = digest
	r.rows[accountNumber] = row
	return nil
}

func quietLogger(t *testing.T) *coremocks.MockLogger {
	mockLogger := coremocks.NewMockLogger(t)
	mockLogger.On("Debug", mock.Anything, mock.Anything).Maybe()
	mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()
	mockLogger.On("Warn", mock.Anything, mock.Anything).Maybe()
	mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()
	return mockLogger
}

func fixedClock(t *testing.T) *coremocks.MockTimeProvider {
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)).Maybe()
	return mockTime
}

func newScenarioService(t *testing.T, repo *memoryRepository, seed bool) *Service {
	t.Helper()
	schema := persistencemocks.NewMockSchemaManager(t)
	schema.On("EnsureSchema", mock.Anything).Return(nil)

	svc := NewService(repo, schema, stubHasher{}, fixedClock(t), quietLogger(t), seed)
	require.NoError(t, svc.Bootstrap(context.Background()))
	return svc
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeds and loads default accounts", func(t *testing.T) {
		repo := newMemoryRepository()
		svc := newScenarioService(t, repo, true)

		assert.Equal(t, 3, svc.AccountCount())
		assert.False(t, svc.IsLoggedIn())
		for _, account := range DefaultAccounts {
			assert.NoError(t, svc.Authenticate(ctx, account.AccountNumber, account.PIN))
		}
	})

	t.Run("Repeated bootstrap is idempotent", func(t *testing.T) {
		repo := newMemoryRepository()
		first := newScenarioService(t, repo, true)
		require.NoError(t, first.Authenticate(ctx, "1001", "1234"))
		current, err := first.Current()
		require.NoError(t, err)
		require.NoError(t, current.Deposit(ctx, 2500))

		second := newScenarioService(t, repo, true)
		third := newScenarioService(t, repo, true)

		assert.Len(t, repo.rows, 3)
		assert.Equal(t, 3, second.AccountCount())
		assert.Equal(t, 3, third.AccountCount())
		assert.Equal(t, int64(2500), repo.rows["1001"].Balance, "seeding must not reset balances")
	})

	t.Run("Seeding disabled", func(t *testing.T) {
		svc := newScenarioService(t, newMemoryRepository(), false)
		assert.Equal(t, 0, svc.AccountCount())
	})

	t.Run("Schema failure stops bootstrap", func(t *testing.T) {
		schema := persistencemocks.NewMockSchemaManager(t)
		mockRepo := persistencemocks.NewMockAccountRepository(t)
		schema.On("EnsureSchema", ctx).Return(errs.ErrDatabaseConnection).Once()

		svc := NewService(mockRepo, schema, stubHasher{}, fixedClock(t), quietLogger(t), true)
		err := svc.Bootstrap(ctx)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		mockRepo.AssertNotCalled(t, "FetchAll", mock.Anything)
	})

	t.Run("Unusable rows are skipped", func(t *testing.T) {
		schema := persistencemocks.NewMockSchemaManager(t)
		mockRepo := persistencemocks.NewMockAccountRepository(t)
		schema.On("EnsureSchema", ctx).Return(nil).Once()
		mockRepo.On("FetchAll", ctx).Return([]persistence.AccountRecord{
			{AccountNumber: "1001", PINDigest: "digest:1234", Balance: 100},
			{AccountNumber: "bad", PINDigest: "digest:1234", Balance: -5},
		}, nil).Once()

		svc := NewService(mockRepo, schema, stubHasher{}, fixedClock(t), quietLogger(t), false)

		require.NoError(t, svc.Bootstrap(ctx))
		assert.Equal(t, 1, svc.AccountCount())
	})
}

func TestSeedDefaultAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("Inserts hashed PINs with zero balance", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockAccountRepository(t)
		for _, account := range DefaultAccounts {
			mockRepo.On("InsertIfAbsent", ctx, persistence.AccountRecord{
				AccountNumber: account.AccountNumber,
				PINDigest:     "digest:" + account.PIN,
				Balance:       0,
			}).Return(true, nil).Once()
		}

		svc := NewService(mockRepo, nil, stubHasher{}, fixedClock(t), quietLogger(t), true)
		assert.NoError(t, svc.SeedDefaultAccounts(ctx))
	})

	t.Run("Store error is returned", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockAccountRepository(t)
		dbErr := errors.New("database insert error")
		mockRepo.On("InsertIfAbsent", ctx, mock.Anything).Return(false, dbErr).Once()

		svc := NewService(mockRepo, nil, stubHasher{}, fixedClock(t), quietLogger(t), true)
		assert.Equal(t, dbErr, svc.SeedDefaultAccounts(ctx))
	})
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a zero-balance account without logging in", func(t *testing.T) {
		repo := newMemoryRepository()
		svc := newScenarioService(t, repo, false)

		require.NoError(t, svc.CreateAccount(ctx, " 2001 ", "4321"))

		assert.Equal(t, persistence.AccountRecord{
			AccountNumber: "2001",
			PINDigest:     "digest:4321",
			Balance:       0,
		}, repo.rows["2001"])
		assert.Equal(t, 1, svc.AccountCount())
		assert.True(t, svc.HasAccount("2001"))
		assert.True(t, svc.HasAccount(" 2001"))
		assert.False(t, svc.HasAccount("2002"))
		assert.False(t, svc.IsLoggedIn())
	})

	t.Run("Validation", func(t *testing.T) {
		svc := newScenarioService(t, newMemoryRepository(), true)

		assert.ErrorIs(t, svc.CreateAccount(ctx, "", "4321"), errs.ErrInvalidAccountID)
		assert.ErrorIs(t, svc.CreateAccount(ctx, "   ", "4321"), errs.ErrInvalidAccountID)
		assert.ErrorIs(t, svc.CreateAccount(ctx, "2001", "123"), errs.ErrInvalidPIN)
		assert.ErrorIs(t, svc.CreateAccount(ctx, "1001", "9999"), errs.ErrDuplicateAccount)
		assert.Equal(t, 3, svc.AccountCount())
	})

	t.Run("Duplicate leaves the original row unchanged", func(t *testing.T) {
		repo := newMemoryRepository()
		svc := newScenarioService(t, repo, false)
		require.NoError(t, svc.CreateAccount(ctx, "2001", "4321"))
		require.NoError(t, svc.Authenticate(ctx, "2001", "4321"))
		current, _ := svc.Current()
		require.NoError(t, current.Deposit(ctx, 50000))

		err := svc.CreateAccount(ctx, "2001", "9999")

		assert.ErrorIs(t, err, errs.ErrDuplicateAccount)
		assert.Len(t, repo.rows, 1)
		assert.Equal(t, int64(50000), repo.rows["2001"].Balance)
		assert.Equal(t, "digest:4321", repo.rows["2001"].PINDigest)
	})

	t.Run("Store reports existing row", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockAccountRepository(t)
		mockRepo.On("InsertIfAbsent", ctx, mock.Anything).Return(false, nil).Once()

		svc := NewService(mockRepo, nil, stubHasher{}, fixedClock(t), quietLogger(t), false)
		err := svc.CreateAccount(ctx, "2001", "4321")

		assert.ErrorIs(t, err, errs.ErrDuplicateAccount)
		assert.Equal(t, 0, svc.AccountCount())
	})

	t.Run("Store failure leaves no partial state", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockAccountRepository(t)
		mockRepo.On("InsertIfAbsent", ctx, mock.Anything).Return(false, errs.ErrDatabaseConnection).Once()

		svc := NewService(mockRepo, nil, stubHasher{}, fixedClock(t), quietLogger(t), false)
		err := svc.CreateAccount(ctx, "2001", "4321")

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		var perr *errs.PersistenceError
		assert.ErrorAs(t, err, &perr)
		assert.Equal(t, 0, svc.AccountCount())
		assert.ErrorIs(t, svc.Authenticate(ctx, "2001", "4321"), errs.ErrAuthentication)
	})
}

func TestAuthenticateAndLogout(t *testing.T) {
	ctx := context.Background()
	svc := newScenarioService(t, newMemoryRepository(), false)
	require.NoError(t, svc.CreateAccount(ctx, "2001", "4321"))

	t.Run("Unknown account and wrong PIN fail identically", func(t *testing.T) {
		assert.ErrorIs(t, svc.Authenticate(ctx, "9999", "4321"), errs.ErrAuthentication)
		assert.ErrorIs(t, svc.Authenticate(ctx, "2001", "4322"), errs.ErrAuthentication)
		assert.False(t, svc.IsLoggedIn())

		_, err := svc.Current()
		assert.ErrorIs(t, err, errs.ErrNotLoggedIn)
	})

	t.Run("Login, logout and login again keeps the ledger", func(t *testing.T) {
		require.NoError(t, svc.Authenticate(ctx, "2001", "4321"))
		current, err := svc.Current()
		require.NoError(t, err)
		assert.Equal(t, "2001", current.ID())
		current.Inquire()

		svc.Logout()
		assert.False(t, svc.IsLoggedIn())
		svc.Logout()

		require.NoError(t, svc.Authenticate(ctx, "2001", "4321"))
		again, _ := svc.Current()
		assert.Len(t, again.History(), 1, "session history survives logout within the process")
	})
}

func TestSessionScenario(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc := newScenarioService(t, repo, true)

	require.NoError(t, svc.CreateAccount(ctx, "2001", "4321"))
	require.NoError(t, svc.Authenticate(ctx, "2001", "4321"))
	current, err := svc.Current()
	require.NoError(t, err)

	require.NoError(t, current.Deposit(ctx, 50000))
	assert.Equal(t, int64(50000), repo.rows["2001"].Balance)

	require.NoError(t, current.Withdraw(ctx, 20000))
	assert.Equal(t, int64(30000), repo.rows["2001"].Balance)

	assert.ErrorIs(t, current.Withdraw(ctx, 100000), errs.ErrInsufficientFunds)
	assert.Equal(t, int64(30000), repo.rows["2001"].Balance)

	history := current.History()
	require.Len(t, history, 2)
	assert.Equal(t, entity.KindDeposit, history[0].Kind)
	assert.Equal(t, int64(50000), history[0].Amount)
	assert.Equal(t, int64(50000), history[0].BalanceAfter)
	assert.Equal(t, entity.KindWithdraw, history[1].Kind)
	assert.Equal(t, int64(20000), history[1].Amount)
	assert.Equal(t, int64(30000), history[1].BalanceAfter)

	t.Run("PIN rotation", func(t *testing.T) {
		require.NoError(t, current.ChangePIN(ctx, "4321", "8765"))
		svc.Logout()

		assert.ErrorIs(t, svc.Authenticate(ctx, "2001", "4321"), errs.ErrAuthentication)
		assert.NoError(t, svc.Authenticate(ctx, "2001", "8765"))
		assert.Equal(t, "digest:8765", repo.rows["2001"].PINDigest)
	})
}
