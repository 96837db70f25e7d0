package persistence

import (
	"context"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a testify mock of persistence.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock that asserts its expectations when the test ends
func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// FetchAll provides a mock function
func (m *MockAccountRepository) FetchAll(ctx context.Context) ([]persistence.AccountRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]persistence.AccountRecord)
	return records, args.Error(1)
}

// InsertIfAbsent provides a mock function
func (m *MockAccountRepository) InsertIfAbsent(ctx context.Context, record persistence.AccountRecord) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

// UpdateBalance provides a mock function
func (m *MockAccountRepository) UpdateBalance(ctx context.Context, accountNumber string, balance int64) error {
	args := m.Called(ctx, accountNumber, balance)
	return args.Error(0)
}

// UpdateDigest provides a mock function
func (m *MockAccountRepository) UpdateDigest(ctx context.Context, accountNumber string, digest string) error {
	args := m.Called(ctx, accountNumber, digest)
	return args.Error(0)
}
