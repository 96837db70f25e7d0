package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSchemaManager is a testify mock of persistence.SchemaManager
type MockSchemaManager struct {
	mock.Mock
}

// NewMockSchemaManager creates a mock that asserts its expectations when the test ends
func NewMockSchemaManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSchemaManager {
	m := &MockSchemaManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EnsureSchema provides a mock function
func (m *MockSchemaManager) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
