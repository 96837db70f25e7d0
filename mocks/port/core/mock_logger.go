package core

import (
	coreport "github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockLogger is a testify mock of core.Logger
type MockLogger struct {
	mock.Mock
}

// NewMockLogger creates a mock that asserts its expectations when the test ends
func NewMockLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogger {
	m := &MockLogger{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// SetLevel provides a mock function
func (m *MockLogger) SetLevel(level coreport.LogLevel) {
	m.Called(level)
}

// GetLevel provides a mock function
func (m *MockLogger) GetLevel() coreport.LogLevel {
	args := m.Called()
	return args.Get(0).(coreport.LogLevel)
}

// Debug provides a mock function
func (m *MockLogger) Debug(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Info provides a mock function
func (m *MockLogger) Info(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Warn provides a mock function
func (m *MockLogger) Warn(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Error provides a mock function
func (m *MockLogger) Error(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Flush provides a mock function
func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}
