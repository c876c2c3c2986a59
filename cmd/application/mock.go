package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/coursemap"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/errors"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	CoursemapFunc    func() (coursemap.Client, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Coursemap returns the service using the mock function.
func (m *Mock) Coursemap() (coursemap.Client, error) {
	if m.CoursemapFunc != nil {
		return m.CoursemapFunc()
	}
	return nil, errors.NewConfigError("application", "no coursemap client configured", nil)
}

// Catalog returns the live catalog of the mocked service.
func (m *Mock) Catalog() (*catalogs.Catalog, error) {
	cm, err := m.Coursemap()
	if err != nil {
		return nil, err
	}
	return cm.Catalog()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
