// File: internal/mocks/mocks.go
package mocks

import (
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/xkilldash9x/lattice/internal/browser/dom"
	"github.com/xkilldash9x/lattice/internal/config"
)

// -- Config Mock --

// MockConfig mocks the config.Interface.
type MockConfig struct {
	mock.Mock
}

// --- Getters ---

func (m *MockConfig) Logger() config.LoggerConfig {
	args := m.Called()
	return args.Get(0).(config.LoggerConfig)
}

func (m *MockConfig) Document() config.DocumentConfig {
	args := m.Called()
	return args.Get(0).(config.DocumentConfig)
}

func (m *MockConfig) Replay() config.ReplayConfig {
	args := m.Called()
	return args.Get(0).(config.ReplayConfig)
}

// --- Setters ---

func (m *MockConfig) SetDocumentBaseURL(u string)    { m.Called(u) }
func (m *MockConfig) SetDocumentScale(s float64)     { m.Called(s) }
func (m *MockConfig) SetReplayConcurrency(n int)     { m.Called(n) }
func (m *MockConfig) SetReplayOutputFormat(f string) { m.Called(f) }

var _ config.Interface = (*MockConfig)(nil)

// -- Navigation Mock --

// MockNavigationProvider mocks dom.NavigationProvider. Every request is also
// kept in order so tests can inspect them without setting expectations on
// argument shape.
type MockNavigationProvider struct {
	mock.Mock

	mu       sync.Mutex
	requests []dom.NavigationOptions
}

// NavigateTo records the request and reports the call to the mock.
func (m *MockNavigationProvider) NavigateTo(opts dom.NavigationOptions) {
	m.mu.Lock()
	m.requests = append(m.requests, opts)
	m.mu.Unlock()
	m.Called(opts)
}

// Requests returns a copy of every navigation requested so far.
func (m *MockNavigationProvider) Requests() []dom.NavigationOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dom.NavigationOptions(nil), m.requests...)
}

var _ dom.NavigationProvider = (*MockNavigationProvider)(nil)
