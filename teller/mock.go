package teller

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProviderClient mocks the ProviderClient interface for tests.
//
// The first mocked return value is an optional func(out any) that fills the
// caller's out parameter the way the real client decodes a response body.
type MockProviderClient struct {
	mock.Mock
}

// Get implements the ProviderClient interface for testing.
func (m *MockProviderClient) Get(ctx context.Context, token, path string, out any) error {
	args := m.Called(ctx, token, path, out)
	if fill, ok := args.Get(0).(func(out any)); ok && fill != nil {
		fill(out)
	}
	return args.Error(1)
}
