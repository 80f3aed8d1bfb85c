package secrets

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSecretStore mocks the SecretStore interface for tests.
type MockSecretStore struct {
	mock.Mock
}

// FetchSecret mocks the FetchSecret method.
func (m *MockSecretStore) FetchSecret(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}
