package storage

import (
	"context"
	"time"

	"github.com/familybudget/teller-gateway/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockCredentialStore mocks the CredentialStore interface for tests.
type MockCredentialStore struct {
	mock.Mock
}

// GetCredential mocks the GetCredential method.
func (m *MockCredentialStore) GetCredential(ctx context.Context, userID interfaces.UserID) (interfaces.Credential, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(interfaces.Credential), args.Error(1)
}

// UpsertCredential mocks the UpsertCredential method.
func (m *MockCredentialStore) UpsertCredential(ctx context.Context, userID interfaces.UserID, token string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, token, updatedAt)
	return args.Error(0)
}
