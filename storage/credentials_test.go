package storage

import (
	"context"
	"testing"
	"time"

	"github.com/familybudget/teller-gateway/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertAndGetCredential(t *testing.T) {
	store := NewCredentialStore(setupTestDB(t))
	ctx := context.Background()

	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpsertCredential(ctx, "u1", "tok", t1))

	cred, err := store.GetCredential(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, interfaces.UserID("u1"), cred.UserID)
	assert.Equal(t, "tok", cred.AccessToken)
	assert.True(t, cred.UpdatedAt.Equal(t1))
	assert.False(t, cred.CreatedAt.IsZero())
}

func TestUpsertMergeLeavesCreatedAtUntouched(t *testing.T) {
	store := NewCredentialStore(setupTestDB(t))
	ctx := context.Background()

	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpsertCredential(ctx, "u1", "tok", t1))

	first, err := store.GetCredential(ctx, "u1")
	require.NoError(t, err)

	t2 := t1.Add(24 * time.Hour)
	require.NoError(t, store.UpsertCredential(ctx, "u1", "tok2", t2))

	second, err := store.GetCredential(ctx, "u1")
	require.NoError(t, err)

	// Only token and timestamp change on re-enrollment.
	assert.Equal(t, "tok2", second.AccessToken)
	assert.True(t, second.UpdatedAt.Equal(t2))
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt))
}

func TestGetCredentialMissingUser(t *testing.T) {
	store := NewCredentialStore(setupTestDB(t))

	_, err := store.GetCredential(context.Background(), "nobody")
	require.ErrorIs(t, err, interfaces.ErrCredentialNotFound)
}

func TestCredentialsAreIndependentPerUser(t *testing.T) {
	store := NewCredentialStore(setupTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.UpsertCredential(ctx, "u1", "tok-a", now))
	require.NoError(t, store.UpsertCredential(ctx, "u2", "tok-b", now))

	a, err := store.GetCredential(ctx, "u1")
	require.NoError(t, err)
	b, err := store.GetCredential(ctx, "u2")
	require.NoError(t, err)

	assert.Equal(t, "tok-a", a.AccessToken)
	assert.Equal(t, "tok-b", b.AccessToken)
}
