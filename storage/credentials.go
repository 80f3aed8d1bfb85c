package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/familybudget/teller-gateway/interfaces"
)

// Compile-time interface satisfaction check.
var _ interfaces.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is the SQLite implementation of the credential store:
// one row per enrolled user holding the Teller access token and its
// timestamps. Tokens are stored in plaintext; the database file itself is
// the security boundary.
type CredentialStore struct {
	db *DB
}

// NewCredentialStore creates a credential store over an open database.
func NewCredentialStore(db *DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// GetCredential returns the enrollment record for the user.
// Returns an error wrapping interfaces.ErrCredentialNotFound when the user
// has never enrolled.
func (s *CredentialStore) GetCredential(ctx context.Context, userID interfaces.UserID) (interfaces.Credential, error) {
	const query = `SELECT access_token, updated_at, created_at FROM enrolled_users WHERE user_id = ?`

	var token, updatedAt, createdAt string
	err := s.db.Reader.QueryRowContext(ctx, query, userID.String()).Scan(&token, &updatedAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return interfaces.Credential{}, fmt.Errorf("user %q: %w", userID, interfaces.ErrCredentialNotFound)
	}
	if err != nil {
		return interfaces.Credential{}, fmt.Errorf("get credential for %q: %w", userID, err)
	}

	cred := interfaces.Credential{
		UserID:      userID,
		AccessToken: token,
	}
	if cred.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return interfaces.Credential{}, fmt.Errorf("parse updated_at for %q: %w", userID, err)
	}
	if cred.CreatedAt, err = parseTime(createdAt); err != nil {
		return interfaces.Credential{}, fmt.Errorf("parse created_at for %q: %w", userID, err)
	}
	return cred, nil
}

// UpsertCredential sets the access token and updated-at timestamp for the
// user, creating the row if absent. The merge-write touches only those two
// columns: created_at of an existing row stays as it was. Last writer wins.
func (s *CredentialStore) UpsertCredential(ctx context.Context, userID interfaces.UserID, token string, updatedAt time.Time) error {
	const query = `
		INSERT INTO enrolled_users (user_id, access_token, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = excluded.access_token,
			updated_at   = excluded.updated_at`

	_, err := s.db.Writer.ExecContext(ctx, query, userID.String(), token, updatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert credential for %q: %w", userID, err)
	}
	return nil
}

// parseTime reads the ISO-8601 timestamps the table stores.
func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
