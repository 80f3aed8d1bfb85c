package interfaces

import (
	"context"
	"time"
)

// CredentialStore persists per-user Teller access tokens.
//
// Upserts have merge-write semantics: only the token and timestamp of an
// existing record change, other fields stay untouched. There is no
// optimistic-concurrency check; last writer wins.
type CredentialStore interface {
	// GetCredential returns the enrollment record for the user, or an
	// error wrapping ErrCredentialNotFound when none exists.
	GetCredential(ctx context.Context, userID UserID) (Credential, error)

	// UpsertCredential sets the access token and updated-at timestamp for
	// the user, creating the record if absent.
	UpsertCredential(ctx context.Context, userID UserID, token string, updatedAt time.Time) error
}
