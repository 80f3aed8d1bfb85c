package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrSecretUnavailable is returned when the secret store resolves a
	// version but it carries no payload. Network or auth failures against
	// the store propagate as distinct errors.
	ErrSecretUnavailable = errors.New("secret has no payload")

	// ErrCredentialNotFound is returned when no enrollment record exists
	// for the requested user.
	ErrCredentialNotFound = errors.New("no enrolled Teller token for user")

	// ErrEmptyAccessToken is returned when an enrollment record exists but
	// the stored token is blank.
	ErrEmptyAccessToken = errors.New("stored access token is empty")
)

// UpstreamError is a non-success response from the Teller API. The raw
// response body is retained for diagnostics.
type UpstreamError struct {
	Status int
	Body   string
}

// Error folds the upstream status and body into the message, matching what
// the endpoint boundary reports to callers.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("teller request failed (%d): %s", e.Status, e.Body)
}
