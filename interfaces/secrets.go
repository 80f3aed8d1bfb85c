package interfaces

import (
	"context"
	"net/http"
)

// SecretStore resolves the latest version of a named secret as UTF-8 text.
type SecretStore interface {
	// FetchSecret returns the latest payload for the named secret.
	// Returns an error wrapping ErrSecretUnavailable when the version has
	// no payload. No retries; the caller decides.
	FetchSecret(ctx context.Context, name string) (string, error)
}

// TransportProvider hands out the process-wide mutual-TLS transport used
// for all outbound Teller calls.
type TransportProvider interface {
	// Transport returns the shared transport, building it on first use.
	// A failed build is not cached; the next call retries in full.
	Transport(ctx context.Context) (*http.Transport, error)
}
