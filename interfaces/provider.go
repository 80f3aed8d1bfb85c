package interfaces

import "context"

// ProviderClient issues token-authenticated GET requests against the Teller
// API and decodes the JSON response into out.
//
// Authorization is per-request: the user's stored access token, not the
// transport's client certificate, authorizes the call. Non-success statuses
// surface as *UpstreamError. No retries, no redirect handling, no rate
// limiting.
type ProviderClient interface {
	Get(ctx context.Context, token, path string, out any) error
}
