package teller

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/familybudget/teller-gateway/interfaces"
	"github.com/familybudget/teller-gateway/metrics"
)

// DefaultBaseURL is the production Teller API endpoint.
const DefaultBaseURL = "https://api.teller.io"

// requestTimeout bounds a single upstream call.
const requestTimeout = 30 * time.Second

// Client issues authenticated GET requests against the Teller API over the
// shared mutual-TLS transport. Request authorization is the user's access
// token sent as HTTP Basic auth with no password component; the transport's
// client certificate only authenticates the connection itself.
type Client struct {
	baseURL    string
	transports interfaces.TransportProvider
	log        *slog.Logger
}

// NewClient creates a Teller API client. baseURL falls back to
// DefaultBaseURL when empty.
func NewClient(baseURL string, transports interfaces.TransportProvider, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		transports: transports,
		log:        log,
	}
}

// Get issues a GET request for path using the given access token and
// decodes the JSON response body into out. Non-success statuses surface as
// *interfaces.UpstreamError carrying the raw response body.
func (c *Client) Get(ctx context.Context, token, path string, out any) error {
	start := time.Now()

	tr, err := c.transports.Transport(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("could not build teller request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(token + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Transport: tr, Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("could not request teller endpoint: %w", err)
	}
	defer resp.Body.Close()

	metrics.ObserveUpstreamCall(resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("Teller request failed",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
		return &interfaces.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not parse teller response: %w", err)
	}

	c.log.Debug("Teller request completed",
		slog.String("path", path),
		slog.Duration("duration", time.Since(start)))

	return nil
}
