package teller

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/familybudget/teller-gateway/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTransportProvider hands out a fixed transport, standing in for the
// lazily-built mutual-TLS one.
type staticTransportProvider struct {
	tr  *http.Transport
	err error
}

func (s *staticTransportProvider) Transport(ctx context.Context) (*http.Transport, error) {
	return s.tr, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetSendsTokenAsBasicAuth(t *testing.T) {
	var gotAuth, gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"a1","name":"Checking"}]`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, &staticTransportProvider{tr: &http.Transport{}}, testLogger())

	var accounts []interfaces.Account
	err := client.Get(context.Background(), "tok123", "/accounts", &accounts)
	require.NoError(t, err)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("tok123:"))
	assert.Equal(t, wantAuth, gotAuth)
	assert.Equal(t, "application/json", gotContentType)

	require.Len(t, accounts, 1)
	assert.Equal(t, "a1", accounts[0].ID)
	assert.Equal(t, "Checking", accounts[0].Name)
}

func TestGetNonSuccessStatusSurfacesUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream exploded"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, &staticTransportProvider{tr: &http.Transport{}}, testLogger())

	var out []interfaces.Account
	err := client.Get(context.Background(), "tok", "/accounts", &out)
	require.Error(t, err)

	var ue *interfaces.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadGateway, ue.Status)
	assert.Contains(t, ue.Body, "upstream exploded")
	assert.Contains(t, err.Error(), "teller request failed (502)")
}

func TestGetPropagatesTransportBuildFailure(t *testing.T) {
	buildErr := errors.New("vault sealed")
	client := NewClient("https://api.teller.io", &staticTransportProvider{err: buildErr}, testLogger())

	var out []interfaces.Account
	err := client.Get(context.Background(), "tok", "/accounts", &out)
	require.ErrorIs(t, err, buildErr)
}

func TestGetMalformedJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, &staticTransportProvider{tr: &http.Transport{}}, testLogger())

	var out []interfaces.Account
	err := client.Get(context.Background(), "tok", "/accounts", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse teller response")
}
