package transport

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/familybudget/teller-gateway/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testCertPair generates a self-signed certificate and key in PEM form.
func testCertPair(t *testing.T) (string, string) {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "teller-client"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	require.NoError(t, err)

	keyDER, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
	return string(certPEM), string(keyPEM)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTransportBuiltOnce(t *testing.T) {
	certPEM, keyPEM := testCertPair(t)

	store := new(secrets.MockSecretStore)
	store.On("FetchSecret", mock.Anything, "teller-cert").Return(certPEM, nil).Once()
	store.On("FetchSecret", mock.Anything, "teller-key").Return(keyPEM, nil).Once()

	p := NewProvisioner(store, "teller-cert", "teller-key", testLogger())

	first, err := p.Transport(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := p.Transport(context.Background())
	require.NoError(t, err)

	// Same instance, and the secret store was hit exactly once per secret.
	assert.Same(t, first, second)
	store.AssertExpectations(t)
}

func TestTransportRetriesAfterFailedBuild(t *testing.T) {
	certPEM, keyPEM := testCertPair(t)

	store := new(secrets.MockSecretStore)
	store.On("FetchSecret", mock.Anything, "teller-cert").Return("", errors.New("vault sealed")).Once()
	store.On("FetchSecret", mock.Anything, "teller-cert").Return(certPEM, nil).Once()
	store.On("FetchSecret", mock.Anything, "teller-key").Return(keyPEM, nil).Once()

	p := NewProvisioner(store, "teller-cert", "teller-key", testLogger())

	_, err := p.Transport(context.Background())
	require.Error(t, err)

	// The failure must not be cached; the next call runs the full build.
	tr, err := p.Transport(context.Background())
	require.NoError(t, err)
	require.NotNil(t, tr)
	store.AssertExpectations(t)
}

func TestTransportInvalidKeyPair(t *testing.T) {
	store := new(secrets.MockSecretStore)
	store.On("FetchSecret", mock.Anything, "teller-cert").Return("not a pem", nil)
	store.On("FetchSecret", mock.Anything, "teller-key").Return("not a pem", nil)

	p := NewProvisioner(store, "teller-cert", "teller-key", testLogger())

	_, err := p.Transport(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid client certificate/key pair")
}

func TestConcurrentFirstCallersShareOneBuild(t *testing.T) {
	certPEM, keyPEM := testCertPair(t)

	store := new(secrets.MockSecretStore)
	store.On("FetchSecret", mock.Anything, "teller-cert").Return(certPEM, nil).Once()
	store.On("FetchSecret", mock.Anything, "teller-key").Return(keyPEM, nil).Once()

	p := NewProvisioner(store, "teller-cert", "teller-key", testLogger())

	const callers = 8
	results := make([]*http.Transport, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = p.Transport(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
	}
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
	store.AssertExpectations(t)
}
