package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/familybudget/teller-gateway/interfaces"
	"golang.org/x/sync/singleflight"
)

// buildKey funnels every concurrent build attempt through one in-flight
// call; there is only ever one transport per process.
const buildKey = "teller-mtls"

// Provisioner lazily builds the process-wide mutual-TLS transport from the
// client certificate and key secrets and reuses it for the lifetime of the
// process. There is no invalidation path.
//
// Concurrent first callers are serialized through a singleflight group so
// exactly one build runs and all callers receive its outcome. A failed
// build is not cached; the next call retries the full build, so secret
// store transients cannot permanently wedge the service.
type Provisioner struct {
	secrets        interfaces.SecretStore
	certSecretName string
	keySecretName  string
	log            *slog.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	cached *http.Transport
}

// NewProvisioner creates a provisioner reading the named certificate and
// key secrets from the given store.
func NewProvisioner(secrets interfaces.SecretStore, certSecretName, keySecretName string, log *slog.Logger) *Provisioner {
	return &Provisioner{
		secrets:        secrets,
		certSecretName: certSecretName,
		keySecretName:  keySecretName,
		log:            log,
	}
}

// Transport returns the shared mutual-TLS transport, building it on first
// use. Subsequent calls return the stored instance without touching the
// secret store.
func (p *Provisioner) Transport(ctx context.Context) (*http.Transport, error) {
	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := p.group.Do(buildKey, func() (interface{}, error) {
		// Re-check under the group: a racing caller may have finished the
		// build between our fast-path miss and entering the group.
		p.mu.RLock()
		cached := p.cached
		p.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		built, err := p.build(ctx)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.cached = built
		p.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*http.Transport), nil
}

// build fetches both secrets and assembles the transport. Both fetches are
// required; order is irrelevant.
func (p *Provisioner) build(ctx context.Context) (*http.Transport, error) {
	start := time.Now()

	certPEM, err := p.secrets.FetchSecret(ctx, p.certSecretName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client certificate: %w", err)
	}

	keyPEM, err := p.secrets.FetchSecret(ctx, p.keySecretName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client key: %w", err)
	}

	cert, err := tls.X509KeyPair([]byte(certPEM), []byte(keyPEM))
	if err != nil {
		return nil, fmt.Errorf("invalid client certificate/key pair: %w", err)
	}

	p.log.Info("Built mutual-TLS transport",
		slog.Duration("duration", time.Since(start)))

	return &http.Transport{
		TLSClientConfig: &tls.Config{
			Certificates: []tls.Certificate{cert},
		},
	}, nil
}
