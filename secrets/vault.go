package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/familybudget/teller-gateway/interfaces"
	"github.com/hashicorp/vault/api"
)

// payloadKey is the field inside a KV v2 entry holding the secret text.
const payloadKey = "value"

// VaultStore implements interfaces.SecretStore on HashiCorp Vault's KV v2
// engine. Secrets are resolved at their latest version on every fetch;
// values are never cached here.
type VaultStore struct {
	client    *api.Client
	mountPath string
	project   string
	log       *slog.Logger
}

// NewVaultStore creates a secret store reading from the given Vault server.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - mountPath: KV v2 mount path (e.g. "secret")
//   - project: path prefix within the mount the secrets live under
//   - log: Structured logger for operational insights
func NewVaultStore(address, mountPath, project string, log *slog.Logger) (*VaultStore, error) {
	config := api.DefaultConfig()
	if address != "" {
		config.Address = address
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	mountPath = strings.TrimSuffix(mountPath, "/")
	project = strings.Trim(project, "/")

	return &VaultStore{
		client:    client,
		mountPath: mountPath,
		project:   project,
		log:       log,
	}, nil
}

// FetchSecret resolves the latest version of the named secret as UTF-8
// text. It returns an error wrapping interfaces.ErrSecretUnavailable when
// the version exists but has no payload; store failures propagate wrapped
// as-is so callers can tell the two apart.
func (s *VaultStore) FetchSecret(ctx context.Context, name string) (string, error) {
	start := time.Now()

	// Vault KV v2 path structure, latest version.
	path := fmt.Sprintf("%s/data/%s/%s", s.mountPath, s.project, name)

	secret, err := s.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		s.log.Error("Failed to read secret from Vault",
			slog.String("secret", name),
			"err", err)
		return "", fmt.Errorf("failed to read secret %s: %w", name, err)
	}

	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("secret %s: %w", name, interfaces.ErrSecretUnavailable)
	}

	// KV v2 nests the entry under a "data" key.
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("secret %s: %w", name, interfaces.ErrSecretUnavailable)
	}

	value, ok := data[payloadKey].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("secret %s: %w", name, interfaces.ErrSecretUnavailable)
	}

	s.log.Debug("Fetched secret from Vault",
		slog.String("secret", name),
		slog.Duration("duration", time.Since(start)))

	return value, nil
}
