// Package secrets implements the secret accessor on HashiCorp Vault.
//
// The Teller client certificate and key are stored as KV v2 entries under a
// per-project path and resolved at their latest version on every fetch.
// Secret values are never cached in this package; the transport package
// caches only the transport derived from them.
package secrets
