package common

// RuntimeConfig holds the settings the Teller endpoints cannot run without:
// the project under which the client certificate and key live in the secret
// store, and the names of those two secrets.
//
// A missing setting never crashes the process. Validate collects the
// problems at startup and the HTTP layer surfaces them on /healthz and as
// 500s on the gated endpoints.
type RuntimeConfig struct {
	// Project is the tenant path prefix the secrets are stored under.
	Project string

	// CertSecretName names the PEM client certificate secret.
	CertSecretName string

	// KeySecretName names the PEM client key secret.
	KeySecretName string
}

// Validate returns one message per missing required setting. An empty slice
// means the configuration is complete.
func (c RuntimeConfig) Validate() []string {
	errs := []string{}
	if c.Project == "" {
		errs = append(errs, "Missing project (TELLER_PROJECT)")
	}
	if c.CertSecretName == "" || c.KeySecretName == "" {
		errs = append(errs, "Missing TELLER_CERT_SECRET_NAME or TELLER_KEY_SECRET_NAME")
	}
	return errs
}
