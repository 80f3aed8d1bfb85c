package flags

import (
	"log/slog"
	"time"

	"github.com/familybudget/teller-gateway/common"
	"github.com/familybudget/teller-gateway/httpserver"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// SetupLogger builds the process logger from the log-* flags.
func SetupLogger(cCtx *cli.Context) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJSONFlag.Name),
		Service: cCtx.String(LogServiceFlag.Name),
		Version: common.Version,
	})

	if cCtx.Bool(LogUIDFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// ConfigureServer builds the HTTP server config from the server flags.
func ConfigureServer(cCtx *cli.Context, logger *slog.Logger) *httpserver.HTTPServerConfig {
	return &httpserver.HTTPServerConfig{
		ListenAddr:               cCtx.String(ListenAddrFlag.Name),
		MetricsAddr:              cCtx.String(MetricsAddrFlag.Name),
		Log:                      logger,
		EnablePprof:              cCtx.Bool(PprofFlag.Name),
		DrainDuration:            time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:8080",
	Usage: "address to listen on for API",
}

var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics",
}

var VaultAddrFlag = &cli.StringFlag{
	Name:    "vault-addr",
	Value:   "",
	Usage:   "address of the Vault server holding the Teller client certificate and key",
	EnvVars: []string{"VAULT_ADDR"},
}

var VaultMountFlag = &cli.StringFlag{
	Name:  "vault-mount",
	Value: "secret",
	Usage: "Vault KV v2 mount path the secrets live under",
}

var ProjectFlag = &cli.StringFlag{
	Name:    "project",
	Usage:   "tenant path prefix the secrets are stored under",
	EnvVars: []string{"TELLER_PROJECT"},
}

var CertSecretFlag = &cli.StringFlag{
	Name:    "cert-secret",
	Usage:   "name of the secret holding the PEM Teller client certificate",
	EnvVars: []string{"TELLER_CERT_SECRET_NAME"},
}

var KeySecretFlag = &cli.StringFlag{
	Name:    "key-secret",
	Usage:   "name of the secret holding the PEM Teller client key",
	EnvVars: []string{"TELLER_KEY_SECRET_NAME"},
}

var APIKeyFlag = &cli.StringFlag{
	Name:    "api-key",
	Usage:   "shared secret required on the /teller endpoints",
	EnvVars: []string{"API_KEY"},
}

var TellerAPIURLFlag = &cli.StringFlag{
	Name:  "teller-api-url",
	Value: "https://api.teller.io",
	Usage: "base URL of the Teller API",
}

var DBPathFlag = &cli.StringFlag{
	Name:  "db-path",
	Value: "teller.db",
	Usage: "path to the enrolled-users SQLite database",
}

var LogJSONFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}

var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}

var LogUIDFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: common.PackageName,
	Usage: "add 'service' tag to logs",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}

var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}
