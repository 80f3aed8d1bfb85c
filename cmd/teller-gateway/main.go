package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/familybudget/teller-gateway/cmd/flags"
	"github.com/familybudget/teller-gateway/common"
	"github.com/familybudget/teller-gateway/httpserver"
	"github.com/familybudget/teller-gateway/pipeline"
	"github.com/familybudget/teller-gateway/secrets"
	"github.com/familybudget/teller-gateway/storage"
	"github.com/familybudget/teller-gateway/teller"
	"github.com/familybudget/teller-gateway/transport"
	"github.com/urfave/cli/v2"
)

var cliFlags = []cli.Flag{
	flags.ListenAddrFlag,
	flags.MetricsAddrFlag,
	flags.VaultAddrFlag,
	flags.VaultMountFlag,
	flags.ProjectFlag,
	flags.CertSecretFlag,
	flags.KeySecretFlag,
	flags.APIKeyFlag,
	flags.TellerAPIURLFlag,
	flags.DBPathFlag,
	flags.LogJSONFlag,
	flags.LogDebugFlag,
	flags.LogUIDFlag,
	flags.LogServiceFlag,
	flags.PprofFlag,
	flags.DrainSecondsFlag,
}

func main() {
	app := &cli.App{
		Name:  "teller-gateway",
		Usage: "Bridge Teller credentials into normalized budget data",
		Flags: cliFlags,
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			// Missing required configuration never prevents startup; the
			// gated endpoints report it as 500s and /healthz exposes it.
			runtimeCfg := common.RuntimeConfig{
				Project:        cCtx.String(flags.ProjectFlag.Name),
				CertSecretName: cCtx.String(flags.CertSecretFlag.Name),
				KeySecretName:  cCtx.String(flags.KeySecretFlag.Name),
			}
			configErrors := runtimeCfg.Validate()
			for _, msg := range configErrors {
				logger.Warn("Incomplete runtime configuration", "problem", msg)
			}

			db, err := storage.NewDB(cCtx.String(flags.DBPathFlag.Name))
			if err != nil {
				logger.Error("Failed to open database", "err", err)
				return err
			}
			defer db.Close()

			if err := storage.RunMigrations(db.Writer); err != nil {
				logger.Error("Failed to run migrations", "err", err)
				return err
			}

			secretStore, err := secrets.NewVaultStore(
				cCtx.String(flags.VaultAddrFlag.Name),
				cCtx.String(flags.VaultMountFlag.Name),
				runtimeCfg.Project,
				logger,
			)
			if err != nil {
				logger.Error("Failed to create secret store", "err", err)
				return err
			}

			credentials := storage.NewCredentialStore(db)
			provisioner := transport.NewProvisioner(secretStore, runtimeCfg.CertSecretName, runtimeCfg.KeySecretName, logger)
			tellerClient := teller.NewClient(cCtx.String(flags.TellerAPIURLFlag.Name), provisioner, logger)
			agg := pipeline.New(tellerClient, credentials, logger)

			handler := httpserver.NewHandler(agg, credentials, cCtx.String(flags.APIKeyFlag.Name), configErrors, logger)

			server, err := httpserver.New(flags.ConfigureServer(cCtx, logger), handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
