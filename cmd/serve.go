package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/itiky/game-console/service/server"
	"github.com/itiky/game-console/storage"
)

const (
	FlagListen   = "listen"
	FlagSeedFile = "seed-file"
)

// GetServeCmd returns console server start command.
func GetServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the console RPC server",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			cfg := appConfig
			if cmd.Flags().Changed(FlagListen) {
				cfg.Listen, _ = cmd.Flags().GetString(FlagListen)
			}
			if cmd.Flags().Changed(FlagSeedFile) {
				cfg.SeedFile, _ = cmd.Flags().GetString(FlagSeedFile)
			}

			// Init service
			var (
				store *storage.Store
				err   error
			)
			if cfg.SeedFile != "" {
				store, err = storage.NewStoreFromFile(cfg.SeedFile)
			} else {
				store, err = storage.NewStoreFromSeed(storage.Seed{}, time.Now())
			}
			if err != nil {
				log.Fatalf("storage init: %v", err)
			}

			svc, err := server.NewConsoleService(store, slog.Default(),
				server.WithPageSizes(cfg.StoragePageSize, cfg.UsersPageSize),
				server.WithMonitorPeriod(cfg.MonitorPeriod),
			)
			if err != nil {
				log.Fatalf("service init: %v", err)
			}
			auth, err := server.NewAuthenticator(cfg.SigningKey, cfg.AdminUsername, cfg.AdminPassword, cfg.TokenTTL)
			if err != nil {
				log.Fatalf("authenticator init: %v", err)
			}

			// Start server
			httpServer := &http.Server{
				Addr:              cfg.Listen,
				Handler:           server.NewRouter(svc, auth),
				ReadHeaderTimeout: 10 * time.Second,
			}
			svc.Start()

			go func() {
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("console server: listen: %v", err)
				}
			}()
			slog.Info("Console server started", "listen", cfg.Listen)

			// Wait for signal
			signalCh := make(chan os.Signal, 1)
			signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
			<-signalCh

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				slog.Error("Console server shutdown", "error", err)
			}
			svc.Stop()
		},
	}
	cmd.Flags().String(FlagListen, ":7351", "(optional) listen address")
	cmd.Flags().String(FlagSeedFile, "", "(optional) path to a generated seed file")

	return cmd
}

func init() {
	rootCmd.AddCommand(GetServeCmd())
}
