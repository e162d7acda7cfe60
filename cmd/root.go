package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/itiky/game-console/config"
	"github.com/itiky/game-console/logging"
)

const (
	FlagConfig    = "config"
	FlagServerUrl = "server-url"
	FlagToken     = "token"
	FlagUnwrap    = "unwrap"
	FlagLogLevel  = "log-level"
)

// appConfig is the loaded config with the flag overrides applied.
var appConfig config.Config

// rootCmd is a base command.
var rootCmd = &cobra.Command{
	Use:          "game-console",
	Short:        "Game server admin console client/server",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := cmd.Flags().GetString(FlagConfig)
		if err != nil {
			return fmt.Errorf("%s flag: %w", FlagConfig, err)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		// Flags override both env and file
		if cmd.Flags().Changed(FlagServerUrl) {
			cfg.ServerURL, _ = cmd.Flags().GetString(FlagServerUrl)
		}
		if cmd.Flags().Changed(FlagToken) {
			cfg.Token, _ = cmd.Flags().GetString(FlagToken)
		}
		if cmd.Flags().Changed(FlagUnwrap) {
			cfg.Unwrap, _ = cmd.Flags().GetBool(FlagUnwrap)
		}
		if cmd.Flags().Changed(FlagLogLevel) {
			cfg.Log.Level, _ = cmd.Flags().GetString(FlagLogLevel)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}

		logging.Setup(cfg.Log)
		appConfig = cfg

		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("rootCmd.Execute: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().String(FlagConfig, "", "(optional) config file path (yaml, toml or json)")
	rootCmd.PersistentFlags().String(FlagServerUrl, "", "(optional) console server url")
	rootCmd.PersistentFlags().String(FlagToken, "", "(optional) console session token")
	rootCmd.PersistentFlags().Bool(FlagUnwrap, false, "(optional) use the raw JSON RPC convention")
	rootCmd.PersistentFlags().String(FlagLogLevel, "", "(optional) log level: debug|info|warn|error")
}
