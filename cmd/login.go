package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

const (
	FlagUsername = "username"
	FlagPassword = "password"
)

// GetLoginCmd returns the authenticate command, the issued token is printed to stdout.
func GetLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a session token",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			if cmd.Flags().Changed(FlagUsername) {
				appConfig.AdminUsername, _ = cmd.Flags().GetString(FlagUsername)
			}
			if cmd.Flags().Changed(FlagPassword) {
				appConfig.AdminPassword, _ = cmd.Flags().GetString(FlagPassword)
			}
			appConfig.Token = ""

			// Work
			c, err := newConsole(context.Background())
			if err != nil {
				log.Fatalf("login: %v", err)
			}
			defer c.close()

			fmt.Println(c.dispatcher.Session().Token())
		},
	}
	cmd.Flags().String(FlagUsername, "", "(optional) console username")
	cmd.Flags().String(FlagPassword, "", "(optional) console password")

	return cmd
}

func init() {
	rootCmd.AddCommand(GetLoginCmd())
}
