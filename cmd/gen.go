package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/itiky/game-console/storage"
)

const (
	FlagFilePath       = "file-path"
	FlagUsers          = "users"
	FlagObjectsPerUser = "objects-per-user"
	FlagTournaments    = "tournaments"
)

// GetGenerateCmd returns generate mock data command.
func GetGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate mock console data",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			filePath, err := cmd.Flags().GetString(FlagFilePath)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagFilePath, err)
			}
			users, err := cmd.Flags().GetInt(FlagUsers)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagUsers, err)
			}
			objectsPerUser, err := cmd.Flags().GetInt(FlagObjectsPerUser)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagObjectsPerUser, err)
			}
			tournaments, err := cmd.Flags().GetInt(FlagTournaments)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagTournaments, err)
			}

			// Work
			if err := storage.GenAndSaveSeed(filePath, users, objectsPerUser, tournaments); err != nil {
				log.Fatalf("gen failed: %v", err)
			}
		},
	}
	cmd.Flags().String(FlagFilePath, "./console_seed.dat", "(optional) output file path")
	cmd.Flags().Int(FlagUsers, 1000, "(optional) number of users")
	cmd.Flags().Int(FlagObjectsPerUser, 5, "(optional) number of storage objects per user")
	cmd.Flags().Int(FlagTournaments, 20, "(optional) number of tournaments")

	return cmd
}

func init() {
	rootCmd.AddCommand(GetGenerateCmd())
}
