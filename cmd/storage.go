package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/itiky/game-console/export"
	"github.com/itiky/game-console/model"
	"github.com/itiky/game-console/service/client"
)

const (
	FlagUserId          = "user-id"
	FlagCollection      = "collection"
	FlagKey             = "key"
	FlagCursor          = "cursor"
	FlagValue           = "value"
	FlagPermissionRead  = "permission-read"
	FlagPermissionWrite = "permission-write"
)

// GetStorageCmd returns storage objects command group.
func GetStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Manage storage objects",
	}
	cmd.AddCommand(
		getStorageListCmd(),
		getStorageGetCmd(),
		getStoragePutCmd(),
		getStorageDeleteCmd(),
		getStorageDeleteAllCmd(),
		getStorageImportCmd(),
	)

	return cmd
}

func getStorageListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a single page of storage objects",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			filter := model.StorageFilter{}
			filter.UserId, _ = cmd.Flags().GetString(FlagUserId)
			filter.Collection, _ = cmd.Flags().GetString(FlagCollection)
			filter.Key, _ = cmd.Flags().GetString(FlagKey)
			cursor, _ := cmd.Flags().GetString(FlagCursor)
			output, _ := cmd.Flags().GetString(FlagOutput)

			req, err := model.NewListStorageRequest(filter, cursor)
			if err != nil {
				log.Fatalf("invalid filter: %v", err)
			}

			// Work
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			list, err := c.dispatcher.ListStorage(ctx, req)
			if err != nil {
				log.Fatalf("list storage: %v", err)
			}

			if err := writeStorageObjects(os.Stdout, output, list.Objects); err != nil {
				log.Fatalf("output: %v", err)
			}
			if list.Cursor != "" {
				fmt.Fprintf(os.Stderr, "next cursor: %s\n", list.Cursor)
			}
		},
	}
	addStorageFilterFlags(cmd)
	cmd.Flags().String(FlagCursor, "", "(optional) page cursor from a previous list")
	addOutputFlag(cmd)

	return cmd
}

func getStorageGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [collection] [key]",
		Short: "Get a storage object",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			userId, _ := cmd.Flags().GetString(FlagUserId)
			output, _ := cmd.Flags().GetString(FlagOutput)

			ref, err := model.NewStorageObjectRequest(args[0], args[1], userId)
			if err != nil {
				log.Fatalf("invalid object ref: %v", err)
			}

			// Work
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			obj, err := c.dispatcher.GetStorage(ctx, ref)
			if err != nil {
				log.Fatalf("get storage: %v", err)
			}

			if err := writeStorageObjects(os.Stdout, output, []model.StorageObject{obj}); err != nil {
				log.Fatalf("output: %v", err)
			}
		},
	}
	cmd.Flags().String(FlagUserId, "", "(optional) owner user id, the system user if empty")
	addOutputFlag(cmd)

	return cmd
}

func getStoragePutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put [collection] [key]",
		Short: "Create or update a storage object",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			userId, _ := cmd.Flags().GetString(FlagUserId)
			value, _ := cmd.Flags().GetString(FlagValue)
			permRead, _ := cmd.Flags().GetInt(FlagPermissionRead)
			permWrite, _ := cmd.Flags().GetInt(FlagPermissionWrite)
			output, _ := cmd.Flags().GetString(FlagOutput)

			obj, err := model.NewStorageObject(args[0], args[1], userId, value, permRead, permWrite)
			if err != nil {
				log.Fatalf("invalid object: %v", err)
			}

			// Work
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			written, err := c.dispatcher.CreateStorage(ctx, obj)
			if err != nil {
				log.Fatalf("create storage: %v", err)
			}

			if err := writeStorageObjects(os.Stdout, output, []model.StorageObject{written}); err != nil {
				log.Fatalf("output: %v", err)
			}
		},
	}
	cmd.Flags().String(FlagUserId, "", "(optional) owner user id, the system user if empty")
	cmd.Flags().String(FlagValue, "{}", "(optional) JSON object value")
	cmd.Flags().Int(FlagPermissionRead, 1, "(optional) read permission: 0|1|2")
	cmd.Flags().Int(FlagPermissionWrite, 1, "(optional) write permission: 0|1")
	addOutputFlag(cmd)

	return cmd
}

func getStorageDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [collection] [key]",
		Short: "Delete a storage object",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			userId, _ := cmd.Flags().GetString(FlagUserId)

			ref, err := model.NewStorageObjectRequest(args[0], args[1], userId)
			if err != nil {
				log.Fatalf("invalid object ref: %v", err)
			}

			// Work
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			view := client.NewStorageView(c.dispatcher, client.WithConfirm(newConfirm(cmd)))
			sent, err := view.Delete(ctx, ref)
			if err != nil {
				log.Fatalf("delete storage: %v", err)
			}
			if sent {
				fmt.Println("Storage object deleted.")
			}
		},
	}
	cmd.Flags().String(FlagUserId, "", "(optional) owner user id, the system user if empty")
	addConfirmFlag(cmd)

	return cmd
}

func getStorageDeleteAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete all storage objects",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			view := client.NewStorageView(c.dispatcher, client.WithConfirm(newConfirm(cmd)))
			sent, err := view.DeleteAll(ctx)
			if err != nil {
				log.Fatalf("delete all storage: %v", err)
			}
			if sent {
				fmt.Println("All storage objects deleted.")
			}
		},
	}
	addConfirmFlag(cmd)

	return cmd
}

func getStorageImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import storage objects from JSON or CSV files",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			files := make([]client.ImportFile, 0, len(args))
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					log.Fatalf("open %s: %v", path, err)
				}
				defer f.Close()

				files = append(files, client.ImportFile{
					Name: filepath.Base(path),
					Data: f,
				})
			}

			// Work
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			view := client.NewStorageView(c.dispatcher)
			imported, err := view.Import(ctx, files)
			if err != nil {
				log.Fatalf("import storage: %v", err)
			}
			fmt.Printf("Imported %d storage objects.\n", imported)
		},
	}

	return cmd
}

func addStorageFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagUserId, "", "(optional) owner user id filter")
	cmd.Flags().String(FlagCollection, "", "(optional) collection filter")
	cmd.Flags().String(FlagKey, "", "(optional) key filter, requires a collection")
}

func writeStorageObjects(w io.Writer, format string, objects []model.StorageObject) error {
	header := []string{"COLLECTION", "KEY", "USER ID", "VERSION", "UPDATED"}

	return writeItems(w, format, objects, header, func(obj model.StorageObject) []string {
		return []string{obj.Collection, obj.Key, obj.UserId, obj.Version, export.FormatDate(obj.UpdateTime, nil)}
	})
}

func init() {
	rootCmd.AddCommand(GetStorageCmd())
}
