package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/itiky/game-console/export"
	"github.com/itiky/game-console/model"
	"github.com/itiky/game-console/service/client"
)

const (
	FlagFilter     = "filter"
	FlagBanned     = "banned"
	FlagTombstones = "tombstones"
	FlagPage       = "page"
)

// GetUsersCmd returns users command group.
func GetUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	cmd.AddCommand(
		getUsersListCmd(),
		getUsersGetCmd(),
		getUsersDeleteCmd(),
		getUsersDeleteAllCmd(),
		getUsersBanCmd(true),
		getUsersBanCmd(false),
	)

	return cmd
}

func getUsersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a single page of users",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			filter := model.UserFilter{}
			filter.Filter, _ = cmd.Flags().GetString(FlagFilter)
			filter.Banned, _ = cmd.Flags().GetBool(FlagBanned)
			filter.Tombstones, _ = cmd.Flags().GetBool(FlagTombstones)
			page, _ := cmd.Flags().GetInt(FlagPage)
			output, _ := cmd.Flags().GetString(FlagOutput)

			req, err := model.NewListUsersRequest(filter, page)
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

			list, err := c.dispatcher.ListUsers(ctx, req)
			if err != nil {
				log.Fatalf("list users: %v", err)
			}

			if err := writeUsers(os.Stdout, output, list.Users); err != nil {
				log.Fatalf("output: %v", err)
			}
			fmt.Fprintf(os.Stderr, "total: %d\n", list.TotalCount)
		},
	}
	cmd.Flags().String(FlagFilter, "", "(optional) user id or username filter")
	cmd.Flags().Bool(FlagBanned, false, "(optional) list banned users only")
	cmd.Flags().Bool(FlagTombstones, false, "(optional) list deleted users only")
	cmd.Flags().Int(FlagPage, 0, "(optional) page number")
	addOutputFlag(cmd)

	return cmd
}

func getUsersGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get a user",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			output, _ := cmd.Flags().GetString(FlagOutput)
			req, err := model.NewUserRequest(args[0])
			if err != nil {
				log.Fatalf("invalid user id: %v", err)
			}

			// Work
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			user, err := c.dispatcher.GetUser(ctx, req)
			if err != nil {
				log.Fatalf("get user: %v", err)
			}

			if err := writeUsers(os.Stdout, output, []model.User{user}); err != nil {
				log.Fatalf("output: %v", err)
			}
		},
	}
	addOutputFlag(cmd)

	return cmd
}

func getUsersDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			view := client.NewUserView(c.dispatcher, client.WithConfirm(newConfirm(cmd)))
			sent, err := view.Delete(ctx, args[0])
			if err != nil {
				log.Fatalf("delete user: %v", err)
			}
			if sent {
				fmt.Println("User deleted.")
			}
		},
	}
	addConfirmFlag(cmd)

	return cmd
}

func getUsersDeleteAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete all users",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			view := client.NewUserView(c.dispatcher, client.WithConfirm(newConfirm(cmd)))
			sent, err := view.DeleteAll(ctx)
			if err != nil {
				log.Fatalf("delete all users: %v", err)
			}
			if sent {
				fmt.Println("All users deleted.")
			}
		},
	}
	addConfirmFlag(cmd)

	return cmd
}

// getUsersBanCmd returns the ban (or unban) command.
func getUsersBanCmd(ban bool) *cobra.Command {
	use, short := "ban [id]", "Ban a user"
	if !ban {
		use, short = "unban [id]", "Unban a user"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			req, err := model.NewUserRequest(args[0])
			if err != nil {
				log.Fatalf("invalid user id: %v", err)
			}

			// Work
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			call := c.dispatcher.BanUser
			if !ban {
				call = c.dispatcher.UnbanUser
			}
			if err := call(ctx, req); err != nil {
				log.Fatalf("%s: %v", cmd.Name(), err)
			}
			fmt.Println("Done.")
		},
	}

	return cmd
}

func writeUsers(w io.Writer, format string, users []model.User) error {
	header := []string{"ID", "USERNAME", "DISPLAY NAME", "BANNED", "UPDATED"}

	return writeItems(w, format, users, header, func(user model.User) []string {
		return []string{
			user.Id,
			user.Username,
			user.DisplayName,
			strconv.FormatBool(user.Banned()),
			export.FormatDate(user.UpdateTime, nil),
		}
	})
}

func init() {
	rootCmd.AddCommand(GetUsersCmd())
}
