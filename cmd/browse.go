package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itiky/game-console/model"
	"github.com/itiky/game-console/service/client"
)

// browser is a single interactive list view.
type browser interface {
	// exec runs a single command, quit is reported by the caller.
	exec(ctx context.Context, cmd string, args []string) error
	render(w io.Writer)
	help() string
}

// GetBrowseCmd returns interactive list browser command.
func GetBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "browse [storage|users|tournaments]",
		Short:     "Browse a console list interactively",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"storage", "users", "tournaments"},
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			output, _ := cmd.Flags().GetString(FlagOutput)

			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			confirm := client.WithConfirm(newConfirm(cmd))
			var b browser
			switch args[0] {
			case "storage":
				b = &storageBrowser{view: client.NewStorageView(c.dispatcher, confirm), output: output}
			case "users":
				b = &usersBrowser{view: client.NewUserView(c.dispatcher, confirm), output: output}
			case "tournaments":
				b = &tournamentsBrowser{view: client.NewTournamentView(c.dispatcher, confirm), output: output}
			default:
				log.Fatalf("unknown list: %s", args[0])
			}

			// Initial fetch
			err = b.exec(ctx, "reset", nil)
			b.render(os.Stdout)
			if sessionEnded(err) {
				return
			}

			// REPL
			for {
				fmt.Fprint(os.Stdout, "> ")
				line, ok := readLine()
				if !ok {
					return
				}
				fields := strings.Fields(line)
				if len(fields) == 0 {
					continue
				}

				switch fields[0] {
				case "quit", "exit", "q":
					return
				case "help", "?":
					fmt.Fprintln(os.Stdout, b.help())
					continue
				}

				err := b.exec(ctx, fields[0], fields[1:])
				b.render(os.Stdout)
				if sessionEnded(err) {
					return
				}
			}
		},
	}
	addOutputFlag(cmd)
	addConfirmFlag(cmd)

	return cmd
}

// sessionEnded reports whether err invalidated the session, the browser can't go on without one.
func sessionEnded(err error) bool {
	if err == nil {
		return false
	}

	return client.Classify(err).SessionEnded
}

// writeExport writes the displayed rows to a file, the format is json|csv|yaml.
func writeExport(args []string, write func(w io.Writer, format string) error) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: export json|csv|yaml [file]")
	}
	if args[0] == outputTable {
		return fmt.Errorf("export: unsupported format %q", args[0])
	}

	f, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	if err := write(f, args[0]); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return nil
}

// renderState prints the request status and the inline failure message.
func renderState(w io.Writer, state model.RequestState) {
	if state.Message != "" {
		fmt.Fprintf(w, "[%s] %s\n", state.Status, state.Message)
		return
	}
	fmt.Fprintf(w, "[%s]\n", state.Status)
}

type storageBrowser struct {
	view   *client.StorageView
	output string
}

func (b *storageBrowser) help() string {
	return "next | prev | reset | filter [user_id=] [collection=] [key=] | delete [collection] [key] [user_id] | delete-all | export [format] [file] | quit"
}

func (b *storageBrowser) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "reset":
		return b.view.Reset(ctx, b.view.Filter())
	case "next":
		sent, err := b.view.Advance(ctx)
		if !sent && err == nil {
			fmt.Fprintln(os.Stdout, "No more pages.")
		}
		return err
	case "prev":
		sent, err := b.view.Retreat(ctx)
		if !sent && err == nil {
			fmt.Fprintln(os.Stdout, "Already on the first page.")
		}
		return err
	case "filter":
		filter := model.StorageFilter{}
		for _, arg := range args {
			name, value, _ := strings.Cut(arg, "=")
			switch name {
			case "user_id":
				filter.UserId = value
			case "collection":
				filter.Collection = value
			case "key":
				filter.Key = value
			}
		}
		return b.view.Reset(ctx, filter)
	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(os.Stdout, "usage: delete [collection] [key] [user_id]")
			return nil
		}
		userId := ""
		if len(args) > 2 {
			userId = args[2]
		}
		ref, err := model.NewStorageObjectRequest(args[0], args[1], userId)
		if err != nil {
			fmt.Fprintln(os.Stdout, err)
			return nil
		}
		_, err = b.view.Delete(ctx, ref)
		return err
	case "delete-all":
		_, err := b.view.DeleteAll(ctx)
		return err
	case "export":
		if err := writeExport(args, func(w io.Writer, format string) error {
			return writeStorageObjects(w, format, b.view.Result().Objects)
		}); err != nil {
			fmt.Fprintln(os.Stdout, err)
		}
		return nil
	}

	fmt.Fprintln(os.Stdout, b.help())

	return nil
}

func (b *storageBrowser) render(w io.Writer) {
	result := b.view.Result()
	if err := writeStorageObjects(w, b.output, result.Objects); err != nil {
		fmt.Fprintln(w, err)
	}
	fmt.Fprintf(w, "%s  page %d  total %d\n", b.view.Location(), b.view.Depth()+1, result.TotalCount)
	renderState(w, b.view.State())
}

type usersBrowser struct {
	view   *client.UserView
	output string
}

func (b *usersBrowser) help() string {
	return "next | prev | reset | filter [text] | all | banned | tombstones | delete [id] | ban [id] | unban [id] | delete-all | export [format] [file] | quit"
}

func (b *usersBrowser) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "reset":
		return b.view.Reset(ctx, b.view.Filter())
	case "next":
		sent, err := b.view.Advance(ctx)
		if !sent && err == nil {
			fmt.Fprintln(os.Stdout, "No more pages.")
		}
		return err
	case "prev":
		sent, err := b.view.Retreat(ctx)
		if !sent && err == nil {
			fmt.Fprintln(os.Stdout, "Already on the first page.")
		}
		return err
	case "filter":
		filter := b.view.Filter()
		filter.Filter = strings.Join(args, " ")
		return b.view.Reset(ctx, filter)
	case "all":
		return b.view.ShowAll(ctx)
	case "banned":
		return b.view.ShowBanned(ctx)
	case "tombstones":
		return b.view.ShowTombstones(ctx)
	case "delete", "ban", "unban":
		if len(args) != 1 {
			fmt.Fprintf(os.Stdout, "usage: %s [id]\n", cmd)
			return nil
		}
		switch cmd {
		case "ban":
			return b.view.Ban(ctx, args[0])
		case "unban":
			return b.view.Unban(ctx, args[0])
		}
		_, err := b.view.Delete(ctx, args[0])
		return err
	case "delete-all":
		_, err := b.view.DeleteAll(ctx)
		return err
	case "export":
		if err := writeExport(args, func(w io.Writer, format string) error {
			return writeUsers(w, format, b.view.Result().Users)
		}); err != nil {
			fmt.Fprintln(os.Stdout, err)
		}
		return nil
	}

	fmt.Fprintln(os.Stdout, b.help())

	return nil
}

func (b *usersBrowser) render(w io.Writer) {
	result := b.view.Result()
	if err := writeUsers(w, b.output, result.Users); err != nil {
		fmt.Fprintln(w, err)
	}
	fmt.Fprintf(w, "%s  total %d\n", b.view.Location(), result.TotalCount)
	renderState(w, b.view.State())
}

type tournamentsBrowser struct {
	view   *client.TournamentView
	output string
}

func (b *tournamentsBrowser) help() string {
	return "reset | delete [id] | export [format] [file] | quit"
}

func (b *tournamentsBrowser) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "reset":
		return b.view.Reset(ctx)
	case "delete":
		if len(args) != 1 {
			fmt.Fprintln(os.Stdout, "usage: delete [id]")
			return nil
		}
		_, err := b.view.Delete(ctx, args[0])
		return err
	case "export":
		if err := writeExport(args, func(w io.Writer, format string) error {
			return writeTournaments(w, format, b.view.Result().Tournaments)
		}); err != nil {
			fmt.Fprintln(os.Stdout, err)
		}
		return nil
	}

	fmt.Fprintln(os.Stdout, b.help())

	return nil
}

func (b *tournamentsBrowser) render(w io.Writer) {
	result := b.view.Result()
	if err := writeTournaments(w, b.output, result.Tournaments); err != nil {
		fmt.Fprintln(w, err)
	}
	fmt.Fprintf(w, "total %d\n", result.TotalCount)
	renderState(w, b.view.State())
}

func init() {
	rootCmd.AddCommand(GetBrowseCmd())
}
