package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/itiky/game-console/export"
	"github.com/itiky/game-console/model"
	"github.com/itiky/game-console/service/client"
)

const (
	FlagTitle        = "title"
	FlagDescription  = "description"
	FlagCategory     = "category"
	FlagSortOrder    = "sort-order"
	FlagOperator     = "operator"
	FlagDuration     = "duration"
	FlagMaxSize      = "max-size"
	FlagMaxNumScore  = "max-num-score"
	FlagStartTime    = "start-time"
	FlagEndTime      = "end-time"
	FlagReset        = "reset"
	FlagMetadata     = "metadata"
	FlagJoinRequired = "join-required"
)

// GetTournamentsCmd returns tournaments command group.
func GetTournamentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournaments",
		Short: "Manage tournaments",
	}
	cmd.AddCommand(
		getTournamentsListCmd(),
		getTournamentsGetCmd(),
		getTournamentsCreateCmd(),
		getTournamentsDeleteCmd(),
	)

	return cmd
}

func getTournamentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tournaments",
		Run: func(cmd *cobra.Command, args []string) {
			output, _ := cmd.Flags().GetString(FlagOutput)

			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			view := client.NewTournamentView(c.dispatcher)
			if err := view.Reset(ctx); err != nil {
				log.Fatalf("list tournaments: %v", err)
			}

			if err := writeTournaments(os.Stdout, output, view.Result().Tournaments); err != nil {
				log.Fatalf("output: %v", err)
			}
		},
	}
	addOutputFlag(cmd)

	return cmd
}

func getTournamentsGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show tournament details",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			output, _ := cmd.Flags().GetString(FlagOutput)
			req, err := model.NewTournamentRequest(args[0])
			if err != nil {
				log.Fatalf("invalid tournament id: %v", err)
			}

			// Work
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			tournament, err := c.dispatcher.GetTournament(ctx, req)
			if err != nil {
				log.Fatalf("get tournament: %v", err)
			}

			if output != outputTable {
				if err := writeTournaments(os.Stdout, output, []model.Tournament{tournament}); err != nil {
					log.Fatalf("output: %v", err)
				}
				return
			}
			if err := writeTournamentDetails(os.Stdout, tournament); err != nil {
				log.Fatalf("output: %v", err)
			}
		},
	}
	addOutputFlag(cmd)

	return cmd
}

func getTournamentsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tournament",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			title, _ := cmd.Flags().GetString(FlagTitle)
			description, _ := cmd.Flags().GetString(FlagDescription)
			category, _ := cmd.Flags().GetInt(FlagCategory)
			sortOrder, _ := cmd.Flags().GetString(FlagSortOrder)
			operator, _ := cmd.Flags().GetString(FlagOperator)
			duration, _ := cmd.Flags().GetInt64(FlagDuration)
			maxSize, _ := cmd.Flags().GetInt(FlagMaxSize)
			maxNumScore, _ := cmd.Flags().GetInt(FlagMaxNumScore)
			startTime, _ := cmd.Flags().GetInt64(FlagStartTime)
			endTime, _ := cmd.Flags().GetInt64(FlagEndTime)
			reset, _ := cmd.Flags().GetString(FlagReset)
			rawMetadata, _ := cmd.Flags().GetString(FlagMetadata)
			joinRequired, _ := cmd.Flags().GetBool(FlagJoinRequired)

			metadata, err := model.ParseMetadata(rawMetadata)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagMetadata, err)
			}

			req, err := model.NewCreateTournamentRequest(title, model.SortOrder(sortOrder), model.Operator(operator), duration,
				model.WithDescription(description),
				model.WithCategory(category),
				model.WithLimits(maxSize, maxNumScore),
				model.WithSchedule(startTime, endTime, reset),
				model.WithMetadata(metadata),
				model.WithJoinRequired(joinRequired),
			)
			if err != nil {
				log.Fatalf("invalid tournament: %v", err)
			}

			// Work
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			view := client.NewTournamentView(c.dispatcher)
			tournament, err := view.Create(ctx, req)
			if err != nil {
				log.Fatalf("create tournament: %v", err)
			}
			fmt.Println(tournament.Id)
		},
	}
	cmd.Flags().String(FlagTitle, "", "tournament title")
	cmd.Flags().String(FlagDescription, "", "(optional) description")
	cmd.Flags().Int(FlagCategory, 0, "(optional) category [0, 127]")
	cmd.Flags().String(FlagSortOrder, string(model.DescendingSortOrder), "(optional) sort order: asc|desc")
	cmd.Flags().String(FlagOperator, string(model.BestOperator), "(optional) score operator: best|set|incr")
	cmd.Flags().Int64(FlagDuration, 3600, "(optional) active duration in seconds")
	cmd.Flags().Int(FlagMaxSize, 0, "(optional) max participants")
	cmd.Flags().Int(FlagMaxNumScore, 0, "(optional) max score submissions per participant")
	cmd.Flags().Int64(FlagStartTime, 0, "(optional) start unix time")
	cmd.Flags().Int64(FlagEndTime, 0, "(optional) end unix time")
	cmd.Flags().String(FlagReset, "", "(optional) reset CRON expression")
	cmd.Flags().String(FlagMetadata, "", "(optional) JSON object metadata")
	cmd.Flags().Bool(FlagJoinRequired, false, "(optional) participants must join first")

	return cmd
}

func getTournamentsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a tournament",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			c, err := newConsole(ctx)
			if err != nil {
				log.Fatalf("console init: %v", err)
			}
			defer c.close()

			view := client.NewTournamentView(c.dispatcher, client.WithConfirm(newConfirm(cmd)))
			sent, err := view.Delete(ctx, args[0])
			if err != nil {
				log.Fatalf("delete tournament: %v", err)
			}
			if sent {
				fmt.Println("Tournament deleted.")
			}
		},
	}
	addConfirmFlag(cmd)

	return cmd
}

func writeTournaments(w io.Writer, format string, tournaments []model.Tournament) error {
	header := []string{"ID", "TITLE", "CATEGORY", "SIZE", "DURATION", "START"}

	return writeItems(w, format, tournaments, header, func(t model.Tournament) []string {
		return []string{
			t.Id,
			t.Title,
			strconv.Itoa(t.Category),
			fmt.Sprintf("%d/%d", t.Size, t.MaxSize),
			export.FormatDuration(t.Duration),
			export.FormatDate(t.StartTime, nil),
		}
	})
}

// writeTournamentDetails prints a tournament as a key / value list.
func writeTournamentDetails(w io.Writer, t model.Tournament) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", t.Id},
		{"Title", t.Title},
		{"Description", t.Description},
		{"Category", strconv.Itoa(t.Category)},
		{"Sort order", string(t.SortOrder)},
		{"Operator", string(t.Operator)},
		{"Size", strconv.Itoa(t.Size)},
		{"Max size", strconv.Itoa(t.MaxSize)},
		{"Max num score", strconv.Itoa(t.MaxNumScore)},
		{"Can enter", strconv.FormatBool(t.CanEnter)},
		{"Duration", export.FormatDuration(t.Duration)},
		{"Created", export.FormatDate(t.CreateTime, nil)},
		{"Start time", export.FormatDate(t.StartTime, nil)},
		{"End time", export.FormatDate(t.EndTime, nil)},
		{"Start active", export.FormatDate(t.StartActive, nil)},
		{"End active", export.FormatDate(t.EndActive, nil)},
		{"Next reset", export.FormatDate(t.NextReset, nil)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}

	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(GetTournamentsCmd())
}
