package cli

import (
	"fmt"

	"github.com/alexanderramin/protocol/internal/cli/formatter"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/tracker"
	"github.com/spf13/cobra"
)

func newDoneCmd(app *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "done TASK",
		Short: "Mark a task complete",
		Long:  "Mark a task complete. TASK is its number on the board or its label.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Tracker.Open(ctx); err != nil {
				return err
			}
			key, err := tracker.ResolveTask(app.Tracker.Current(), args[0], start)
			if err != nil {
				return err
			}
			rec, err := app.Tracker.CompleteTask(ctx, key)
			if err != nil {
				return err
			}

			t := taskByKey(rec, key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.StyleGreen.Render("✔"), t.Label, formatter.Dim(formatter.TimeRange(t.Start, t.End)))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM) to pick between tasks sharing a label")
	return cmd
}

func newPartialCmd(app *App) *cobra.Command {
	var (
		start   string
		minutes int
	)

	cmd := &cobra.Command{
		Use:   "partial TASK --minutes N",
		Short: "Record partial work on a task",
		Long: "Record N minutes of work on a task and close it. Any shortfall against\n" +
			"the scheduled duration becomes an open penalty.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Tracker.Open(ctx); err != nil {
				return err
			}
			before := app.Tracker.Current()
			key, err := tracker.ResolveTask(before, args[0], start)
			if err != nil {
				return err
			}
			rec, err := app.Tracker.PartialCompleteTask(ctx, key, minutes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			t := taskByKey(rec, key)
			if !t.PartiallyCompleted {
				fmt.Fprintf(out, "%s %s done in full\n", formatter.StyleGreen.Render("✔"), t.Label)
				return nil
			}
			owed := rec.OpenPenaltyMinutes() - before.OpenPenaltyMinutes()
			fmt.Fprintf(out, "%s %s: %s moved to penalties\n",
				formatter.StyleYellow.Render("◐"), t.Label,
				formatter.PenaltyStyle(owed).Render(formatter.FormatMinutes(owed)))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM) to pick between tasks sharing a label")
	addMinutesFlag(cmd.Flags(), &minutes, "Minutes of work done")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func taskByKey(rec domain.DailyRecord, key domain.TaskKey) domain.Task {
	for _, t := range rec.Tasks {
		if t.Key() == key {
			return t
		}
	}
	return domain.Task{Label: key.Label, Start: key.Start}
}
