package cli

import (
	"fmt"

	"github.com/alexanderramin/protocol/internal/cli/formatter"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/tracker"
	"github.com/spf13/cobra"
)

func newPenaltyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "penalty",
		Short: "Inspect and settle penalties",
	}

	cmd.AddCommand(
		newPenaltyListCmd(app),
		newPenaltyResolveCmd(app),
		newPenaltyReduceCmd(app),
	)

	return cmd
}

func newPenaltyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List open penalties",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tracker.Open(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPenalties(app.Tracker.Current()))
			return nil
		},
	}
}

func newPenaltyResolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve PENALTY",
		Short: "Settle a penalty in full",
		Long:  "Settle a penalty in full. PENALTY is its number in 'penalty list' or an id prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Tracker.Open(ctx); err != nil {
				return err
			}
			before := app.Tracker.Current()
			id, err := tracker.ResolvePenalty(before, args[0])
			if err != nil {
				return err
			}
			rec, err := app.Tracker.ResolvePenalty(ctx, id)
			if err != nil {
				return err
			}

			p := penaltyByID(before, id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Resolved %s %s (%s)\n",
				formatter.StyleGreen.Render("✔"), p.Label, formatter.Dim(formatter.TruncID(p.ID)),
				formatter.FormatMinutes(p.Duration))
			printRemainingDebt(cmd, rec)
			return nil
		},
	}
}

func newPenaltyReduceCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "reduce PENALTY --minutes N",
		Short: "Pay off part of a penalty",
		Long: "Pay off N minutes of a penalty. Paying off the whole amount or more\n" +
			"settles it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Tracker.Open(ctx); err != nil {
				return err
			}
			id, err := tracker.ResolvePenalty(app.Tracker.Current(), args[0])
			if err != nil {
				return err
			}
			rec, err := app.Tracker.ReducePenalty(ctx, id, minutes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := penaltyByID(rec, id)
			if p.Completed {
				fmt.Fprintf(out, "%s Resolved %s %s\n",
					formatter.StyleGreen.Render("✔"), p.Label, formatter.Dim(formatter.TruncID(p.ID)))
			} else {
				fmt.Fprintf(out, "%s %s %s: %s left\n",
					formatter.StyleYellow.Render("◐"), p.Label, formatter.Dim(formatter.TruncID(p.ID)),
					formatter.PenaltyStyle(p.Duration).Render(formatter.FormatMinutes(p.Duration)))
			}
			printRemainingDebt(cmd, rec)
			return nil
		},
	}

	addMinutesFlag(cmd.Flags(), &minutes, "Minutes paid off")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func printRemainingDebt(cmd *cobra.Command, rec domain.DailyRecord) {
	total := rec.OpenPenaltyMinutes()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Dim("Open debt:"),
		formatter.PenaltyStyle(total).Render(formatter.FormatMinutes(total)))
}

func penaltyByID(rec domain.DailyRecord, id string) domain.Penalty {
	for _, p := range rec.Penalties {
		if p.ID == id {
			return p
		}
	}
	return domain.Penalty{ID: id}
}
