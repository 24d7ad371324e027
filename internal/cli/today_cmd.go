package cli

import (
	"fmt"

	"github.com/alexanderramin/protocol/internal/cli/formatter"
	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's tasks and open penalties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tracker.Open(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderBoard(app))
			return nil
		},
	}
}

func renderBoard(app *App) string {
	return formatter.FormatBoard(app.Tracker.Current(), clock.IsWeekend(app.Clock)) + "\n"
}
