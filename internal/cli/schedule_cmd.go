package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/protocol/internal/cli/formatter"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/service"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"sched"},
		Short:   "Edit the recurring base schedule",
		Long: "Edit the base schedule every new day starts from. Changes take effect at\n" +
			"the next rollover unless --apply-today is given.",
	}

	cmd.AddCommand(
		newScheduleShowCmd(app),
		newScheduleAddCmd(app),
		newScheduleEditCmd(app),
		newScheduleRemoveCmd(app),
		newScheduleImportCmd(app),
		newScheduleApplyCmd(app),
	)

	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the base schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Schedule.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(*s, app.Clock.Now()))
			return nil
		},
	}
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var applyToday bool

	cmd := &cobra.Command{
		Use:   "add LABEL START END",
		Short: "Add a task to the base schedule",
		Example: `  protocol schedule add Gym 07:00 08:00
  protocol schedule add "Deep work" 09:00 11:30 --apply-today`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Schedule.AddTask(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return scheduleSaved(cmd, app, s, applyToday)
		},
	}

	addApplyTodayFlag(cmd.Flags(), &applyToday)
	return cmd
}

func newScheduleEditCmd(app *App) *cobra.Command {
	var (
		label, start, end string
		applyToday        bool
	)

	cmd := &cobra.Command{
		Use:   "edit N",
		Short: "Change a base schedule task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseTaskNumber(args[0])
			if err != nil {
				return err
			}

			var patch service.TaskPatch
			if cmd.Flags().Changed("label") {
				patch.Label = &label
			}
			if cmd.Flags().Changed("start") {
				patch.Start = &start
			}
			if cmd.Flags().Changed("end") {
				patch.End = &end
			}
			if patch.Label == nil && patch.Start == nil && patch.End == nil {
				return fmt.Errorf("nothing to change: pass --label, --start or --end")
			}

			s, err := app.Schedule.UpdateTask(cmd.Context(), index, patch)
			if err != nil {
				return err
			}
			return scheduleSaved(cmd, app, s, applyToday)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "New label")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	addApplyTodayFlag(cmd.Flags(), &applyToday)
	return cmd
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	var applyToday bool

	cmd := &cobra.Command{
		Use:     "rm N",
		Aliases: []string{"remove"},
		Short:   "Remove a task from the base schedule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseTaskNumber(args[0])
			if err != nil {
				return err
			}
			s, err := app.Schedule.RemoveTask(cmd.Context(), index)
			if err != nil {
				return err
			}
			return scheduleSaved(cmd, app, s, applyToday)
		},
	}

	addApplyTodayFlag(cmd.Flags(), &applyToday)
	return cmd
}

func newScheduleImportCmd(app *App) *cobra.Command {
	var appendMode, applyToday bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import the base schedule from a JSON or YAML file",
		Long: "Import tasks from a JSON array or YAML list of {label, start, end}. The\n" +
			"file replaces the base schedule unless --append is given. A file with any\n" +
			"invalid entry is rejected as a whole.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := service.ImportReplace
			if appendMode {
				mode = service.ImportAppend
			}
			res, err := app.Schedule.Import(cmd.Context(), args[0], mode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d task(s) (%s)\n",
				formatter.StyleGreen.Render("✔"), res.Imported, res.Mode)
			return scheduleSaved(cmd, app, res.Schedule, applyToday)
		},
	}

	cmd.Flags().BoolVar(&appendMode, "append", false, "Add the imported tasks to the existing schedule")
	addApplyTodayFlag(cmd.Flags(), &applyToday)
	return cmd
}

func newScheduleApplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Replace today's tasks with the base schedule",
		Long: "Replace today's tasks with a fresh copy of the base schedule. Progress on\n" +
			"today's tasks is lost; penalties are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Schedule.Get(cmd.Context())
			if err != nil {
				return err
			}
			if err := applyToToday(cmd.Context(), app, s); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderBoard(app))
			return nil
		},
	}
}

// scheduleSaved prints the saved schedule and applies it to today when asked.
func scheduleSaved(cmd *cobra.Command, app *App, s *domain.BaseSchedule, applyToday bool) error {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatter.FormatSchedule(*s, app.Clock.Now()))
	if !applyToday {
		return nil
	}
	if err := applyToToday(cmd.Context(), app, s); err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.Dim("Applied to today."))
	return nil
}

func applyToToday(ctx context.Context, app *App, s *domain.BaseSchedule) error {
	if err := app.Tracker.Open(ctx); err != nil {
		return err
	}
	_, err := app.Tracker.ApplyBaseToToday(ctx, *s)
	return err
}

// parseTaskNumber converts a 1-based task number to a schedule index.
func parseTaskNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number %q: expected 1 or more", arg)
	}
	return n - 1, nil
}
