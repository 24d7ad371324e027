package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/alexanderramin/protocol/internal/cli/formatter"
	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/service"
	"github.com/alexanderramin/protocol/internal/watcher"
	"github.com/spf13/cobra"
)

const clearScreen = "\033[H\033[2J"

func newWatchCmd(app *App) *cobra.Command {
	var (
		interval     time.Duration
		scheduleFile string
		applyToday   bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the board up to date across day changes",
		Long: "Show the board and redraw it whenever the record changes. The day is\n" +
			"checked every --interval; with --schedule-file the base schedule is\n" +
			"reimported each time that file is saved.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if err := app.Tracker.Open(ctx); err != nil {
				return err
			}

			screen := &board{out: cmd.OutOrStdout(), clear: app.interactive(), clock: app.Clock}

			var w *watcher.Watcher
			if scheduleFile != "" {
				var err error
				w, err = watcher.New([]string{scheduleFile}, func(path string) {
					reimport(ctx, app, screen, path, applyToday)
				})
				if err != nil {
					return fmt.Errorf("watching %s: %w", scheduleFile, err)
				}
				defer w.Close()
			}

			screen.render(app.Tracker.Current())

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = app.Tracker.Run(ctx, interval)
			}()
			if w != nil {
				wg.Add(1)
				go func() {
					defer wg.Done()
					w.Run(ctx, func(err error) { screen.note(fmt.Sprintf("watcher: %v", err)) })
				}()
			}

			for {
				select {
				case <-ctx.Done():
					wg.Wait()
					return nil
				case rec := <-app.Changes:
					screen.render(rec)
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", app.PollInterval, "How often to check for a new day")
	cmd.Flags().StringVar(&scheduleFile, "schedule-file", "", "Reimport the base schedule when this file changes")
	addApplyTodayFlag(cmd.Flags(), &applyToday)
	return cmd
}

func reimport(ctx context.Context, app *App, screen *board, path string, applyToday bool) {
	res, err := app.Schedule.Import(ctx, path, service.ImportReplace)
	if err != nil {
		screen.note(formatter.StyleRed.Render(fmt.Sprintf("Reimport of %s failed: %v", path, err)))
		return
	}
	if applyToday {
		// The tracker's change notification redraws the board.
		if _, err := app.Tracker.ApplyBaseToToday(ctx, *res.Schedule); err != nil {
			screen.note(formatter.StyleRed.Render(fmt.Sprintf("Applying schedule failed: %v", err)))
		}
		return
	}
	screen.note(formatter.Dim(fmt.Sprintf("Reloaded %d task(s) from %s; they apply from the next day.", res.Imported, path)))
}

// board serializes redraws from the tracker and the file watcher.
type board struct {
	out   io.Writer
	clear bool
	clock clock.Clock

	mu sync.Mutex
}

func (b *board) render(rec domain.DailyRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clear {
		fmt.Fprint(b.out, clearScreen)
	}
	fmt.Fprintln(b.out, formatter.FormatBoard(rec, clock.IsWeekend(b.clock)))
}

func (b *board) note(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.out, msg)
}
