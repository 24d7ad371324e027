package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/protocol/internal/app"
	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/alexanderramin/protocol/internal/config"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the use cases CLI commands drive.
type App struct {
	Tracker  app.DailyTracker
	Schedule service.ScheduleService
	Clock    clock.Clock

	// PollInterval is the default day-change interval for watch.
	PollInterval time.Duration
	// Changes delivers tracker snapshots to watch. May be nil.
	Changes <-chan domain.DailyRecord
	// IsInteractive reports whether output is a terminal. Nil means false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "protocol" command and registers all
// subcommands against the provided App. Every command flushes pending
// tracker writes before it returns.
func NewRootCmd(app *App) *cobra.Command {
	if app.Clock == nil {
		app.Clock = clock.System{}
	}
	if app.PollInterval <= 0 {
		app.PollInterval = config.DefaultPollInterval
	}

	root := &cobra.Command{
		Use:           "protocol",
		Short:         "Daily task tracker that turns unfinished work into penalties",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			// watch returns after its context is cancelled; writes still land.
			return app.Tracker.Flush(context.WithoutCancel(cmd.Context()))
		},
	}

	root.AddCommand(
		newTodayCmd(app),
		newDoneCmd(app),
		newPartialCmd(app),
		newPenaltyCmd(app),
		newScheduleCmd(app),
		newExportCmd(app),
		newWatchCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
