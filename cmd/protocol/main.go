package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/protocol/internal/cli"
	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/alexanderramin/protocol/internal/config"
	"github.com/alexanderramin/protocol/internal/db"
	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/service"
	"github.com/alexanderramin/protocol/internal/tracker"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(os.Stderr, cfg.LogLevel)
	sysClock := clock.System{}

	// watch redraws from this channel; one-shot commands never read it, so
	// only the newest snapshot is kept.
	changes := make(chan domain.DailyRecord, 1)
	store := tracker.New(tracker.Deps{
		Persistence: service.NewDailyStatePersistence(cfg.UserID, uow),
		Clock:       sysClock,
		Observer:    observer,
		OnChange: func(rec domain.DailyRecord) {
			for {
				select {
				case changes <- rec:
					return
				default:
				}
				select {
				case <-changes:
				default:
				}
			}
		},
	})
	defer func() {
		if closeErr := store.Close(context.Background()); err == nil {
			err = closeErr
		}
	}()

	app := &cli.App{
		Tracker:      store,
		Schedule:     service.NewScheduleService(cfg.UserID, uow, sysClock, observer),
		Clock:        sysClock,
		PollInterval: cfg.PollInterval,
		Changes:      changes,
	}

	// Clear the screen between redraws only on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
