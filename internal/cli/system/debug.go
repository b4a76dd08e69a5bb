package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/moodcast/internal/cli"
	"github.com/julianstephens/moodcast/internal/forecast"
	"github.com/julianstephens/moodcast/internal/keyring"
	"github.com/julianstephens/moodcast/internal/models"
	"github.com/julianstephens/moodcast/internal/storage"
)

type DebugCmd struct {
	DBPath  DebugDBPathCmd  `cmd:"" help:"Show the configured database."`
	DumpLog DebugDumpLogCmd `cmd:"" help:"Dump a mood log as JSON."`
	Trace   DebugTraceCmd   `cmd:"" help:"Dump the forecast window and weekday summaries as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	if ctx.StoreErr != nil {
		return ctx.StoreErr
	}
	backend := "sqlite"
	path := ctx.Store.GetConfigPath()
	if storage.IsPostgres(ctx.Store) {
		backend = "postgres"
		path = keyring.MaskPassword(path)
	}
	return ctx.PrintJSON(map[string]string{
		"backend": backend,
		"path":    path,
	})
}

type DebugDumpLogCmd struct {
	ID string `arg:"" help:"ID of the mood log to dump."`
}

func (cmd *DebugDumpLogCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	l, err := ctx.Store.GetMoodLog(cmd.ID)
	if err != nil {
		if errors.Is(err, models.ErrMoodLogNotFound) {
			return fmt.Errorf("mood log not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get mood log: %w", err)
	}
	return ctx.PrintJSON(l)
}

type DebugTraceCmd struct {
	Seed uint64 `help:"Fixed seed for the weekday activity draw (0 uses the clock)."`
}

func (cmd *DebugTraceCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	opts := []forecast.Option{forecast.WithClock(ctx.Clock)}
	if cmd.Seed != 0 {
		seed := cmd.Seed
		opts = append(opts, forecast.WithSeedFunc(func(wd time.Weekday) uint64 { return seed + uint64(wd) }))
	}

	tr, err := forecast.NewService(ctx.Store, opts...).Trace()
	if err != nil {
		return err
	}
	return ctx.PrintJSON(tr)
}
