package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/moodcast/internal/cli"
	"github.com/julianstephens/moodcast/internal/storage"
	"github.com/julianstephens/moodcast/internal/storage/postgres"
	"github.com/julianstephens/moodcast/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"SQLite path or PostgreSQL connection string to copy mood logs from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if ctx.StoreErr != nil {
		return ctx.StoreErr
	}

	if c.Force {
		if storage.IsPostgres(ctx.Store) {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" && c.Source == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Fprintf(ctx.Out(), "Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out(), "Initialized moodcast storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(ctx.Out(), "Copying mood logs from: %s\n", c.Source)
		n, err := copyLogs(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(ctx.Out(), "    Migrated %d mood logs\n", n)
	}
	return nil
}

func copyLogs(ctx *cli.Context, source string) (int, error) {
	var src storage.Provider
	if postgres.IsConnString(source) {
		if _, err := postgres.ValidateConnString(source); err != nil {
			return 0, err
		}
		src = postgres.New(source)
	} else {
		path, err := storage.ExpandPath(source)
		if err != nil {
			return 0, err
		}
		src = sqlite.NewStore(path)
	}

	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	logs, err := src.GetAllMoodLogs()
	if err != nil {
		return 0, fmt.Errorf("failed to read mood logs from source: %w", err)
	}
	for _, l := range logs {
		if err := ctx.Store.AddMoodLog(l); err != nil {
			return 0, fmt.Errorf("failed to add mood log %s: %w", l.ID, err)
		}
	}
	return len(logs), nil
}
