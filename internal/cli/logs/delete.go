package logs

import (
	"errors"
	"fmt"

	"github.com/julianstephens/moodcast/internal/cli"
	"github.com/julianstephens/moodcast/internal/models"
)

type LogDeleteCmd struct {
	ID string `arg:"" help:"ID of the mood log to delete."`
}

func (c *LogDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	if err := ctx.Store.DeleteMoodLog(c.ID); err != nil {
		if errors.Is(err, models.ErrMoodLogNotFound) {
			return fmt.Errorf("no active mood log with id %s", c.ID)
		}
		return fmt.Errorf("failed to delete mood log: %w", err)
	}
	fmt.Fprintf(ctx.Out(), "✓ Deleted mood log %s (restore with 'moodcast log restore %s')\n", c.ID, c.ID)
	return nil
}

type LogRestoreCmd struct {
	ID string `arg:"" help:"ID of the deleted mood log to restore."`
}

func (c *LogRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	if err := ctx.Store.RestoreMoodLog(c.ID); err != nil {
		if errors.Is(err, models.ErrMoodLogNotFound) {
			return fmt.Errorf("no deleted mood log with id %s", c.ID)
		}
		return fmt.Errorf("failed to restore mood log: %w", err)
	}
	fmt.Fprintf(ctx.Out(), "✓ Restored mood log %s\n", c.ID)
	return nil
}
