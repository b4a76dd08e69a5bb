package logs

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodcast/internal/cli"
	"github.com/julianstephens/moodcast/internal/forecast"
	"github.com/julianstephens/moodcast/internal/models"
)

// LogImportCmd stores logs given in the predict input format.
type LogImportCmd struct {
	File string `arg:"" default:"-" help:"JSON file to import, or - for stdin."`
}

func (c *LogImportCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	data, err := c.read(ctx)
	if err != nil {
		return err
	}
	logs, err := forecast.ParseLogs(data)
	if err != nil {
		return err
	}

	imported := 0
	for i, l := range logs {
		l.ID = uuid.New().String()
		l.Mood = string(models.NormalizeMood(l.Mood))
		if err := l.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w (imported %d so far)", i, err, imported)
		}
		if err := ctx.Store.AddMoodLog(l); err != nil {
			return fmt.Errorf("entry %d: failed to save: %w (imported %d so far)", i, err, imported)
		}
		imported++
	}
	fmt.Fprintf(ctx.Out(), "✓ Imported %d mood logs\n", imported)
	return nil
}

func (c *LogImportCmd) read(ctx *cli.Context) ([]byte, error) {
	if c.File == "" || c.File == "-" {
		return io.ReadAll(ctx.In())
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	return data, nil
}

// LogExportCmd prints stored logs in the predict input format, so the output
// can be piped straight into `moodcast predict`.
type LogExportCmd struct {
	Days int `help:"How many days back to export (0 for everything)." default:"30"`
}

func (c *LogExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	var since time.Time
	if c.Days > 0 {
		since = ctx.Clock().AddDate(0, 0, -c.Days)
	}
	logs, err := ctx.Store.GetMoodLogs(since, time.Time{}, false)
	if err != nil {
		return fmt.Errorf("failed to load mood logs: %w", err)
	}

	data, err := forecast.EncodeLogs(logs)
	if err != nil {
		return fmt.Errorf("failed to encode mood logs: %w", err)
	}
	_, err = fmt.Fprintln(ctx.Out(), string(data))
	return err
}
