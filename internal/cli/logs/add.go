package logs

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/moodcast/internal/cli"
	"github.com/julianstephens/moodcast/internal/models"
	"github.com/julianstephens/moodcast/internal/tui"
	"github.com/julianstephens/moodcast/internal/utils"
)

type LogAddCmd struct {
	Mood        string   `arg:"" optional:"" help:"Mood to log (relaxed, happy, fine, anxious, sad, angry)."`
	Activity    []string `short:"a" help:"Activity done (repeatable or comma separated)."`
	Social      []string `short:"s" help:"People you spent time with."`
	Health      []string `help:"Health habits (exercise, walk, ...)."`
	Sleep       string   `help:"Sleep quality (1-4)."`
	At          string   `help:"When the mood was felt (ISO-8601). Defaults to now."`
	Interactive bool     `short:"i" help:"Fill in the log with an interactive form."`
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	l, err := c.build(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Store.AddMoodLog(l); err != nil {
		return fmt.Errorf("failed to save mood log: %w", err)
	}

	fmt.Fprintf(ctx.Out(), "✓ Logged %s at %s (id: %s)\n", models.NormalizeMood(l.Mood).Title(), l.Timestamp.Format("2006-01-02 15:04"), l.ID)
	return nil
}

func (c *LogAddCmd) build(ctx *cli.Context) (models.MoodLog, error) {
	ts := ctx.Clock()
	if c.At != "" {
		parsed, err := utils.ParseTimestamp(c.At)
		if err != nil {
			return models.MoodLog{}, err
		}
		ts = parsed
	}

	if c.Interactive {
		fm := &tui.LogFormModel{Mood: models.NormalizeMood(c.Mood)}
		if !fm.Mood.IsKnown() {
			fm.Mood = models.MoodFine
		}
		if err := tui.NewLogForm(fm).Run(); err != nil {
			return models.MoodLog{}, fmt.Errorf("form cancelled: %w", err)
		}
		return fm.ToMoodLog(ts)
	}

	if strings.TrimSpace(c.Mood) == "" {
		return models.MoodLog{}, fmt.Errorf("a mood is required (or use -i)")
	}
	l := models.MoodLog{
		ID:           uuid.New().String(),
		Timestamp:    ts,
		Mood:         string(models.NormalizeMood(c.Mood)),
		Activities:   clean(c.Activity),
		Social:       clean(c.Social),
		Health:       clean(c.Health),
		SleepQuality: strings.TrimSpace(c.Sleep),
	}
	if err := l.Validate(); err != nil {
		return models.MoodLog{}, err
	}
	return l, nil
}

func clean(items []string) []string {
	var out []string
	for _, item := range items {
		out = append(out, tui.SplitList(item)...)
	}
	return out
}
