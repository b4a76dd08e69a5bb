package logs

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcast/internal/cli"
	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/models"
)

var (
	dateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	moodStyle    = lipgloss.NewStyle().Bold(true).Width(9)
	deletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type LogListCmd struct {
	Days    int  `help:"How many days back to list." default:"14"`
	Deleted bool `help:"Include soft-deleted logs."`
	JSON    bool `help:"Print the logs as JSON."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	days := c.Days
	if days <= 0 {
		days = constants.DefaultListDays
	}

	since := ctx.Clock().AddDate(0, 0, -days)
	logs, err := ctx.Store.GetMoodLogs(since, time.Time{}, c.Deleted)
	if err != nil {
		return fmt.Errorf("failed to list mood logs: %w", err)
	}

	if c.JSON {
		if logs == nil {
			logs = []models.MoodLog{}
		}
		return ctx.PrintJSON(logs)
	}

	if len(logs) == 0 {
		fmt.Fprintf(ctx.Out(), "No mood logs in the last %d days.\n", days)
		return nil
	}
	for _, l := range logs {
		fmt.Fprintln(ctx.Out(), formatLog(l, ctx.Location))
	}
	return nil
}

func formatLog(l models.MoodLog, loc *time.Location) string {
	ts := l.Timestamp
	if loc != nil {
		ts = ts.In(loc)
	}
	line := fmt.Sprintf("%s  %s %s",
		dateStyle.Render(ts.Format("Mon 2006-01-02 15:04")),
		moodStyle.Render(models.NormalizeMood(l.Mood).Title()),
		strings.Join(l.Activities, ", "),
	)
	if l.IsDeleted() {
		line = deletedStyle.Render(line) + " (deleted)"
	}
	return line + "  " + idStyle.Render(l.ID)
}
