package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/models"
)

// NewLogForm builds the form used to record a mood log.
func NewLogForm(fm *LogFormModel) *huh.Form {
	var moods []huh.Option[models.Mood]
	for _, mood := range models.MoodVocabulary {
		if mood.IsKnown() {
			moods = append(moods, huh.NewOption(mood.Title(), mood))
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Mood]().
				Title("Mood").
				Options(moods...).
				Value(&fm.Mood),
			huh.NewMultiSelect[string]().
				Title("Activities").
				Options(huh.NewOptions(constants.SuggestedActivities...)...).
				Value(&fm.Activities),
			huh.NewInput().
				Title("Other activities").
				Description("Comma separated").
				Value(&fm.Extra),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Social").
				Options(huh.NewOptions(constants.SuggestedSocial...)...).
				Value(&fm.Social),
			huh.NewMultiSelect[string]().
				Title("Health").
				Options(huh.NewOptions(constants.SuggestedHealth...)...).
				Value(&fm.Health),
			huh.NewSelect[string]().
				Title("Sleep quality").
				Options(huh.NewOptions(constants.SleepQualities...)...).
				Value(&fm.SleepQuality),
		),
	).WithTheme(huh.ThemeDracula())
}

// ToMoodLog turns a completed form into a new log stamped at now.
func (fm *LogFormModel) ToMoodLog(now time.Time) (models.MoodLog, error) {
	activities := append([]string{}, fm.Activities...)
	activities = append(activities, SplitList(fm.Extra)...)

	l := models.MoodLog{
		ID:           uuid.New().String(),
		Timestamp:    now,
		Mood:         string(fm.Mood),
		Activities:   activities,
		Social:       fm.Social,
		Health:       fm.Health,
		SleepQuality: fm.SleepQuality,
	}
	if err := l.Validate(); err != nil {
		return models.MoodLog{}, fmt.Errorf("invalid mood log: %w", err)
	}
	return l, nil
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
