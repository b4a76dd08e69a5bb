package forecast

import (
	"time"

	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/models"
	"github.com/julianstephens/moodcast/internal/utils"
)

// Window is the half-open history range [Start, End) the forecast learns from.
// End is Monday 00:00 of the current week; Start is four weeks earlier.
type Window struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// NewWindow derives the lookback window for logs as seen at now. The window
// takes the location of the most recent log; the week boundary comes from now,
// not from the logs.
func NewWindow(logs []models.MoodLog, now time.Time) (Window, error) {
	if len(logs) == 0 {
		return Window{}, ErrEmptyInput
	}

	mostRecent := logs[0].Timestamp
	for _, l := range logs[1:] {
		if l.Timestamp.After(mostRecent) {
			mostRecent = l.Timestamp
		}
	}

	loc := mostRecent.Location()
	end := utils.StartOfWeek(now, loc)
	w := Window{
		Start:    end.AddDate(0, 0, -constants.LookbackDays),
		End:      end,
		Location: loc,
	}

	logger.Debug("Computed lookback window",
		"most_recent", mostRecent.Format(time.RFC3339),
		"start", w.Start.Format(time.RFC3339),
		"end", w.End.Format(time.RFC3339),
	)
	return w, nil
}

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Filter returns the logs inside the window, in their original order.
func (w Window) Filter(logs []models.MoodLog) []models.MoodLog {
	var kept []models.MoodLog
	for _, l := range logs {
		if w.Contains(l.Timestamp) {
			kept = append(kept, l)
		}
	}
	logger.Debug("Filtered logs to window", "total", len(logs), "kept", len(kept))
	return kept
}

// Weekday returns the calendar weekday of t in the window's location.
func (w Window) Weekday(t time.Time) time.Weekday {
	if w.Location == nil {
		return t.Weekday()
	}
	return t.In(w.Location).Weekday()
}
