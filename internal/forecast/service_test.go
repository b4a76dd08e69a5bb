package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/models"
)

type fakeSource struct {
	logs  []models.MoodLog
	err   error
	since time.Time
}

func (f *fakeSource) GetMoodLogs(since, until time.Time, includeDeleted bool) ([]models.MoodLog, error) {
	f.since = since
	if f.err != nil {
		return nil, f.err
	}
	var out []models.MoodLog
	for _, l := range f.logs {
		if !l.Timestamp.Before(since) && (until.IsZero() || l.Timestamp.Before(until)) {
			out = append(out, l)
		}
	}
	return out, nil
}

func weekOfLogs() []models.MoodLog {
	return []models.MoodLog{
		entry(at(time.September, 21, 9), "HAPPY", "Run"),
		entry(at(time.September, 22, 9), "Sad"),
		entry(at(time.September, 23, 9), "fine", "Read"),
		entry(at(time.September, 24, 9), "relaxed"),
		entry(at(time.September, 25, 9), "anxious", "Work"),
		entry(at(time.September, 26, 9), "happy", "Hike"),
		entry(at(time.September, 27, 9), "angry"),
	}
}

func TestServiceForecast(t *testing.T) {
	source := &fakeSource{logs: weekOfLogs()}
	resp, err := NewService(source, testOptions()...).Forecast()
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	wantSince := testNow.AddDate(0, 0, -constants.StoreFetchDays)
	if !source.since.Equal(wantSince) {
		t.Errorf("fetched since %v, want %v", source.since, wantSince)
	}
	if !resp.Success || resp.Message != "" {
		t.Errorf("Forecast() = %+v", resp)
	}
	if len(resp.Predictions) != 7 {
		t.Fatalf("Forecast() returned %d days, want 7", len(resp.Predictions))
	}
	mon, _ := resp.Predictions.Get(time.Monday)
	if !sameStrings(mon.Activities, []string{"Run"}) {
		t.Errorf("Monday activities = %v, want [Run]", mon.Activities)
	}
}

func TestServiceNotEnoughData(t *testing.T) {
	tests := []struct {
		name string
		logs []models.MoodLog
	}{
		{name: "no logs", logs: nil},
		{name: "six logs", logs: weekOfLogs()[:6]},
		{name: "older than fetch range", logs: append(weekOfLogs()[:6], entry(at(time.August, 1, 9), "happy"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := NewService(&fakeSource{logs: tt.logs}, testOptions()...).Forecast()
			if err != nil {
				t.Fatalf("Forecast() error = %v", err)
			}
			if !resp.Success || len(resp.Predictions) != 0 || resp.Message != constants.NotEnoughDataMessage {
				t.Errorf("Forecast() = %+v", resp)
			}
		})
	}
}

func TestServiceSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&fakeSource{err: boom}, testOptions()...).Forecast()
	if !errors.Is(err, boom) {
		t.Errorf("Forecast() error = %v, want wrapped boom", err)
	}
}

func TestServiceForecastInput(t *testing.T) {
	out, err := NewService(&fakeSource{logs: weekOfLogs()[:2]}, testOptions()...).ForecastInput()
	if err != nil {
		t.Fatalf("ForecastInput() error = %v", err)
	}

	logs, err := ParseLogs(out)
	if err != nil {
		t.Fatalf("ParseLogs() error = %v\n%s", err, out)
	}
	if len(logs) != 2 || logs[0].Mood != "happy" || logs[1].Mood != "sad" {
		t.Errorf("round-tripped logs = %+v", logs)
	}
	if logs[1].Activities == nil || len(logs[1].Activities) != 0 {
		t.Errorf("activities = %#v, want empty list", logs[1].Activities)
	}
}

func TestServiceTrace(t *testing.T) {
	tr, err := NewService(&fakeSource{logs: weekOfLogs()[:3]}, testOptions()...).Trace()
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}

	wantEnd := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	if !tr.WindowEnd.Equal(wantEnd) || !tr.WindowStart.Equal(wantEnd.AddDate(0, 0, -28)) {
		t.Errorf("window = [%v, %v)", tr.WindowStart, tr.WindowEnd)
	}
	if tr.Logs != 3 {
		t.Errorf("Logs = %d, want 3", tr.Logs)
	}
	if len(tr.Summaries) != 7 || tr.Summaries[0].Weekday != "Monday" || tr.Summaries[0].Mood != "happy" {
		t.Errorf("Summaries = %+v", tr.Summaries)
	}
	if len(tr.Predictions) != 7 {
		t.Errorf("Predictions has %d days, want 7", len(tr.Predictions))
	}
}
