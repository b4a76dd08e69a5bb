package forecast

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/models"
)

func testOptions() []Option {
	return []Option{WithClock(fixedClock), WithSeedFunc(fixedSeed), WithTrees(10)}
}

func decodeResponse(t *testing.T, out []byte) map[string]json.RawMessage {
	t.Helper()
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, out)
	}
	return resp
}

func TestPredictorPredict(t *testing.T) {
	logs := []models.MoodLog{
		entry(at(time.September, 14, 9), "happy", "Run"),
		entry(at(time.September, 21, 9), "happy", "Run"),
		entry(at(time.September, 16, 9), "sad", "Exam"),
		entry(at(time.October, 13, 9), "angry", "Traffic"), // current week, ignored
	}

	p := NewPredictor(testOptions()...)
	prediction, err := p.Predict(logs)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(prediction) != 7 {
		t.Fatalf("Predict() returned %d days, want 7", len(prediction))
	}
	if !p.Window().End.Equal(testWeekStart) {
		t.Errorf("Window().End = %v, want %v", p.Window().End, testWeekStart)
	}

	for i, d := range prediction {
		if d.Weekday != models.WeekdayVocabulary[i] {
			t.Errorf("prediction[%d].Weekday = %v", i, d.Weekday)
		}
		if !sameStrings(d.Activities, p.Summaries()[i].Activities) {
			t.Errorf("%v activities = %v, want %v", d.Weekday, d.Activities, p.Summaries()[i].Activities)
		}
		if len(d.Activities) > constants.MaxRepresentativeActivities {
			t.Errorf("%v has %d activities", d.Weekday, len(d.Activities))
		}
	}

	mon := summaryFor(t, p.Summaries(), time.Monday)
	if mon.Mood != models.MoodHappy || !sameStrings(mon.Activities, []string{"Run"}) {
		t.Errorf("Monday summary = %+v, want happy [Run]", mon)
	}
}

func TestPredictorEmptyInput(t *testing.T) {
	_, err := NewPredictor(testOptions()...).Predict(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Predict(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestPredictorNothingInWindow(t *testing.T) {
	// Every log is in the current week, so every weekday is unknown.
	logs := []models.MoodLog{
		entry(at(time.October, 12, 9), "happy", "Run"),
		entry(at(time.October, 14, 9), "sad", "Exam"),
	}
	prediction, err := NewPredictor(testOptions()...).Predict(logs)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	for _, d := range prediction {
		if d.Mood != constants.NoPredictionSentinel {
			t.Errorf("%v mood = %q, want %q", d.Weekday, d.Mood, constants.NoPredictionSentinel)
		}
		if len(d.Activities) != 0 {
			t.Errorf("%v activities = %v, want none", d.Weekday, d.Activities)
		}
	}
}

func TestPredictorFreshModelPerCall(t *testing.T) {
	p := NewPredictor(testOptions()...)
	logs := []models.MoodLog{entry(at(time.September, 14, 9), "happy")}

	if _, err := p.Predict(logs); err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	first := p.classifier
	if _, err := p.Predict(logs); err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if p.classifier == first {
		t.Error("Predict reused the classifier from the previous call")
	}
}

func TestHandleSuccess(t *testing.T) {
	input := `[
		{"timestamp": "2026-09-14T09:00:00Z", "mood": "happy", "activities": ["Run"]},
		{"timestamp": "2026-09-16T09:00:00Z", "mood": "sad", "activities": ["Exam"]}
	]`

	out := Handle([]byte(input), testOptions()...)
	if strings.Contains(string(out), "\n") {
		t.Errorf("output is not compact: %s", out)
	}
	resp := decodeResponse(t, out)
	if _, ok := resp["error"]; ok {
		t.Fatalf("unexpected error payload: %s", out)
	}

	var days map[string]DayForecast
	if err := json.Unmarshal(resp["daily_predictions"], &days); err != nil {
		t.Fatalf("daily_predictions: %v", err)
	}
	for _, wd := range models.WeekdayVocabulary {
		d, ok := days[wd.String()]
		if !ok {
			t.Errorf("missing %s", wd)
			continue
		}
		if d.Mood == "" || d.Activities == nil {
			t.Errorf("%s = %+v, want mood and activities set", wd, d)
		}
	}

	mondayAt := strings.Index(string(out), `"Monday"`)
	sundayAt := strings.Index(string(out), `"Sunday"`)
	if mondayAt < 0 || sundayAt < mondayAt {
		t.Errorf("weekdays out of order: %s", out)
	}
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty stdin", input: "", wantMsg: "no input data received"},
		{name: "empty array", input: "[]", wantMsg: ErrEmptyInput.Error()},
		{name: "malformed", input: "not json", wantMsg: ErrInputParse.Error()},
		{name: "missing mood", input: `[{"timestamp": "2026-09-14T09:00:00Z"}]`, wantMsg: "missing mood"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decodeResponse(t, Handle([]byte(tt.input), testOptions()...))
			if _, ok := resp["daily_predictions"]; ok {
				t.Error("error response carries daily_predictions")
			}
			var msg string
			if err := json.Unmarshal(resp["error"], &msg); err != nil {
				t.Fatalf("error field: %v", err)
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestHandleRecoversPanics(t *testing.T) {
	boom := func() time.Time { panic("clock exploded") }
	input := `[{"timestamp": "2026-09-14T09:00:00Z", "mood": "happy"}]`

	resp := decodeResponse(t, Handle([]byte(input), WithClock(boom)))
	if _, ok := resp["error"]; !ok {
		t.Errorf("Handle() = %v, want error payload", resp)
	}
}
