package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/models"
)

// DayForecast is the predicted mood and carried-through activities of one weekday.
type DayForecast struct {
	Mood       string   `json:"mood"`
	Activities []string `json:"activities"`
}

// DailyForecast pairs a weekday with its forecast.
type DailyForecast struct {
	Weekday time.Weekday
	DayForecast
}

// Prediction is the weekly forecast, Monday first. It encodes as a JSON
// object keyed by weekday name in that order.
type Prediction []DailyForecast

// Result is the success payload of the prediction boundary.
type Result struct {
	DailyPredictions Prediction `json:"daily_predictions"`
}

// Assemble merges the predicted moods with the aggregated activities. Both
// slices are in weekday vocabulary order.
func Assemble(summaries []DailySummary, moods []models.Mood) (Prediction, error) {
	if len(summaries) != len(moods) {
		return nil, fmt.Errorf("cannot assemble %d summaries with %d predictions", len(summaries), len(moods))
	}

	prediction := make(Prediction, 0, len(summaries))
	for i, s := range summaries {
		mood := string(moods[i])
		if moods[i] == models.MoodUnknown {
			mood = constants.NoPredictionSentinel
		}
		activities := s.Activities
		if activities == nil {
			activities = []string{}
		}
		prediction = append(prediction, DailyForecast{
			Weekday:     s.Weekday,
			DayForecast: DayForecast{Mood: mood, Activities: activities},
		})
	}
	return prediction, nil
}

// Get returns the forecast for wd.
func (p Prediction) Get(wd time.Weekday) (DayForecast, bool) {
	for _, d := range p {
		if d.Weekday == wd {
			return d.DayForecast, true
		}
	}
	return DayForecast{}, false
}

// MarshalJSON keeps weekday order, which a Go map would not.
func (p Prediction) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Weekday.String())
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d.DayForecast)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a weekday-keyed object back into vocabulary order.
func (p *Prediction) UnmarshalJSON(data []byte) error {
	var byName map[string]DayForecast
	if err := json.Unmarshal(data, &byName); err != nil {
		return err
	}

	known := make(map[string]bool, len(models.WeekdayVocabulary))
	out := make(Prediction, 0, len(byName))
	for _, wd := range models.WeekdayVocabulary {
		known[wd.String()] = true
		if f, ok := byName[wd.String()]; ok {
			out = append(out, DailyForecast{Weekday: wd, DayForecast: f})
		}
	}
	for name := range byName {
		if !known[name] {
			return fmt.Errorf("unknown weekday %q", name)
		}
	}
	*p = out
	return nil
}
