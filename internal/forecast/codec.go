package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/models"
	"github.com/julianstephens/moodcast/internal/utils"
)

// wireLog is one element of the input array. Fields are kept raw so a
// missing key can be told apart from a value of the wrong type.
type wireLog struct {
	Timestamp  json.RawMessage `json:"timestamp"`
	Mood       json.RawMessage `json:"mood"`
	Activities json.RawMessage `json:"activities"`
}

// exportLog is the shape written by EncodeLogs.
type exportLog struct {
	Timestamp  string   `json:"timestamp"`
	Mood       string   `json:"mood"`
	Activities []string `json:"activities"`
}

// ParseLogs decodes the JSON array accepted by the prediction boundary.
func ParseLogs(data []byte) ([]models.MoodLog, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no input data received", ErrInputParse)
	}

	var raw []wireLog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputParse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of mood logs", ErrInputParse)
	}

	logs := make([]models.MoodLog, 0, len(raw))
	for i, w := range raw {
		l, err := w.toMoodLog()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (w wireLog) toMoodLog() (models.MoodLog, error) {
	ts, err := requiredString(w.Timestamp, "timestamp")
	if err != nil {
		return models.MoodLog{}, err
	}
	t, err := utils.ParseTimestamp(ts)
	if err != nil {
		return models.MoodLog{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	mood, err := requiredString(w.Mood, "mood")
	if err != nil {
		return models.MoodLog{}, err
	}

	return models.MoodLog{
		Timestamp:  t,
		Mood:       mood,
		Activities: decodeActivities(w.Activities),
	}, nil
}

func requiredString(raw json.RawMessage, field string) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("%w: missing %s", ErrSchema, field)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s must be a string", ErrSchema, field)
	}
	return s, nil
}

// decodeActivities keeps the string elements of a JSON array. Anything that
// is not an array counts as no activities.
func decodeActivities(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Debug("Ignoring non-list activities", "value", string(raw))
		return nil
	}
	activities := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			activities = append(activities, s)
		}
	}
	return activities
}

// EncodeLogs renders logs in the input format of the prediction boundary.
func EncodeLogs(logs []models.MoodLog) ([]byte, error) {
	out := make([]exportLog, 0, len(logs))
	for _, l := range logs {
		activities := l.Activities
		if activities == nil {
			activities = []string{}
		}
		out = append(out, exportLog{
			Timestamp:  l.Timestamp.Format(time.RFC3339Nano),
			Mood:       l.Mood,
			Activities: activities,
		})
	}
	return json.Marshal(out)
}
