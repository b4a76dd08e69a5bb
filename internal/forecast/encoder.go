package forecast

import (
	"fmt"
	"time"

	"github.com/julianstephens/moodcast/internal/models"
)

// Encoder maps weekdays to one-hot rows and moods to class indexes over the
// fixed vocabularies in models. The same Encoder must be used to encode the
// training labels and to decode the predictions.
type Encoder struct {
	weekdayIndex map[time.Weekday]int
	moodIndex    map[models.Mood]int
}

// NewEncoder returns an encoder fit on models.WeekdayVocabulary and models.MoodVocabulary.
func NewEncoder() *Encoder {
	e := &Encoder{
		weekdayIndex: make(map[time.Weekday]int, len(models.WeekdayVocabulary)),
		moodIndex:    make(map[models.Mood]int, len(models.MoodVocabulary)),
	}
	for i, wd := range models.WeekdayVocabulary {
		e.weekdayIndex[wd] = i
	}
	for i, m := range models.MoodVocabulary {
		e.moodIndex[m] = i
	}
	return e
}

// Width is the number of columns of an encoded weekday row.
func (e *Encoder) Width() int {
	return len(models.WeekdayVocabulary)
}

// Classes is the number of mood classes.
func (e *Encoder) Classes() int {
	return len(models.MoodVocabulary)
}

// EncodeWeekday returns the one-hot row for wd. A weekday outside the
// vocabulary yields an all-zero row.
func (e *Encoder) EncodeWeekday(wd time.Weekday) []float64 {
	row := make([]float64, e.Width())
	if i, ok := e.weekdayIndex[wd]; ok {
		row[i] = 1
	}
	return row
}

// EncodeMood returns the class index of m.
func (e *Encoder) EncodeMood(m models.Mood) (int, error) {
	i, ok := e.moodIndex[m]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMood, m)
	}
	return i, nil
}

// DecodeMood returns the mood for a class index.
func (e *Encoder) DecodeMood(code int) (models.Mood, error) {
	if code < 0 || code >= len(models.MoodVocabulary) {
		return "", fmt.Errorf("%w: unseen class %d", ErrUnknownMood, code)
	}
	return models.MoodVocabulary[code], nil
}

// Encode turns the weekly summaries into a feature matrix and label vector,
// one row per summary in the given order.
func (e *Encoder) Encode(summaries []DailySummary) ([][]float64, []int, error) {
	features := make([][]float64, 0, len(summaries))
	labels := make([]int, 0, len(summaries))
	for _, s := range summaries {
		label, err := e.EncodeMood(s.Mood)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", s.Weekday, err)
		}
		features = append(features, e.EncodeWeekday(s.Weekday))
		labels = append(labels, label)
	}
	return features, labels, nil
}
