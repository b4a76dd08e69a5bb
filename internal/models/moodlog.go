package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMoodLogNotFound is returned by stores when no matching mood log exists.
var ErrMoodLogNotFound = errors.New("mood log not found")

// Mood is a normalized (lower-case) mood label.
type Mood string

const (
	MoodRelaxed Mood = "relaxed"
	MoodHappy   Mood = "happy"
	MoodFine    Mood = "fine"
	MoodAnxious Mood = "anxious"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodUnknown Mood = "unknown"
)

// MoodVocabulary is the closed, ordered set of mood labels. The index of a
// mood in this slice is its encoded class.
var MoodVocabulary = []Mood{
	MoodRelaxed,
	MoodHappy,
	MoodFine,
	MoodAnxious,
	MoodSad,
	MoodAngry,
	MoodUnknown,
}

// WeekdayVocabulary is the closed, ordered set of weekdays (Monday first).
var WeekdayVocabulary = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// NormalizeMood lower-cases and trims a logged mood.
func NormalizeMood(raw string) Mood {
	return Mood(strings.ToLower(strings.TrimSpace(raw)))
}

// IsKnown reports whether m is one of the loggable moods (unknown excluded).
func (m Mood) IsKnown() bool {
	for _, v := range MoodVocabulary {
		if v == m && v != MoodUnknown {
			return true
		}
	}
	return false
}

// Title returns the mood with its first letter upper-cased, as the UI shows it.
func (m Mood) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// MoodLog is a single timestamped mood entry with the activities logged alongside it.
type MoodLog struct {
	ID           string     `json:"id"`
	Timestamp    time.Time  `json:"timestamp"`
	Mood         string     `json:"mood"`
	Activities   []string   `json:"activities,omitempty"`
	Social       []string   `json:"social,omitempty"`
	Health       []string   `json:"health,omitempty"`
	SleepQuality string     `json:"sleep_quality,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Validate checks the fields a stored mood log must carry.
func (l *MoodLog) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("mood log id cannot be empty")
	}
	if l.Timestamp.IsZero() {
		return fmt.Errorf("mood log timestamp cannot be empty")
	}
	if strings.TrimSpace(l.Mood) == "" {
		return fmt.Errorf("mood cannot be empty")
	}
	if !NormalizeMood(l.Mood).IsKnown() {
		return fmt.Errorf("invalid mood %q (must be one of %s)", l.Mood, KnownMoodList())
	}
	for _, a := range l.Activities {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("activities cannot contain empty names")
		}
	}
	return nil
}

// IsDeleted reports whether the log has been soft-deleted.
func (l *MoodLog) IsDeleted() bool {
	return l.DeletedAt != nil
}

// KnownMoodList renders the loggable moods as a comma-separated list.
func KnownMoodList() string {
	var names []string
	for _, m := range MoodVocabulary {
		if m.IsKnown() {
			names = append(names, string(m))
		}
	}
	return strings.Join(names, ", ")
}
