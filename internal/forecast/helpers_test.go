package forecast

import (
	"testing"
	"time"

	"github.com/julianstephens/moodcast/internal/models"
)

// testNow is a Thursday. The current week starts Monday 2026-10-12 and the
// lookback window starts Monday 2026-09-14.
var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

var (
	testWeekStart     = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	testLookbackStart = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return testNow }

func fixedSeed(wd time.Weekday) uint64 { return uint64(wd) + 42 }

// at returns a UTC timestamp on the given day of 2026 at hour:00.
func at(month time.Month, day, hour int) time.Time {
	return time.Date(2026, month, day, hour, 0, 0, 0, time.UTC)
}

func entry(ts time.Time, mood string, activities ...string) models.MoodLog {
	return models.MoodLog{Timestamp: ts, Mood: mood, Activities: activities}
}

func testWindow(t *testing.T, logs []models.MoodLog) Window {
	t.Helper()
	w, err := NewWindow(logs, testNow)
	if err != nil {
		t.Fatalf("NewWindow() error = %v", err)
	}
	return w
}

func summaryFor(t *testing.T, summaries []DailySummary, wd time.Weekday) DailySummary {
	t.Helper()
	for _, s := range summaries {
		if s.Weekday == wd {
			return s
		}
	}
	t.Fatalf("no summary for %v", wd)
	return DailySummary{}
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
