package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodcast/internal/models"
	"github.com/julianstephens/moodcast/internal/storage/sqlite"
	"github.com/julianstephens/moodcast/internal/tui/components/loglist"
)

// testNow is a Thursday.
var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func setupStore(t *testing.T, logs ...models.MoodLog) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "moodcast.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for _, l := range logs {
		if err := store.AddMoodLog(l); err != nil {
			t.Fatalf("AddMoodLog() error = %v", err)
		}
	}
	return store
}

// lastWeek returns one log per day from Monday 2026-10-05 to Sunday 2026-10-11.
func lastWeek() []models.MoodLog {
	moods := []string{"happy", "sad", "fine", "relaxed", "anxious", "happy", "angry"}
	logs := make([]models.MoodLog, len(moods))
	for i, mood := range moods {
		logs[i] = models.MoodLog{
			ID:         "log-" + mood + string(rune('a'+i)),
			Timestamp:  time.Date(2026, 10, 5+i, 9, 0, 0, 0, time.UTC),
			Mood:       mood,
			Activities: []string{"Work"},
		}
	}
	return logs
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and then any message produced by the returned command.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if follow := cmd(); follow != nil {
			if _, isBatch := follow.(tea.BatchMsg); !isBatch {
				next, _ = m.Update(follow)
				m = next.(Model)
			}
		}
	}
	return m
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func TestNewModelForecast(t *testing.T) {
	t.Run("not enough data", func(t *testing.T) {
		m := sized(t, NewModel(setupStore(t, lastWeek()[:3]...), WithClock(fixedClock)))
		if len(m.forecastModel.Rows()) != 0 {
			t.Errorf("forecast rows = %d, want 0", len(m.forecastModel.Rows()))
		}
		if !strings.Contains(m.View(), "Need at least one week") {
			t.Errorf("View() does not explain the missing forecast:\n%s", m.View())
		}
	})

	t.Run("full week", func(t *testing.T) {
		m := sized(t, NewModel(setupStore(t, lastWeek()...), WithClock(fixedClock)))
		rows := m.forecastModel.Rows()
		if len(rows) != 7 {
			t.Fatalf("forecast rows = %d, want 7", len(rows))
		}
		if rows[0][0] != "Monday" || rows[3][0] != "Thursday *" {
			t.Errorf("day column = %q, %q", rows[0][0], rows[3][0])
		}
		if rows[0][2] != "Work" {
			t.Errorf("Monday activities = %q, want Work", rows[0][2])
		}
		if m.logList.Len() != 7 {
			t.Errorf("log list has %d items, want 7", m.logList.Len())
		}
	})
}

func TestTabSwitching(t *testing.T) {
	m := sized(t, NewModel(setupStore(t), WithClock(fixedClock)))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateLogs {
		t.Errorf("state after tab = %v, want StateLogs", m.state)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateForecast {
		t.Errorf("state after second tab = %v, want StateForecast", m.state)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateLogs {
		t.Errorf("state after shift+tab = %v, want StateLogs", m.state)
	}
}

func TestDeleteAndRestoreLog(t *testing.T) {
	logs := lastWeek()
	store := setupStore(t, logs...)
	m := sized(t, NewModel(store, WithClock(fixedClock)))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	// Newest first: the Sunday log is selected.
	newest := logs[len(logs)-1].ID

	m = send(t, m, runes("d"))
	if m.state != StateConfirmDelete || m.logToDeleteID != newest {
		t.Fatalf("state = %v, logToDeleteID = %q", m.state, m.logToDeleteID)
	}

	m = send(t, m, runes("n"))
	if m.state != StateLogs {
		t.Errorf("state after cancel = %v, want StateLogs", m.state)
	}
	if _, err := store.GetMoodLog(newest); err != nil {
		t.Errorf("log was deleted after cancel: %v", err)
	}

	m = send(t, m, runes("d"))
	m = send(t, m, runes("y"))
	if _, err := store.GetMoodLog(newest); !errors.Is(err, models.ErrMoodLogNotFound) {
		t.Errorf("GetMoodLog() after delete error = %v, want ErrMoodLogNotFound", err)
	}
	if len(m.forecastModel.Rows()) != 0 {
		t.Errorf("forecast still shown with 6 logs")
	}

	m = send(t, m, loglist.RestoreLogMsg{ID: newest})
	if _, err := store.GetMoodLog(newest); err != nil {
		t.Errorf("GetMoodLog() after restore error = %v", err)
	}
	if len(m.forecastModel.Rows()) != 7 {
		t.Errorf("forecast rows after restore = %d, want 7", len(m.forecastModel.Rows()))
	}
}

func TestOpenFormAndEscape(t *testing.T) {
	m := sized(t, NewModel(setupStore(t), WithClock(fixedClock)))

	next, _ := m.Update(runes("a"))
	m = next.(Model)
	if m.state != StateAddLog || m.form == nil {
		t.Fatalf("state = %v after a, want StateAddLog", m.state)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.state != StateLogs {
		t.Errorf("state after esc = %v, want StateLogs", m.state)
	}
}

func TestQuit(t *testing.T) {
	m := sized(t, NewModel(setupStore(t), WithClock(fixedClock)))
	next, cmd := m.Update(runes("q"))
	if !next.(Model).quitting || cmd == nil {
		t.Error("q did not quit")
	}
	if next.(Model).View() != "" {
		t.Error("View() after quit is not empty")
	}
}

func TestLogFormToMoodLog(t *testing.T) {
	fm := &LogFormModel{
		Mood:         models.MoodHappy,
		Activities:   []string{"Work"},
		Extra:        " Run , ,Read",
		Social:       []string{"Friends"},
		SleepQuality: "3",
	}
	l, err := fm.ToMoodLog(testNow)
	if err != nil {
		t.Fatalf("ToMoodLog() error = %v", err)
	}
	if l.ID == "" || !l.Timestamp.Equal(testNow) || l.Mood != "happy" {
		t.Errorf("ToMoodLog() = %+v", l)
	}
	want := []string{"Work", "Run", "Read"}
	if strings.Join(l.Activities, "|") != strings.Join(want, "|") {
		t.Errorf("Activities = %v, want %v", l.Activities, want)
	}

	if _, err := (&LogFormModel{Mood: "bored"}).ToMoodLog(testNow); err == nil {
		t.Error("ToMoodLog() with an unknown mood error = nil")
	}
}
