package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/forecast"
	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/models"
	"github.com/julianstephens/moodcast/internal/storage"
	forecastview "github.com/julianstephens/moodcast/internal/tui/components/forecast"
	"github.com/julianstephens/moodcast/internal/tui/components/loglist"
)

type SessionState int

const (
	StateForecast SessionState = iota
	StateLogs
	StateAddLog
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

type LogFormModel struct {
	Mood         models.Mood
	Activities   []string
	Extra        string
	Social       []string
	Health       []string
	SleepQuality string
}

type Model struct {
	store         storage.Provider
	service       *forecast.Service
	now           func() time.Time
	state         SessionState
	keys          KeyMap
	help          help.Model
	forecastModel forecastview.Model
	logList       loglist.Model
	form          *huh.Form
	logForm       *LogFormModel
	logToDeleteID string
	status        string
	quitting      bool
	width         int
	height        int
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock used for the forecast and the log range.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

func NewModel(store storage.Provider, opts ...Option) Model {
	m := Model{
		store:         store,
		now:           time.Now,
		state:         StateForecast,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		forecastModel: forecastview.New(0, 0),
		logList:       loglist.New(nil, 0, 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.service = forecast.NewService(store, forecast.WithClock(m.now))

	m.refreshLogs()
	m.refreshForecast()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Refresh, m.keys.Add}
	if m.state == StateLogs {
		keys = append(keys, m.keys.Delete, m.keys.Restore)
	}
	return append(keys, m.keys.Quit, m.keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	actions := []key.Binding{m.keys.Refresh, m.keys.Add, m.keys.Delete, m.keys.Restore}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshLogs reloads the recent logs, deleted ones included so they can be restored.
func (m *Model) refreshLogs() {
	since := m.now().AddDate(0, 0, -constants.DefaultListDays)
	logs, err := m.store.GetMoodLogs(since, time.Time{}, true)
	if err != nil {
		logger.Warn("Failed to load mood logs", "error", err)
		m.status = "Failed to load mood logs: " + err.Error()
		logs = []models.MoodLog{}
	}
	m.logList.SetLogs(logs)
}

func (m *Model) refreshForecast() {
	resp, err := m.service.Forecast()
	if err != nil {
		logger.Warn("Forecast failed", "error", err)
		m.forecastModel.SetError(err)
		return
	}
	m.forecastModel.SetResponse(resp, m.now().Weekday())
}
