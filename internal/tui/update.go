package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/models"
	"github.com/julianstephens/moodcast/internal/tui/components/loglist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.forecastModel.SetSize(msg.Width-4, msg.Height-6)
		m.logList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	switch m.state {
	case StateAddLog:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case loglist.AddLogMsg:
		return m.openForm()
	case loglist.DeleteLogMsg:
		m.logToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil
	case loglist.RestoreLogMsg:
		if err := m.store.RestoreMoodLog(msg.ID); err != nil {
			m.status = "Restore failed: " + err.Error()
			return m, nil
		}
		m.status = "Mood log restored"
		m.refreshLogs()
		m.refreshForecast()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refreshLogs()
			m.refreshForecast()
			m.status = "Forecast refreshed"
			return m, nil
		case m.state == StateForecast && key.Matches(msg, m.keys.Add):
			return m.openForm()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateForecast:
		m.forecastModel, cmd = m.forecastModel.Update(msg)
	case StateLogs:
		m.logList, cmd = m.logList.Update(msg)
	}
	return m, cmd
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.logForm = &LogFormModel{Mood: models.MoodFine}
	m.form = NewLogForm(m.logForm)
	m.state = StateAddLog
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateLogs
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateLogs
		if err := m.saveForm(); err != nil {
			logger.Warn("Failed to save mood log", "error", err)
			m.status = "Save failed: " + err.Error()
			return m, nil
		}
		m.status = "Mood log saved"
		m.refreshLogs()
		m.refreshForecast()
		return m, nil
	case huh.StateAborted:
		m.state = StateLogs
		return m, nil
	}
	return m, cmd
}

func (m Model) saveForm() error {
	if m.logForm == nil {
		return errors.New("no form data")
	}
	l, err := m.logForm.ToMoodLog(m.now())
	if err != nil {
		return err
	}
	return m.store.AddMoodLog(l)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if err := m.store.DeleteMoodLog(m.logToDeleteID); err != nil {
			m.status = "Delete failed: " + err.Error()
		} else {
			m.status = "Mood log deleted"
			m.refreshLogs()
			m.refreshForecast()
		}
		m.logToDeleteID = ""
		m.state = StateLogs
	case key.Matches(keyMsg, m.keys.Cancel):
		m.logToDeleteID = ""
		m.state = StateLogs
	}
	return m, nil
}
