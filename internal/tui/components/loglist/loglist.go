package loglist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodcast/internal/models"
)

type AddLogMsg struct{}

type DeleteLogMsg struct {
	ID string
}

type RestoreLogMsg struct {
	ID string
}

type Item struct {
	Log models.MoodLog
}

func (i Item) Title() string {
	title := fmt.Sprintf("%s  %s", i.Log.Timestamp.Format("Mon 2006-01-02 15:04"), models.NormalizeMood(i.Log.Mood).Title())
	if i.Log.IsDeleted() {
		return "👻 " + title + " (deleted)"
	}
	return title
}

func (i Item) Description() string {
	var parts []string
	if len(i.Log.Activities) > 0 {
		parts = append(parts, strings.Join(i.Log.Activities, ", "))
	}
	if len(i.Log.Social) > 0 {
		parts = append(parts, "with "+strings.Join(i.Log.Social, ", "))
	}
	if i.Log.SleepQuality != "" {
		parts = append(parts, "sleep "+i.Log.SleepQuality)
	}
	if i.Log.IsDeleted() {
		parts = append(parts, "can restore with 'u'")
	}
	if len(parts) == 0 {
		return "no activities"
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Log.Mood + " " + strings.Join(i.Log.Activities, " ") }

type KeyMap struct {
	Add     key.Binding
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(logs []models.MoodLog, width, height int) Model {
	l := list.New(toItems(logs), list.NewDefaultDelegate(), width, height)
	l.Title = "Mood logs"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Restore}
	}
	return Model{list: l, keys: keys}
}

// toItems lists logs newest first.
func toItems(logs []models.MoodLog) []list.Item {
	items := make([]list.Item, len(logs))
	for i, l := range logs {
		items[len(logs)-1-i] = Item{Log: l}
	}
	return items
}

func (m *Model) SetLogs(logs []models.MoodLog) {
	m.list.SetItems(toItems(logs))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddLogMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Log.IsDeleted() {
				return m, func() tea.Msg { return DeleteLogMsg{ID: i.Log.ID} }
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Log.IsDeleted() {
				return m, func() tea.Msg { return RestoreLogMsg{ID: i.Log.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No mood logs yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
