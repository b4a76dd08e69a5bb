package forecast

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcast/internal/constants"
	moodforecast "github.com/julianstephens/moodcast/internal/forecast"
	"github.com/julianstephens/moodcast/internal/models"
)

var (
	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Model shows the weekly forecast as a table, one row per weekday.
type Model struct {
	table   table.Model
	today   time.Weekday
	message string
	err     error
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(len(models.WeekdayVocabulary)+1),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(true)
	t.SetStyles(styles)
	return Model{table: t}
}

func columns(width int) []table.Column {
	activities := width - 12 - 26 - 8
	if activities < 20 {
		activities = 20
	}
	return []table.Column{
		{Title: "Day", Width: 12},
		{Title: "Mood", Width: 26},
		{Title: "Activities", Width: activities},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("Forecast unavailable: " + m.err.Error())
	}
	if len(m.table.Rows()) == 0 {
		msg := m.message
		if msg == "" {
			msg = "No forecast yet. Press 'r' to compute one."
		}
		return messageStyle.Render(msg)
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	m.table.SetWidth(width)
}

// SetResponse replaces the table contents and moves the cursor to today.
func (m *Model) SetResponse(resp moodforecast.Response, today time.Weekday) {
	m.err = nil
	m.today = today
	m.message = resp.Message

	rows := make([]table.Row, 0, len(resp.Predictions))
	cursor := 0
	for i, d := range resp.Predictions {
		day := d.Weekday.String()
		if d.Weekday == today {
			day += " *"
			cursor = i
		}
		mood := d.Mood
		if mood != constants.NoPredictionSentinel {
			mood = models.Mood(mood).Title()
		}
		rows = append(rows, table.Row{day, mood, strings.Join(d.Activities, ", ")})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

// SetError shows err instead of the table.
func (m *Model) SetError(err error) {
	m.err = err
}

// Rows returns the rendered rows, for inspection.
func (m Model) Rows() []table.Row {
	return m.table.Rows()
}
