package year

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"moodlog/internal/modules/journal/dto"
	"moodlog/internal/ui/theme"
	monthview "moodlog/internal/ui/views/month"
)

type Port interface {
	YearOverview(ctx context.Context, year int) (dto.YearOutput, error)
}

type LoadedMsg struct {
	Out dto.YearOutput
	Err error
}

// OpenMonthMsg asks the app to show a month in the month tab.
type OpenMonthMsg struct {
	Year  int
	Month int
}

const columns = 4

type Model struct {
	port    Port
	year    int
	cursor  int
	data    dto.YearOutput
	loaded  bool
	err     error
	spinner spinner.Model
	width   int
	height  int
}

func New(port Port, year, month int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)
	return Model{port: port, year: year, cursor: month, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Load(), m.spinner.Tick)
}

func (m Model) Year() int          { return m.year }
func (m Model) SelectedMonth() int { return m.cursor }

func (m *Model) SetYear(year int) tea.Cmd {
	m.year = year
	m.loaded = false
	return tea.Batch(m.Load(), m.spinner.Tick)
}

func (m Model) Load() tea.Cmd {
	year := m.year
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Out: dto.YearOutput{Year: year}}
		}
		out, err := m.port.YearOverview(context.Background(), year)
		return LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.loaded = true
			return m, nil
		}
		if msg.Out.Year != m.year {
			return m, nil
		}
		m.err = nil
		m.data = msg.Out
		m.loaded = true

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.cursor = wrap(m.cursor - 1)
		case "right", "l":
			m.cursor = wrap(m.cursor + 1)
		case "up", "k":
			m.cursor = wrap(m.cursor - columns)
		case "down", "j":
			m.cursor = wrap(m.cursor + columns)
		case "[":
			cmd := m.SetYear(m.year - 1)
			return m, cmd
		case "]":
			cmd := m.SetYear(m.year + 1)
			return m, cmd
		case "enter":
			year, month := m.year, m.cursor
			return m, func() tea.Msg { return OpenMonthMsg{Year: year, Month: month} }
		}
	}
	return m, nil
}

func wrap(month int) int {
	return (month+11)%12 + 1
}

func (m Model) View() string {
	if !m.loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading year…")
	}
	if m.err != nil {
		return theme.Hot.Render(m.err.Error())
	}

	var rows []string
	for start := 0; start < len(m.data.Months); start += columns {
		var panes []string
		for i := start; i < start+columns && i < len(m.data.Months); i++ {
			month := m.data.Months[i]
			style := theme.Pane.Padding(0, 1)
			if month.Month == m.cursor {
				style = theme.PaneActive.Padding(0, 1)
			}
			panes = append(panes, style.Render(MiniMonth(month)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panes...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", theme.Pane.Render(m.renderSummary()))
}

// MiniMonth draws one month as a dot per day, colored by grade.
func MiniMonth(month dto.MonthOutput) string {
	var sb strings.Builder
	name := time.Month(month.Month).String()[:3]
	sb.WriteString(theme.Title.Render(name) + " " + theme.Grade(gradeIndex(month.Summary.Grade)).Render(month.Summary.Letter) + "\n")
	col := 0
	for i := 0; i < month.Offset; i++ {
		sb.WriteString("  ")
		col++
	}
	for _, cell := range month.Cells {
		if cell.HasRecord {
			sb.WriteString(theme.Grade(cell.Grade).Render("■") + " ")
		} else {
			sb.WriteString(theme.Muted.Render("·") + " ")
		}
		col++
		if col == 7 {
			sb.WriteString("\n")
			col = 0
		}
	}
	for line := strings.Count(sb.String(), "\n"); line < 7; line++ {
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderSummary() string {
	summary := m.data.Summary
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("%d", m.year)) + "\n")
	sb.WriteString(theme.Muted.Render("[ prev   ] next   enter open") + "\n\n")
	avg := "—"
	if summary.Average != nil {
		avg = fmt.Sprintf("%.1f", *summary.Average)
	}
	sb.WriteString(fmt.Sprintf("average %s (%s)\n%d entries\n\n",
		theme.Grade(gradeIndex(summary.Grade)).Render(summary.Letter), avg, summary.Total))
	for grade := 0; grade < len(summary.Counts); grade++ {
		sb.WriteString(monthview.StatRow(grade, summary) + "\n")
	}
	return sb.String()
}

func gradeIndex(grade *int) int {
	if grade == nil {
		return -1
	}
	return *grade
}
