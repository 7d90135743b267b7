package month

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"moodlog/internal/modules/journal/dto"
	"moodlog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	MonthGeometry(ctx context.Context, year, month int) (dto.MonthOutput, error)
	SetRecord(ctx context.Context, key string, grade int, note string) (dto.RecordOutput, error)
	DeleteRecord(ctx context.Context, key string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Out dto.MonthOutput
	Err error
}

// SavedMsg reports a finished write. The app model reloads every view that
// shows the journal when it sees one.
type SavedMsg struct {
	Key    string
	Status string
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

const cellWidth = 4

var weekdays = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

type Model struct {
	port    Port
	year    int
	month   int
	cursor  int
	data    dto.MonthOutput
	loaded  bool
	err     error
	spinner spinner.Model
	note    textinput.Model
	editing bool
	width   int
	height  int
}

// New opens the view on the given day, which is usually today.
func New(port Port, year, month, day int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	ti := textinput.New()
	ti.Placeholder = "what made today that way?"
	ti.CharLimit = 500

	return Model{
		port:    port,
		year:    year,
		month:   month,
		cursor:  day,
		spinner: sp,
		note:    ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Load(), m.spinner.Tick)
}

func (m Model) Year() int  { return m.year }
func (m Model) Month() int { return m.month }

// Editing reports whether the note input has focus, in which case the app
// must not treat keystrokes as global bindings.
func (m Model) Editing() bool { return m.editing }

// SelectedKey is the date key under the cursor.
func (m Model) SelectedKey() string {
	return fmt.Sprintf("%04d-%02d-%02d", m.year, m.month, m.cursor)
}

func (m Model) Selected() (dto.DayCellOutput, bool) {
	if !m.loaded || m.cursor < 1 || m.cursor > len(m.data.Cells) {
		return dto.DayCellOutput{}, false
	}
	return m.data.Cells[m.cursor-1], true
}

// Jump moves the cursor to a specific day, loading its month. The spinner
// tick chain stops after each load, so it is restarted here.
func (m *Model) Jump(year, month, day int) tea.Cmd {
	m.year, m.month = dto.NormalizeMonth(year, month)
	m.cursor = clampDay(m.year, m.month, day)
	m.loaded = false
	return tea.Batch(m.Load(), m.spinner.Tick)
}

func (m Model) Load() tea.Cmd {
	year, month := m.year, m.month
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Out: dto.MonthOutput{Year: year, Month: month}}
		}
		out, err := m.port.MonthGeometry(context.Background(), year, month)
		return LoadedMsg{Out: out, Err: err}
	}
}

// SetGrade logs a grade on the selected day. An empty note keeps the note
// already recorded for that day.
func (m Model) SetGrade(grade int, note string) tea.Cmd {
	key := m.SelectedKey()
	if note == "" {
		if cell, ok := m.Selected(); ok && cell.HasRecord {
			note = cell.Note
		}
	}
	return func() tea.Msg {
		if m.port == nil {
			return SavedMsg{Key: key, Err: fmt.Errorf("journal is not configured")}
		}
		out, err := m.port.SetRecord(context.Background(), key, grade, note)
		if err != nil {
			return SavedMsg{Key: key, Err: err}
		}
		return SavedMsg{Key: key, Status: fmt.Sprintf("logged %s for %s", out.Letter, key)}
	}
}

func (m Model) ClearSelected() tea.Cmd {
	key := m.SelectedKey()
	return func() tea.Msg {
		if m.port == nil {
			return SavedMsg{Key: key, Err: fmt.Errorf("journal is not configured")}
		}
		if err := m.port.DeleteRecord(context.Background(), key); err != nil {
			return SavedMsg{Key: key, Err: err}
		}
		return SavedMsg{Key: key, Status: "cleared " + key}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.note.Width = max(m.width/2-8, 10)

	case LoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.loaded = true
			return m, nil
		}
		// A slow load for a month the user already left is dropped.
		if msg.Out.Year != m.year || msg.Out.Month != m.month {
			return m, nil
		}
		m.err = nil
		m.data = msg.Out
		m.loaded = true
		m.cursor = clampDay(m.year, m.month, m.cursor)

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.updateNote(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		return m.move(-1)
	case "right", "l":
		return m.move(1)
	case "up", "k":
		return m.move(-7)
	case "down", "j":
		return m.move(7)
	case "[":
		cmd := m.Jump(m.year, m.month-1, m.cursor)
		return m, cmd
	case "]":
		cmd := m.Jump(m.year, m.month+1, m.cursor)
		return m, cmd
	case "1", "2", "3", "4", "5", "6":
		return m, m.SetGrade(int(msg.String()[0]-'1'), "")
	case "x", "delete", "backspace":
		return m, m.ClearSelected()
	case "n":
		cell, ok := m.Selected()
		if !ok || !cell.HasRecord {
			m.err = fmt.Errorf("pick a grade (1-6) before adding a note")
			return m, nil
		}
		m.err = nil
		m.editing = true
		m.note.SetValue(cell.Note)
		m.note.CursorEnd()
		cmd := m.note.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateNote(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.note.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.note.Blur()
		cell, ok := m.Selected()
		if !ok || !cell.HasRecord {
			return m, nil
		}
		key := m.SelectedKey()
		grade, note := cell.Grade, strings.TrimSpace(m.note.Value())
		port := m.port
		return m, func() tea.Msg {
			if port == nil {
				return SavedMsg{Key: key, Err: fmt.Errorf("journal is not configured")}
			}
			if _, err := port.SetRecord(context.Background(), key, grade, note); err != nil {
				return SavedMsg{Key: key, Err: err}
			}
			return SavedMsg{Key: key, Status: "note saved for " + key}
		}
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

// move shifts the cursor by delta days, crossing into neighbouring months.
func (m Model) move(delta int) (Model, tea.Cmd) {
	day := m.cursor + delta
	days := dto.DaysInMonth(m.year, m.month)
	switch {
	case day < 1:
		year, month := dto.NormalizeMonth(m.year, m.month-1)
		cmd := m.Jump(year, month, dto.DaysInMonth(year, month)+day)
		return m, cmd
	case day > days:
		cmd := m.Jump(m.year, m.month+1, day-days)
		return m, cmd
	}
	m.cursor = day
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading month…")
	}
	calendarW := cellWidth*7 + 6
	detailW := max(m.width-calendarW-4, 30)

	calendar := theme.PaneActive.Render(m.renderCalendar())
	detail := theme.Pane.Width(detailW).Render(m.renderDetail())
	return lipgloss.JoinHorizontal(lipgloss.Top, calendar, " ", detail)
}

func (m Model) renderCalendar() string {
	var sb strings.Builder
	label := m.data.Label
	if label == "" {
		label = time.Month(m.month).String() + fmt.Sprintf(" %d", m.year)
	}
	sb.WriteString(theme.Title.Render(label) + "\n")
	sb.WriteString(theme.Muted.Render("[ prev   ] next") + "\n\n")
	for _, wd := range weekdays {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-*s", cellWidth, " "+wd)))
	}
	sb.WriteString("\n")

	col := 0
	for i := 0; i < m.data.Offset; i++ {
		sb.WriteString(strings.Repeat(" ", cellWidth))
		col++
	}
	for _, cell := range m.data.Cells {
		sb.WriteString(m.renderCell(cell))
		col++
		if col == 7 {
			sb.WriteString("\n")
			col = 0
		}
	}
	return sb.String()
}

func (m Model) renderCell(cell dto.DayCellOutput) string {
	text := fmt.Sprintf(" %2d ", cell.Day)
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if cell.HasRecord {
		style = theme.GradeCell(cell.Grade)
	}
	if cell.Today {
		style = style.Underline(true)
	}
	if cell.Day == m.cursor {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

func (m Model) renderDetail() string {
	var sb strings.Builder
	if cell, ok := m.Selected(); ok {
		day, err := time.Parse(time.DateOnly, cell.Key)
		if err == nil {
			sb.WriteString(theme.Title.Render(day.Format("Monday, Jan 2")) + "\n")
		}
		if cell.HasRecord {
			sb.WriteString(theme.Grade(cell.Grade).Render(cell.Letter))
			if cell.Note != "" {
				sb.WriteString("  " + cell.Note)
			}
			sb.WriteString("\n")
		} else {
			sb.WriteString(theme.Muted.Render("not logged, press 1-6 (A+ to F)") + "\n")
		}
	}
	if m.editing {
		sb.WriteString("\nnote: " + m.note.View() + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + theme.Hot.Render(m.err.Error()) + "\n")
	}

	summary := m.data.Summary
	sb.WriteString("\n" + theme.Title.Render("This month") + "\n")
	sb.WriteString(fmt.Sprintf("average %s (%s), %d entries\n\n",
		theme.Grade(gradeIndex(summary.Grade)).Render(summary.Letter), formatAverage(summary.Average), summary.Total))
	for grade := 0; grade < len(summary.Counts); grade++ {
		sb.WriteString(StatRow(grade, summary) + "\n")
	}
	return sb.String()
}

// StatRow renders one grade bucket as letter, bar, count and percentage.
func StatRow(grade int, summary dto.SummaryOutput) string {
	const barWidth = 20
	filled := 0
	if summary.Total > 0 {
		filled = summary.Counts[grade] * barWidth / summary.Total
	}
	bar := theme.Grade(grade).Render(strings.Repeat("█", filled)) + theme.Muted.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%-2s %s %3d  %5s%%", dto.GradeLetter(grade), bar, summary.Counts[grade], summary.Percentages[grade])
}

func formatAverage(avg *float64) string {
	if avg == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f", *avg)
}

func gradeIndex(grade *int) int {
	if grade == nil {
		return -1
	}
	return *grade
}

func clampDay(year, month, day int) int {
	return min(max(day, 1), dto.DaysInMonth(year, month))
}
