package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"moodlog/internal/modules/journal/dto"
	reminderdto "moodlog/internal/modules/reminder/dto"
	"moodlog/internal/ui/components"
	"moodlog/internal/ui/theme"
	monthview "moodlog/internal/ui/views/month"
	yearview "moodlog/internal/ui/views/year"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type journalPort interface {
	monthview.Port
	yearview.Port
	Export(ctx context.Context, format string) (dto.ExportOutput, error)
	Import(ctx context.Context, content string) (dto.ImportOutput, error)
	ShareYear(ctx context.Context, year int, save bool) (dto.ShareOutput, error)
}

type reminderPort interface {
	Check(ctx context.Context) (reminderdto.CheckOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabMonth tabID = iota
	tabYear
	tabCount
)

var tabLabels = [tabCount]string{"Month", "Year"}

// ─── async messages ───────────────────────────────────────────────────────────

type reminderTickMsg struct{}

type reminderCheckedMsg struct {
	out reminderdto.CheckOutput
	err error
}

type exportedMsg struct {
	path string
	out  dto.ExportOutput
	err  error
}

type importedMsg struct {
	out dto.ImportOutput
	err error
}

type sharedMsg struct {
	out dto.ShareOutput
	err error
}

const reminderInterval = time.Minute

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Move    key.Binding
	Grade   key.Binding
	Clear   key.Binding
	Note    key.Binding
	Page    key.Binding
	Open    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Move:    key.NewBinding(key.WithKeys("left", "right", "up", "down"), key.WithHelp("←↑↓→", "move")),
		Grade:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "log A+..F")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear day")),
		Note:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "edit note")),
		Page:    key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[ ]", "prev/next period")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open month")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Move, k.Page, k.Open},
		{k.Grade, k.Clear, k.Note},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the reminder
// schedule, the help overlay and the command palette. The view year and
// month live in the sub-views, never in package state.
type Model struct {
	journalPath string

	journal  journalPort
	reminder reminderPort

	monthView monthview.Model
	yearView  yearview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	alert     string
	now       func() time.Time
	width     int
	height    int
}

func NewModel(journalPath string, journal journalPort, reminder reminderPort, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	today := now()
	var monthPort monthview.Port
	var yearPort yearview.Port
	if journal != nil {
		monthPort, yearPort = journal, journal
	}
	return Model{
		journalPath: journalPath,
		journal:     journal,
		reminder:    reminder,
		monthView:   monthview.New(monthPort, today.Year(), int(today.Month()), today.Day()),
		yearView:    yearview.New(yearPort, today.Year(), int(today.Month())),
		activeTab:   tabMonth,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
		now:         now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.monthView.Init(),
		m.yearView.Init(),
		m.checkReminderCmd(),
		scheduleReminder(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all key input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case reminderTickMsg:
		return m, tea.Batch(m.checkReminderCmd(), scheduleReminder())

	case reminderCheckedMsg:
		if msg.err != nil {
			m.status = "reminder: " + msg.err.Error()
		} else if msg.out.Due {
			m.alert = msg.out.Message
		}
		return m, nil

	case monthview.SavedMsg:
		if msg.Err != nil {
			m.status = "save failed: " + msg.Err.Error()
			return m, nil
		}
		m.status = msg.Status
		m.alert = ""
		return m, m.reloadViews()

	case spinner.TickMsg:
		var monthCmd, yearCmd tea.Cmd
		m.monthView, monthCmd = m.monthView.Update(msg)
		m.yearView, yearCmd = m.yearView.Update(msg)
		return m, tea.Batch(monthCmd, yearCmd)

	case monthview.LoadedMsg:
		var cmd tea.Cmd
		m.monthView, cmd = m.monthView.Update(msg)
		return m, cmd

	case yearview.LoadedMsg:
		var cmd tea.Cmd
		m.yearView, cmd = m.yearView.Update(msg)
		return m, cmd

	case yearview.OpenMonthMsg:
		m.activeTab = tabMonth
		day := 1
		if today := m.now(); today.Year() == msg.Year && int(today.Month()) == msg.Month {
			day = today.Day()
		}
		cmd := m.monthView.Jump(msg.Year, msg.Month, day)
		return m, cmd

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %d entries to %s", msg.out.Total, msg.path)
		}
		return m, nil

	case importedMsg:
		if msg.err != nil {
			m.status = "import failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("imported %d entries, %d total", msg.out.Incoming, msg.out.Total)
		return m, m.reloadViews()

	case sharedMsg:
		if msg.err != nil {
			m.status = "share failed: " + msg.err.Error()
		} else {
			m.status = "year report saved to " + msg.out.Path
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the note editor so typed text is not read as bindings.
		if m.activeTab == tabMonth && m.monthView.Editing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabMonth:
		m.monthView, tabCmd = m.monthView.Update(msg)
	case tabYear:
		m.yearView, tabCmd = m.yearView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabMonth:
		return m.monthView.View()
	case tabYear:
		return m.yearView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "moodlog  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.alert != "" {
		left = theme.Hot.Render("● "+m.alert) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "log":
		if len(parts) < 2 {
			m.status = "usage: log <grade> [note]"
			return m, nil
		}
		grade, err := dto.ParseGrade(parts[1])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.activeTab = tabMonth
		cmd := m.monthView.SetGrade(grade, argsAfter(input, 2))
		return m, cmd

	case "clear":
		m.activeTab = tabMonth
		return m, m.monthView.ClearSelected()

	case "today":
		today := m.now()
		m.activeTab = tabMonth
		cmd := m.monthView.Jump(today.Year(), int(today.Month()), today.Day())
		return m, cmd

	case "goto":
		if len(parts) < 2 {
			m.status = "usage: goto <YYYY-MM>"
			return m, nil
		}
		at, err := time.Parse("2006-01", parts[1])
		if err != nil {
			m.status = "invalid month: " + parts[1]
			return m, nil
		}
		m.activeTab = tabMonth
		cmd := m.monthView.Jump(at.Year(), int(at.Month()), 1)
		return m, cmd

	case "export":
		format := ""
		if len(parts) >= 2 {
			format = parts[1]
		}
		return m, m.exportCmd(format)

	case "import":
		if len(parts) < 2 {
			m.status = "usage: import <path>"
			return m, nil
		}
		return m, m.importCmd(argsAfter(input, 1))

	case "share":
		year := m.monthView.Year()
		if m.activeTab == tabYear {
			year = m.yearView.Year()
		}
		return m, m.shareCmd(year)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// argsAfter drops the first n words of a palette command and returns the rest
// verbatim, so notes and paths keep their inner spacing.
func argsAfter(input string, n int) string {
	rest := strings.TrimSpace(input)
	for i := 0; i < n; i++ {
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[i:])
	}
	return rest
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.monthView, _ = m.monthView.Update(sz)
	m.yearView, _ = m.yearView.Update(sz)
}

func (m Model) reloadViews() tea.Cmd {
	return tea.Batch(m.monthView.Load(), m.yearView.Load())
}

// ─── async commands ───────────────────────────────────────────────────────────

func scheduleReminder() tea.Cmd {
	return tea.Tick(reminderInterval, func(time.Time) tea.Msg { return reminderTickMsg{} })
}

func (m Model) checkReminderCmd() tea.Cmd {
	return func() tea.Msg {
		if m.reminder == nil {
			return reminderCheckedMsg{}
		}
		out, err := m.reminder.Check(context.Background())
		return reminderCheckedMsg{out: out, err: err}
	}
}

func (m Model) exportCmd(format string) tea.Cmd {
	return func() tea.Msg {
		if m.journal == nil {
			return exportedMsg{err: fmt.Errorf("journal is not configured")}
		}
		out, err := m.journal.Export(context.Background(), format)
		if err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(m.journalPath, out.FileName)
		if err := os.WriteFile(path, []byte(out.Content), 0o644); err != nil {
			return exportedMsg{err: fmt.Errorf("write export: %w", err)}
		}
		return exportedMsg{path: path, out: out}
	}
}

func (m Model) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if m.journal == nil {
			return importedMsg{err: fmt.Errorf("journal is not configured")}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return importedMsg{err: fmt.Errorf("read import file: %w", err)}
		}
		out, err := m.journal.Import(context.Background(), string(content))
		return importedMsg{out: out, err: err}
	}
}

func (m Model) shareCmd(year int) tea.Cmd {
	return func() tea.Msg {
		if m.journal == nil {
			return sharedMsg{err: fmt.Errorf("journal is not configured")}
		}
		out, err := m.journal.ShareYear(context.Background(), year, true)
		return sharedMsg{out: out, err: err}
	}
}
