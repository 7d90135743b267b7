package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Teal     = lipgloss.Color("#94e2d5")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
)

// gradeColors runs from A+ (index 0) to F (index 5).
var gradeColors = [...]lipgloss.Color{Green, Teal, Sapphire, Yellow, Peach, Red}

// Grade styles a grade index; anything out of range renders muted.
func Grade(grade int) lipgloss.Style {
	if grade < 0 || grade >= len(gradeColors) {
		return Muted
	}
	return lipgloss.NewStyle().Foreground(gradeColors[grade]).Bold(true)
}

// GradeCell is Grade with the color as background, used for calendar days.
func GradeCell(grade int) lipgloss.Style {
	if grade < 0 || grade >= len(gradeColors) {
		return lipgloss.NewStyle().Foreground(Text)
	}
	return lipgloss.NewStyle().Background(gradeColors[grade]).Foreground(Base).Bold(true)
}
