package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"moodlog/internal/ui/components"
)

func TestMatchHints(t *testing.T) {
	t.Parallel()
	if got := components.MatchHints(""); len(got) != 5 {
		t.Fatalf("empty input should list the first five hints, got %v", got)
	}
	if got := components.MatchHints("ex"); len(got) != 1 || got[0] != "export [json|csv|markdown|html]" {
		t.Fatalf("unexpected prefix match %v", got)
	}
	if got := components.MatchHints("log A+ great"); len(got) != 1 || got[0] != "log <grade> [note]" {
		t.Fatalf("arguments should pin the command, got %v", got)
	}
	if got := components.MatchHints("lo "); len(got) != 0 {
		t.Fatalf("partial word followed by args must not match, got %v", got)
	}
	if got := components.MatchHints("zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestPaletteSubmitAndRecall(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	for _, r := range "share" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "share" {
		t.Fatalf("unexpected submit message %#v", cmd())
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg, ok := cmd().(components.PaletteSubmitMsg); !ok || msg.Input != "share" {
		t.Fatalf("expected recalled command, got %#v", cmd())
	}
}
