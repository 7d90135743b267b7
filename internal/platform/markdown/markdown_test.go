package markdown_test

import (
	"strings"
	"testing"

	"moodlog/internal/platform/markdown"
)

func TestRenderAndSplitFrontmatter(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(map[string]any{"year": 2024, "letter": "A"}, "# Body\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nletter: A\nyear: 2024\n---\n") {
		t.Fatalf("unexpected header: %q", rendered)
	}
	meta, body, err := markdown.SplitFrontmatter(strings.ReplaceAll(rendered, "\n", "\r\n"))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["year"] != 2024 || meta["letter"] != "A" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if body != "\n# Body\n" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitFrontmatterWithoutHeader(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("plain note")
	if err != nil || len(meta) != 0 || body != "plain note" {
		t.Fatalf("unexpected split: %v %q %v", meta, body, err)
	}
	if _, _, err := markdown.SplitFrontmatter("---\nyear: 1\n"); err == nil {
		t.Fatalf("expected missing separator error")
	}
}

func TestBlockReplace(t *testing.T) {
	t.Parallel()
	block := markdown.Block{Start: "<!-- s -->", End: "<!-- e -->"}

	first := block.Replace("", "one")
	if first != "<!-- s -->\none\n<!-- e -->\n" {
		t.Fatalf("unexpected first render: %q", first)
	}
	withUser := "my thoughts\n\n" + first + "\nafterword\n"
	second := block.Replace(withUser, "two\n")
	if !strings.HasPrefix(second, "my thoughts\n") || !strings.HasSuffix(second, "afterword\n") {
		t.Fatalf("user text must survive: %q", second)
	}
	content, ok := block.Content(second)
	if !ok || content != "two" {
		t.Fatalf("unexpected content %q", content)
	}
	appended := block.Replace("notes", "x")
	if appended != "notes\n\n<!-- s -->\nx\n<!-- e -->\n" {
		t.Fatalf("unexpected append: %q", appended)
	}
}

func TestToHTMLRendersTablesAndStripsRawHTML(t *testing.T) {
	t.Parallel()
	source := "## January 2024\n\n| Date | Grade | Note |\n|------|-------|------|\n| 2024-01-01 | A+ | <script>alert(1)</script> fresh start |\n"
	out, err := markdown.ToHTML(source)
	if err != nil {
		t.Fatalf("to html: %v", err)
	}
	if !strings.Contains(out, "<h2") || !strings.Contains(out, "<table>") || !strings.Contains(out, "<td>A+</td>") {
		t.Fatalf("expected heading and table, got:\n%s", out)
	}
	if strings.Contains(out, "<script") || strings.Contains(out, "alert(1)</script>") {
		t.Fatalf("raw html leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "fresh start") {
		t.Fatalf("note text lost:\n%s", out)
	}
}
