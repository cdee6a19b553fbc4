package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/babbot/internal/meal"
	"github.com/nao1215/babbot/internal/model"
)

// MarkdownWriter outputs results as a Markdown document built with
// nao1215/markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs results in Markdown format.
func (w *MarkdownWriter) Write(results []*model.MenuResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("KAIST 학식 메뉴")
	md.PlainText("")
	w.writeSummary(md, results)

	for _, r := range results {
		w.writeResult(md, r)
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [babbot](https://github.com/nao1215/babbot)*")

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, results []*model.MenuResult) {
	rows := make([][]string, 0, len(results))
	failed := 0
	for _, r := range results {
		status := "✅"
		if !r.OK() {
			status = "❌"
			failed++
		}
		rows = append(rows, []string{
			r.Location,
			r.Period.Label(),
			r.QueriedAt.In(meal.KST).Format("2006-01-02 15:04 MST"),
			status,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Location", "Meal", "Queried At", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	if failed > 0 {
		md.Warningf("%d of %d menus could not be loaded.", failed, len(results))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeResult(md *markdown.Markdown, r *model.MenuResult) {
	md.H2(r.Location + " " + r.Period.Label())
	md.PlainText("")

	if !r.OK() {
		md.Cautionf("%s", r.Error)
		md.PlainText("")
		return
	}

	items := menuItems(r.Menu)
	if len(items) == 0 {
		md.Note("The menu for this meal is empty.")
		md.PlainText("")
		return
	}
	md.BulletList(items...)
	md.PlainText("")
}

// menuItems splits normalized menu text into non-blank lines.
func menuItems(menu string) []string {
	lines := strings.Split(menu, "\n")
	items := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			items = append(items, l)
		}
	}
	return items
}
