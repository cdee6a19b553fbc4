package report

import (
	"io"
	"strings"

	"github.com/nao1215/babbot/internal/model"
)

// TextWriter outputs menus as plain text.
//
// A single successful result is written exactly as the chat bot would
// reply, with nothing added. With several results each menu is preceded by
// a "[location · period]" heading and separated by a blank line.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs results as plain text.
func (w *TextWriter) Write(results []*model.MenuResult) (int, error) {
	var b strings.Builder

	if len(results) == 1 && results[0].OK() {
		b.WriteString(results[0].Menu)
		b.WriteString("\n")
		return io.WriteString(w.output, b.String())
	}

	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[")
		b.WriteString(r.Location)
		b.WriteString(" · ")
		b.WriteString(r.Period.Label())
		b.WriteString("]\n")
		if !r.OK() {
			b.WriteString("error: ")
			b.WriteString(r.Error)
			b.WriteString("\n")
			continue
		}
		b.WriteString(r.Menu)
		b.WriteString("\n")
	}
	return io.WriteString(w.output, b.String())
}
