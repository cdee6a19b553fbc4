package report

import (
	"io"

	"github.com/nao1215/babbot/internal/model"
)

// Writer outputs menu results in a specific format.
type Writer interface {
	// Write renders results to the writer's destination and returns the
	// number of bytes written.
	Write(results []*model.MenuResult) (int, error)
}

// Format names an output format.
type Format string

const (
	// FormatText is plain menu text.
	FormatText Format = "text"
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatMarkdown is a Markdown document.
	FormatMarkdown Format = "markdown"
)

// New returns the Writer for format. Unknown formats fall back to text.
func New(output io.Writer, format Format) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewTextWriter(output)
	}
}

// MultiWriter writes the same results to several Writers, stopping at the
// first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders results with every Writer and returns the total bytes written.
func (m *MultiWriter) Write(results []*model.MenuResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(results)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
