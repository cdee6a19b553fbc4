package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/babbot/internal/model"
)

// JSONWriter outputs results as a JSON document.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport is the document JSONWriter emits.
type JSONReport struct {
	// GeneratedAt is when the report was written.
	GeneratedAt time.Time `json:"generated_at"`

	// Results holds one entry per queried location, in request order.
	Results []*model.MenuResult `json:"results"`

	// Failed counts the results that carry an error.
	Failed int `json:"failed"`
}

// NewJSONReport wraps results with summary fields.
func NewJSONReport(results []*model.MenuResult, now time.Time) *JSONReport {
	r := &JSONReport{GeneratedAt: now, Results: results}
	if r.Results == nil {
		r.Results = []*model.MenuResult{}
	}
	for _, res := range results {
		if !res.OK() {
			r.Failed++
		}
	}
	return r
}

// Write outputs results in JSON format followed by a newline.
func (w *JSONWriter) Write(results []*model.MenuResult) (int, error) {
	return w.writeJSON(NewJSONReport(results, time.Now()))
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
