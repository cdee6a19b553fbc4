package menu

import (
	"io"

	"golang.org/x/net/html"
)

// Document is one parsed menu page.
type Document struct {
	root *html.Node
	url  string
}

// ParseDocument parses an HTML document read from r.
// The source is only used in error messages.
func ParseDocument(r io.Reader, source string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &ParseError{URL: source, Err: err}
	}
	return &Document{root: root, url: source}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// URL returns the address the document was fetched from.
func (d *Document) URL() string { return d.url }
