package menu

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Selector is a compiled CSS selector.
//
// The supported subset covers what menu rules need:
//   - type and universal selectors: "td", "*"
//   - #id and .class
//   - attribute presence and equality: [data-x], [role=main]
//   - :first-child, :last-child and :nth-child(N)
//   - child (">") and descendant (whitespace) combinators
type Selector struct {
	source string
	parts  []selectorPart
}

// selectorPart is one compound selector and the combinator that links it to
// the part before it.
type selectorPart struct {
	child    bool
	compound compound
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatcher
	nth     int
	last    bool
}

type attrMatcher struct {
	key      string
	val      string
	hasValue bool
}

// CompileSelector parses a selector string.
func CompileSelector(sel string) (*Selector, error) {
	p := &selectorParser{src: sel}
	parts, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, sel, err)
	}
	return &Selector{source: sel, parts: parts}, nil
}

// MustCompileSelector is like CompileSelector but panics on error.
// It is intended for package level rule tables.
func MustCompileSelector(sel string) *Selector {
	s, err := CompileSelector(sel)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the selector source.
func (s *Selector) String() string { return s.source }

// First returns the first node under root, in document order, that matches.
func (s *Selector) First(root *html.Node) *html.Node {
	var found *html.Node
	walkElements(root, func(n *html.Node) bool {
		if s.Match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// All returns every matching node under root in document order.
func (s *Selector) All(root *html.Node) []*html.Node {
	var matches []*html.Node
	walkElements(root, func(n *html.Node) bool {
		if s.Match(n) {
			matches = append(matches, n)
		}
		return true
	})
	return matches
}

// Match reports whether n matches the selector.
func (s *Selector) Match(n *html.Node) bool {
	return s.matchAt(n, len(s.parts)-1)
}

func (s *Selector) matchAt(n *html.Node, i int) bool {
	part := s.parts[i]
	if !part.compound.match(n) {
		return false
	}
	if i == 0 {
		return true
	}
	if part.child {
		parent := parentElement(n)
		return parent != nil && s.matchAt(parent, i-1)
	}
	for a := parentElement(n); a != nil; a = parentElement(a) {
		if s.matchAt(a, i-1) {
			return true
		}
	}
	return false
}

func (c *compound) match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && n.Data != c.tag {
		return false
	}
	if c.id != "" && getAttr(n, "id") != c.id {
		return false
	}
	if len(c.classes) > 0 {
		have := strings.Fields(getAttr(n, "class"))
		for _, want := range c.classes {
			if !containsString(have, want) {
				return false
			}
		}
	}
	for _, a := range c.attrs {
		val, ok := lookupAttr(n, a.key)
		if !ok || (a.hasValue && val != a.val) {
			return false
		}
	}
	if c.nth > 0 && elementIndex(n) != c.nth {
		return false
	}
	if c.last && nextElementSibling(n) != nil {
		return false
	}
	return true
}

// walkElements visits element nodes in document order until fn returns false.
func walkElements(root *html.Node, fn func(*html.Node) bool) bool {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !fn(c) {
			return false
		}
		if !walkElements(c, fn) {
			return false
		}
	}
	return true
}

func parentElement(n *html.Node) *html.Node {
	if n.Parent != nil && n.Parent.Type == html.ElementNode {
		return n.Parent
	}
	return nil
}

// elementIndex returns the 1-based position of n among its element siblings.
func elementIndex(n *html.Node) int {
	i := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			i++
		}
	}
	return i
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	val, _ := lookupAttr(n, key)
	return val
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// selectorParser is a small recursive descent parser over the selector text.
type selectorParser struct {
	src string
	pos int
}

func (p *selectorParser) parse() ([]selectorPart, error) {
	var parts []selectorPart
	child := false
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.peek() == '>' {
			if len(parts) == 0 || child {
				return nil, fmt.Errorf("unexpected '>' at offset %d", p.pos)
			}
			child = true
			p.pos++
			continue
		}
		c, err := p.compound()
		if err != nil {
			return nil, err
		}
		parts = append(parts, selectorPart{child: child, compound: c})
		child = false
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	if child {
		return nil, fmt.Errorf("selector ends with a combinator")
	}
	return parts, nil
}

func (p *selectorParser) compound() (compound, error) {
	var c compound
	start := p.pos

	switch {
	case p.peek() == '*':
		p.pos++
	case isIdentByte(p.peek()):
		c.tag = strings.ToLower(p.ident())
	}

	for !p.eof() {
		switch p.peek() {
		case '#':
			p.pos++
			id := p.ident()
			if id == "" {
				return c, fmt.Errorf("missing id after '#' at offset %d", p.pos)
			}
			c.id = id
		case '.':
			p.pos++
			class := p.ident()
			if class == "" {
				return c, fmt.Errorf("missing class after '.' at offset %d", p.pos)
			}
			c.classes = append(c.classes, class)
		case '[':
			a, err := p.attribute()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
		case ':':
			if err := p.pseudo(&c); err != nil {
				return c, err
			}
		case ' ', '\t', '\n', '\r', '\f', '>':
			return c, nil
		default:
			return c, fmt.Errorf("unexpected %q at offset %d", p.peek(), p.pos)
		}
	}
	if p.pos == start {
		return c, fmt.Errorf("empty compound selector at offset %d", p.pos)
	}
	return c, nil
}

func (p *selectorParser) attribute() (attrMatcher, error) {
	var a attrMatcher
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return a, fmt.Errorf("unterminated attribute selector at offset %d", p.pos)
	}
	body := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1

	if eq := strings.IndexByte(body, '='); eq >= 0 {
		a.key = strings.TrimSpace(body[:eq])
		a.val = strings.Trim(strings.TrimSpace(body[eq+1:]), `"'`)
		a.hasValue = true
	} else {
		a.key = strings.TrimSpace(body)
	}
	if a.key == "" {
		return a, fmt.Errorf("empty attribute name")
	}
	a.key = strings.ToLower(a.key)
	return a, nil
}

func (p *selectorParser) pseudo(c *compound) error {
	p.pos++
	name := strings.ToLower(p.ident())
	switch name {
	case "first-child":
		c.nth = 1
	case "last-child":
		c.last = true
	case "nth-child":
		if p.eof() || p.peek() != '(' {
			return fmt.Errorf("nth-child requires an argument")
		}
		end := strings.IndexByte(p.src[p.pos:], ')')
		if end < 0 {
			return fmt.Errorf("unterminated nth-child argument")
		}
		arg := strings.TrimSpace(p.src[p.pos+1 : p.pos+end])
		p.pos += end + 1
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return fmt.Errorf("nth-child argument must be a positive integer, got %q", arg)
		}
		c.nth = n
	default:
		return fmt.Errorf("unsupported pseudo-class %q", name)
	}
	return nil
}

func (p *selectorParser) ident() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.peek()) {
		if p.peek() >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(p.src[p.pos:])
			p.pos += size
			continue
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *selectorParser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return
		}
	}
}

func (p *selectorParser) peek() byte { return p.src[p.pos] }

func (p *selectorParser) eof() bool { return p.pos >= len(p.src) }

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9') ||
		b >= utf8.RuneSelf
}
