package menu

import (
	"fmt"

	"github.com/nao1215/babbot/internal/meal"
)

// Rule locates the node holding one meal's menu.
type Rule struct {
	// Period is the meal the rule extracts.
	Period meal.Period

	// Selector is a CSS selector evaluated against the whole document. The
	// first match in document order is used.
	Selector string
}

// DefaultRules select the breakfast, lunch and dinner columns of the first
// row of the menu table.
var DefaultRules = []Rule{
	{Period: meal.Breakfast, Selector: "#tab_item_1 > table > tbody > tr > td:nth-child(1) > ul"},
	{Period: meal.Lunch, Selector: "#tab_item_1 > table > tbody > tr > td:nth-child(2) > ul"},
	{Period: meal.Dinner, Selector: "#tab_item_1 > table > tbody > tr > td:nth-child(3) > ul"},
}

var defaultExtractor = mustNewExtractor()

// Extractor maps meal periods to compiled rules.
// It is immutable after construction and safe for concurrent use.
type Extractor struct {
	rules map[meal.Period]*Selector
}

// NewExtractor compiles DefaultRules and then applies overrides in order.
// A later rule for the same period replaces an earlier one.
func NewExtractor(overrides ...Rule) (*Extractor, error) {
	e := &Extractor{rules: make(map[meal.Period]*Selector, len(meal.Periods))}
	for _, r := range append(append([]Rule{}, DefaultRules...), overrides...) {
		if !r.Period.Valid() {
			return nil, fmt.Errorf("%w: rule for unknown period %d", ErrInvalidSelector, int(r.Period))
		}
		sel, err := CompileSelector(r.Selector)
		if err != nil {
			return nil, fmt.Errorf("%s rule: %w", r.Period, err)
		}
		e.rules[r.Period] = sel
	}
	return e, nil
}

func mustNewExtractor() *Extractor {
	e, err := NewExtractor()
	if err != nil {
		panic(err)
	}
	return e
}

// DefaultExtractor returns the extractor for DefaultRules.
func DefaultExtractor() *Extractor { return defaultExtractor }

// Rule returns the rule used for p.
func (e *Extractor) Rule(p meal.Period) (Rule, bool) {
	sel, ok := e.rules[p]
	if !ok {
		return Rule{}, false
	}
	return Rule{Period: p, Selector: sel.String()}, true
}

// Extract returns the inner HTML of the node selected for p.
// When nothing matches it returns a *FragmentNotFoundError, never an empty
// string.
func (e *Extractor) Extract(doc *Document, p meal.Period) (string, error) {
	sel, ok := e.rules[p]
	if !ok {
		return "", &FragmentNotFoundError{Period: p}
	}
	n := sel.First(doc.Root())
	if n == nil {
		return "", &FragmentNotFoundError{Period: p, Selector: sel.String()}
	}
	return InnerHTML(n), nil
}
