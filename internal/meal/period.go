package meal

import "fmt"

// Period identifies one meal service of the day.
// It selects which column of the upstream menu table is extracted.
type Period int

const (
	// Breakfast is the morning service. The clock never selects it; it is
	// only reachable through an explicit request.
	Breakfast Period = iota

	// Lunch is the midday service.
	Lunch

	// Dinner is the evening service.
	Dinner
)

// Periods lists every meal period in serving order.
var Periods = []Period{Breakfast, Lunch, Dinner}

// String returns the lowercase English name of the period.
func (p Period) String() string {
	switch p {
	case Breakfast:
		return "breakfast"
	case Lunch:
		return "lunch"
	case Dinner:
		return "dinner"
	default:
		return "unknown"
	}
}

// Label returns the Korean label used by the cafeteria site.
func (p Period) Label() string {
	switch p {
	case Breakfast:
		return "조식"
	case Lunch:
		return "중식"
	case Dinner:
		return "석식"
	default:
		return "?"
	}
}

// Valid reports whether p is one of the defined periods.
func (p Period) Valid() bool {
	return p >= Breakfast && p <= Dinner
}

// ParsePeriod converts a period name as returned by String back to a Period.
func ParsePeriod(s string) (Period, bool) {
	for _, p := range Periods {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}

// MarshalText encodes the period by name.
func (p Period) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid meal period %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a period name.
func (p *Period) UnmarshalText(text []byte) error {
	v, ok := ParsePeriod(string(text))
	if !ok {
		return fmt.Errorf("unknown meal period %q", text)
	}
	*p = v
	return nil
}
