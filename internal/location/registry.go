package location

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Location is a dining hall known to the cafeteria site.
type Location struct {
	// Name is the human-facing name, also used as the chat command name.
	Name string

	// Param is the value of the site's dvs_cd query parameter.
	Param string
}

// Built-in halls.
var (
	Kaimaru = Location{Name: "카이마루", Param: "fclt"}
	Faculty = Location{Name: "교수회관", Param: "emp"}
)

// Registry is an immutable set of locations indexed by name.
// It is safe for concurrent use.
type Registry struct {
	locations []Location
	byName    map[string]Location
}

// New builds a registry from locs, keeping their order.
// Names and parameters must be non-empty and unique.
func New(locs ...Location) (*Registry, error) {
	r := &Registry{
		locations: make([]Location, 0, len(locs)),
		byName:    make(map[string]Location, len(locs)),
	}
	params := make(map[string]bool, len(locs))

	for _, loc := range locs {
		loc.Name = norm.NFC.String(loc.Name)
		if loc.Name == "" || loc.Param == "" {
			return nil, fmt.Errorf("%w: %+v", ErrEmptyLocation, loc)
		}
		if _, ok := r.byName[loc.Name]; ok {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateLocation, loc.Name)
		}
		if params[loc.Param] {
			return nil, fmt.Errorf("%w: parameter %q", ErrDuplicateLocation, loc.Param)
		}
		params[loc.Param] = true
		r.byName[loc.Name] = loc
		r.locations = append(r.locations, loc)
	}
	return r, nil
}

// Default returns the registry of the two campus cafeterias.
func Default() *Registry {
	r, err := New(Kaimaru, Faculty)
	if err != nil {
		// The built-in table is constant.
		panic(err)
	}
	return r
}

// Resolve returns the site parameter registered for name.
// Matching is exact after NFC normalization: case variants, surrounding
// whitespace and the empty string are all unknown.
func (r *Registry) Resolve(name string) (string, error) {
	loc, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return loc.Param, nil
}

// Lookup returns the location registered for name.
func (r *Registry) Lookup(name string) (Location, error) {
	loc, ok := r.byName[norm.NFC.String(name)]
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	return loc, nil
}

// Locations returns the registered locations in registration order.
func (r *Registry) Locations() []Location {
	out := make([]Location, len(r.locations))
	copy(out, r.locations)
	return out
}

// Names returns the registered display names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.locations))
	for i, loc := range r.locations {
		names[i] = loc.Name
	}
	return names
}
