package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nao1215/babbot/internal/location"
	"github.com/nao1215/babbot/internal/meal"
	"github.com/nao1215/babbot/internal/menu"
)

// DefaultDescriptions are the slash command descriptions of the built-in halls.
var DefaultDescriptions = map[string]string{
	location.Kaimaru.Name: "밥",
	location.Faculty.Name: "바압",
}

// LocationConfig declares one dining hall in the configuration file.
type LocationConfig struct {
	// Name is the display name and chat command name.
	Name string `yaml:"name"`

	// Param is the dvs_cd value the cafeteria site expects.
	Param string `yaml:"param"`

	// Description is shown next to the chat command.
	Description string `yaml:"description,omitempty"`
}

// File is the structure of the YAML configuration file.
type File struct {
	// BaseURL overrides the menu page URL.
	BaseURL string `yaml:"baseURL,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Timeout overrides the request timeout, e.g. "10s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// MaxBodySize overrides the page size limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`

	// Locations replaces the built-in halls when non-empty.
	Locations []LocationConfig `yaml:"locations,omitempty"`

	// Rules overrides extraction selectors keyed by period name
	// ("breakfast", "lunch", "dinner").
	Rules map[string]string `yaml:"rules,omitempty"`
}

// Registry builds the location registry described by the file.
// Without a locations section the built-in registry is returned.
func (f *File) Registry() (*location.Registry, error) {
	if f == nil || len(f.Locations) == 0 {
		return location.Default(), nil
	}
	locs := make([]location.Location, 0, len(f.Locations))
	for _, lc := range f.Locations {
		locs = append(locs, location.Location{
			Name:  strings.TrimSpace(lc.Name),
			Param: strings.TrimSpace(lc.Param),
		})
	}
	return location.New(locs...)
}

// ExtractionRules returns the rule overrides declared in the file.
func (f *File) ExtractionRules() ([]menu.Rule, error) {
	if f == nil || len(f.Rules) == 0 {
		return nil, nil
	}
	rules := make([]menu.Rule, 0, len(f.Rules))
	for _, p := range meal.Periods {
		if sel, ok := f.Rules[p.String()]; ok {
			rules = append(rules, menu.Rule{Period: p, Selector: sel})
		}
	}
	if len(rules) != len(f.Rules) {
		for name := range f.Rules {
			if _, ok := meal.ParsePeriod(name); !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, name)
			}
		}
	}
	return rules, nil
}

// Extractor compiles the rule overrides on top of the default rules.
func (f *File) Extractor() (*menu.Extractor, error) {
	rules, err := f.ExtractionRules()
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return menu.DefaultExtractor(), nil
	}
	return menu.NewExtractor(rules...)
}

// Description returns the chat command description for a hall.
func (f *File) Description(name string) string {
	if f != nil {
		for _, lc := range f.Locations {
			if strings.TrimSpace(lc.Name) == name && lc.Description != "" {
				return lc.Description
			}
		}
	}
	if d, ok := DefaultDescriptions[name]; ok {
		return d
	}
	return name
}
