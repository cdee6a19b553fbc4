package model

import (
	"time"

	"github.com/nao1215/babbot/internal/meal"
)

// MenuResult is the outcome of a menu query for one location.
type MenuResult struct {
	// Location is the display name that was queried.
	Location string `json:"location"`

	// Param is the site parameter the location resolved to.
	// Empty when the location is unknown.
	Param string `json:"param,omitempty"`

	// Period is the meal period selected for QueriedAt.
	Period meal.Period `json:"period"`

	// Menu is the normalized menu text. Empty on error.
	Menu string `json:"menu"`

	// QueriedAt is the instant the period was computed for.
	QueriedAt time.Time `json:"queried_at"`

	// Error is the failure message, if any.
	Error string `json:"error,omitempty"`

	// Err is the failure itself, kept for errors.Is checks.
	Err error `json:"-"`
}

// NewMenuResult creates a result for location queried at at.
func NewMenuResult(location string, at time.Time) *MenuResult {
	return &MenuResult{
		Location:  location,
		Period:    meal.CurrentPeriod(at),
		QueriedAt: at,
	}
}

// SetError records err on the result. A nil err clears the failure.
func (r *MenuResult) SetError(err error) {
	r.Err = err
	if err == nil {
		r.Error = ""
		return
	}
	r.Error = err.Error()
	r.Menu = ""
}

// OK reports whether the query succeeded.
func (r *MenuResult) OK() bool {
	return r.Err == nil && r.Error == ""
}
