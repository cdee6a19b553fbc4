package menu

import (
	"errors"
	"fmt"

	"github.com/nao1215/babbot/internal/meal"
)

// Sentinel errors for errors.Is matching.
var (
	// ErrFetch matches any *FetchError.
	ErrFetch = errors.New("failed to fetch menu page")

	// ErrParse matches any *ParseError.
	ErrParse = errors.New("failed to parse menu page")

	// ErrFragmentNotFound matches any *FragmentNotFoundError.
	ErrFragmentNotFound = errors.New("menu fragment not found")

	// ErrInvalidSelector is returned when a selector cannot be compiled.
	ErrInvalidSelector = errors.New("invalid selector")
)

// FetchError reports a transport level failure: connection errors, timeouts,
// unexpected HTTP status codes and bodies that cannot be decoded.
type FetchError struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status when a response was received, zero otherwise.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", ErrFetch, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrFetch, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ParseError reports a body that could not be parsed as HTML at all.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// FragmentNotFoundError reports that the rule for Period matched no node.
// This usually means the upstream layout changed or the page was empty.
type FragmentNotFoundError struct {
	Period   meal.Period
	Selector string
}

func (e *FragmentNotFoundError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("%s: no rule for %s", ErrFragmentNotFound, e.Period)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrFragmentNotFound, e.Period, e.Selector)
}

// Is reports whether target is ErrFragmentNotFound.
func (e *FragmentNotFoundError) Is(target error) bool { return target == ErrFragmentNotFound }
