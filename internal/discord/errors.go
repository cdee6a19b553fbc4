package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrInvalidSignature is returned when an interaction request is not
	// signed by the application's key.
	ErrInvalidSignature = errors.New("invalid request signature")

	// ErrDiscordAPI matches every *APIError.
	ErrDiscordAPI = errors.New("discord api error")
)

// APIError is a non-2xx response from the Discord REST API.
type APIError struct {
	// Method and URL identify the request.
	Method string
	URL    string

	// StatusCode is the HTTP status Discord returned.
	StatusCode int

	// Body is the response body, which usually carries Discord's JSON
	// error message.
	Body string

	// Err is the underlying *discordgo.RESTError.
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord api: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Is reports whether target is ErrDiscordAPI.
func (e *APIError) Is(target error) bool { return target == ErrDiscordAPI }

func (e *APIError) Unwrap() error { return e.Err }

// apiError turns a discordgo REST failure into an *APIError. Transport
// errors, including context cancellation, are wrapped as they are.
func apiError(op string, err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	e := &APIError{
		StatusCode: restErr.Response.StatusCode,
		Body:       strings.TrimSpace(string(restErr.ResponseBody)),
		Err:        err,
	}
	if restErr.Request != nil {
		e.Method = restErr.Request.Method
		e.URL = restErr.Request.URL.String()
	}
	return e
}
