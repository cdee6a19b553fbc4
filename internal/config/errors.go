package config

import "errors"

// Configuration validation errors returned by Validate and friends.
var (
	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown are set.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the body size limit is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidBaseURL is returned when the menu page URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrUnknownPeriod is returned when a rule override names an unknown meal period.
	ErrUnknownPeriod = errors.New("unknown meal period in rules")

	// ErrMissingToken is returned when DISCORD_TOKEN is not set.
	ErrMissingToken = errors.New("DISCORD_TOKEN is not set")

	// ErrMissingApplicationID is returned when DISCORD_APPLICATION_ID is not set.
	ErrMissingApplicationID = errors.New("DISCORD_APPLICATION_ID is not set")

	// ErrMissingGuildID is returned when GUILD_ID is not set.
	ErrMissingGuildID = errors.New("GUILD_ID is not set")

	// ErrInvalidPublicKey is returned when DISCORD_PUBLIC_KEY is not a hex encoded Ed25519 key.
	ErrInvalidPublicKey = errors.New("DISCORD_PUBLIC_KEY must be a 64 character hex encoded Ed25519 public key")

	// ErrInvalidGuildID is returned when GUILD_ID is not a numeric snowflake.
	ErrInvalidGuildID = errors.New("GUILD_ID must be an integer")
)
