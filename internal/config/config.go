package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/babbot/internal/menu"
)

const (
	// AppName is used for XDG directories and the default config file name.
	AppName = "babbot"

	// DefaultBaseURL is the cafeteria menu page.
	DefaultBaseURL = menu.DefaultBaseURL

	// DefaultTimeout bounds each upstream request.
	DefaultTimeout = menu.DefaultTimeout

	// DefaultUserAgent identifies the bot to the cafeteria site.
	DefaultUserAgent = menu.DefaultUserAgent

	// DefaultMaxBodySize caps the menu page size.
	DefaultMaxBodySize = menu.DefaultMaxBodySize

	// DefaultBatchSize is how many locations the CLI queries at once.
	DefaultBatchSize = 2
)

// Config holds the settings for a babbot run.
type Config struct {
	// BaseURL is the menu page URL without the location parameter.
	BaseURL string

	// UserAgent is sent with every upstream request.
	UserAgent string

	// Timeout bounds each upstream request.
	Timeout time.Duration

	// MaxBodySize caps how many bytes of a page are read.
	MaxBodySize int64

	// BatchSize limits concurrent queries when several locations are requested.
	BatchSize int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit configuration file, if any.
	ConfigFilePath string

	// File is the loaded configuration file. Never nil after Load.
	File *File

	// JSONReport selects JSON output for the menu command.
	JSONReport bool

	// MarkdownReport selects Markdown output for the menu command.
	MarkdownReport bool

	// Targets are the location names to query.
	Targets []string

	// At overrides the current instant when non-zero.
	At time.Time

	// Discord holds the gateway credentials read from the environment.
	Discord Discord
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		MaxBodySize: DefaultMaxBodySize,
		BatchSize:   DefaultBatchSize,
		File:        &File{},
		Discord:     NewDiscord(),
	}
}

// ApplyFile copies the values set in f over the current settings.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.File = f
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.MaxBodySize != 0 {
		c.MaxBodySize = f.MaxBodySize
	}
}

// Validate checks the settings shared by every command.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}

// FetcherOptions returns the menu.Fetcher settings derived from c.
func (c *Config) FetcherOptions() []menu.FetcherOption {
	return []menu.FetcherOption{
		menu.WithBaseURL(c.BaseURL),
		menu.WithUserAgent(c.UserAgent),
		menu.WithTimeout(c.Timeout),
		menu.WithMaxBodySize(c.MaxBodySize),
	}
}

// Now returns At when set, otherwise the current time.
func (c *Config) Now() time.Time {
	if !c.At.IsZero() {
		return c.At
	}
	return time.Now()
}

// XDGConfigDir returns the XDG configuration directory for babbot.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
