package discord

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Registrar installs the guild slash commands.
type Registrar struct {
	session       *discordgo.Session
	applicationID string
	guildID       string
	logger        *slog.Logger
}

type registrarOptions struct {
	client  *http.Client
	apiBase string
	logger  *slog.Logger
}

// RegistrarOption configures a Registrar.
type RegistrarOption func(*registrarOptions)

// WithRegistrarHTTPClient sets the client used for REST calls.
func WithRegistrarHTTPClient(c *http.Client) RegistrarOption {
	return func(o *registrarOptions) { o.client = c }
}

// WithAPIBase sends REST calls to base instead of https://discord.com.
func WithAPIBase(base string) RegistrarOption {
	return func(o *registrarOptions) { o.apiBase = base }
}

// WithRegistrarLogger sets the logger.
func WithRegistrarLogger(l *slog.Logger) RegistrarOption {
	return func(o *registrarOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewRegistrar creates a Registrar for the guild commands of an application.
func NewRegistrar(token, applicationID, guildID string, opts ...RegistrarOption) (*Registrar, error) {
	o := registrarOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	s, err := newSession(token, o.apiBase, o.client)
	if err != nil {
		return nil, err
	}
	return newSessionRegistrar(s, applicationID, guildID, o.logger), nil
}

func newSessionRegistrar(s *discordgo.Session, applicationID, guildID string, logger *slog.Logger) *Registrar {
	return &Registrar{session: s, applicationID: applicationID, guildID: guildID, logger: logger}
}

// Register replaces the guild's commands with commands and returns what
// Discord stored. Commands missing from the list are removed by Discord.
func (r *Registrar) Register(ctx context.Context, commands []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	r.logger.Debug("registering commands",
		"application", r.applicationID, "guild", r.guildID, "count", len(commands))

	stored, err := r.session.ApplicationCommandBulkOverwrite(
		r.applicationID, r.guildID, commands, discordgo.WithContext(ctx))
	if err != nil {
		return nil, apiError("register commands", err)
	}
	return stored, nil
}
