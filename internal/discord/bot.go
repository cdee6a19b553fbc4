package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/babbot/internal/config"
	"github.com/nao1215/babbot/internal/meal"
	"github.com/nao1215/babbot/internal/query"
)

// shutdownTimeout bounds how long in-flight interactions may finish.
const shutdownTimeout = 10 * time.Second

// Bot is the running chat bot. It owns the configuration, the query service
// and the HTTP client shared by menu fetches and REST calls.
type Bot struct {
	cfg        *config.Config
	client     *http.Client
	clock      meal.Clock
	logger     *slog.Logger
	service    *query.Service
	dispatcher *Dispatcher
	commands   []*discordgo.ApplicationCommand
}

// BotOption configures a Bot.
type BotOption func(*Bot)

// WithClock sets the time source used to pick the meal period.
func WithClock(c meal.Clock) BotOption {
	return func(b *Bot) { b.clock = c }
}

// WithHTTPClient sets the client for menu fetches and Discord REST calls.
func WithHTTPClient(c *http.Client) BotOption {
	return func(b *Bot) { b.client = c }
}

// NewBot creates a Bot from cfg. A nil logger uses slog.Default().
func NewBot(cfg *config.Config, logger *slog.Logger, opts ...BotOption) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bot{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(b)
	}

	reg, err := cfg.File.Registry()
	if err != nil {
		return nil, fmt.Errorf("build location registry: %w", err)
	}
	svc, err := query.NewServiceFromConfig(cfg, b.client, logger)
	if err != nil {
		return nil, err
	}
	b.service = svc
	b.dispatcher = NewDispatcher(svc, b.clock, logger)

	for _, name := range reg.Names() {
		b.commands = append(b.commands, &discordgo.ApplicationCommand{
			Name:        name,
			Description: cfg.File.Description(name),
			Type:        discordgo.ChatApplicationCommand,
		})
	}
	return b, nil
}

// Commands returns the slash commands of the bot, one per location.
func (b *Bot) Commands() []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, len(b.commands))
	for i, c := range b.commands {
		cp := *c
		out[i] = &cp
	}
	return out
}

// Dispatch answers a command as the interactions endpoint would.
func (b *Bot) Dispatch(ctx context.Context, command string) string {
	return b.dispatcher.Dispatch(ctx, command)
}

// Handler returns the interactions endpoint.
func (b *Bot) Handler() (http.Handler, error) {
	if err := b.cfg.Discord.ValidateServe(); err != nil {
		return nil, err
	}
	key, err := ParsePublicKey(b.cfg.Discord.PublicKey)
	if err != nil {
		return nil, err
	}
	return NewHandler(b.dispatcher, key, b.logger), nil
}

// Register installs the bot's commands in the configured guild.
func (b *Bot) Register(ctx context.Context) error {
	d := b.cfg.Discord
	if err := d.ValidateRegister(); err != nil {
		return err
	}
	r, err := NewRegistrar(d.Token, d.ApplicationID, d.GuildID,
		WithAPIBase(d.APIBase),
		WithRegistrarHTTPClient(b.client),
		WithRegistrarLogger(b.logger),
	)
	if err != nil {
		return err
	}
	return b.register(ctx, r)
}

func (b *Bot) register(ctx context.Context, r *Registrar) error {
	stored, err := r.Register(ctx, b.Commands())
	if err != nil {
		return err
	}
	for _, c := range stored {
		b.logger.Info("command registered", "name", c.Name, "id", c.ID, "guild", r.guildID)
	}
	return nil
}

// ListenAndServe serves the interactions endpoint on the configured address
// until ctx is canceled.
func (b *Bot) ListenAndServe(ctx context.Context) error {
	handler, err := b.Handler()
	if err != nil {
		return err
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", b.cfg.Discord.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", b.cfg.Discord.ListenAddr, err)
	}
	return b.serve(ctx, ln, handler)
}

// Serve is ListenAndServe on an existing listener. The listener is closed
// when Serve returns.
func (b *Bot) Serve(ctx context.Context, ln net.Listener) error {
	handler, err := b.Handler()
	if err != nil {
		_ = ln.Close()
		return err
	}
	return b.serve(ctx, ln, handler)
}

func (b *Bot) serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      b.cfg.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b.logger.Info("interactions endpoint listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		b.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
