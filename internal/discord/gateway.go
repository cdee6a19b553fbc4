package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// RunGateway answers slash commands over the gateway WebSocket until ctx is
// canceled. It needs no public endpoint: the bot connects out to Discord,
// installs its guild commands once the session is ready and replies to
// each command through the REST callback.
func (b *Bot) RunGateway(ctx context.Context) error {
	d := b.cfg.Discord
	if err := d.ValidateGateway(); err != nil {
		return err
	}
	s, err := newSession(d.Token, d.APIBase, b.client)
	if err != nil {
		return err
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	g := &gateway{bot: b, ctx: ctx}
	s.AddHandler(g.onReady)
	s.AddHandler(g.onInteraction)

	if err := s.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	b.logger.Info("gateway connected", "guild", d.GuildID)

	<-ctx.Done()
	b.logger.Info("closing gateway")
	if err := s.Close(); err != nil {
		return fmt.Errorf("close gateway: %w", err)
	}
	return nil
}

// gateway holds the event handlers of one gateway session.
type gateway struct {
	bot *Bot
	ctx context.Context
}

func (g *gateway) onReady(s *discordgo.Session, r *discordgo.Ready) {
	appID := g.bot.cfg.Discord.ApplicationID
	if appID == "" && r.Application != nil {
		appID = r.Application.ID
	}
	if appID == "" {
		g.bot.logger.Warn("gateway ready without application id, commands not registered")
		return
	}
	reg := newSessionRegistrar(s, appID, g.bot.cfg.Discord.GuildID, g.bot.logger)
	if err := g.bot.register(g.ctx, reg); err != nil {
		g.bot.logger.Error("command registration failed", "error", err)
	}
}

func (g *gateway) onInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Interaction == nil || ic.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := ic.ApplicationCommandData().Name
	g.bot.logger.Debug("command received", "command", name, "guild", ic.GuildID, "interaction", ic.ID)

	resp := messageResponse(g.bot.Dispatch(g.ctx, name))
	if err := s.InteractionRespond(ic.Interaction, resp, discordgo.WithContext(g.ctx)); err != nil {
		g.bot.logger.Warn("interaction reply failed", "command", name, "error", apiError("reply", err))
	}
}
