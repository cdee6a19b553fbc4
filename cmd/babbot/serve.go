package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/babbot/internal/discord"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer Discord slash commands",
		Long: `Serve answers Discord slash commands until interrupted.

By default it serves the HTTP interactions endpoint. Set the application's
Interactions Endpoint URL in the Discord developer portal to
https://<host>/interactions. Requests are verified with the application
public key.

With --gateway it connects to the Discord gateway with the bot token
instead, registers the guild commands once connected and needs no public
endpoint.

Environment (also read from --env-file):
  DISCORD_PUBLIC_KEY       hex encoded application public key (HTTP mode)
  BABBOT_LISTEN_ADDR       listen address (HTTP mode, default :8080)
  DISCORD_TOKEN            bot token (gateway mode)
  GUILD_ID                 guild of the commands (gateway mode)
  DISCORD_APPLICATION_ID   application id (gateway mode, optional)

Examples:
  DISCORD_PUBLIC_KEY=... babbot serve
  babbot serve --listen 127.0.0.1:3000
  babbot serve --gateway`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addConfigFlags(cmd)
	addDiscordFlags(cmd)
	cmd.Flags().StringP("listen", "l", "",
		"Listen address (overrides BABBOT_LISTEN_ADDR)")
	cmd.Flags().BoolP("gateway", "g", false,
		"Connect to the Discord gateway instead of serving HTTP interactions")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := loadDiscord(cmd, cfg); err != nil {
		return err
	}
	listen, err := cmd.Flags().GetString("listen")
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Discord.ListenAddr = listen
	}
	useGateway, err := cmd.Flags().GetBool("gateway")
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	validate := cfg.Discord.ValidateServe
	if useGateway {
		validate = cfg.Discord.ValidateGateway
	}
	if err := validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, true)

	bot, err := discord.NewBot(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if useGateway {
		return bot.RunGateway(ctx)
	}
	return bot.ListenAndServe(ctx)
}
