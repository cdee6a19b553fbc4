package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/babbot/internal/discord"
)

// registerTimeout bounds the command registration request.
const registerTimeout = 30 * time.Second

// NewRegisterCmd creates the register command.
func NewRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the slash commands in the Discord guild",
		Long: `Register installs one guild slash command per dining hall.

It replaces the guild's existing commands of this application, so it is
safe to run again after the hall list in the configuration file changes.

Environment:
  DISCORD_TOKEN            bot token (required)
  DISCORD_APPLICATION_ID   application id (required)
  GUILD_ID                 guild to register the commands in (required)

The variables may also be placed in a .env file (see --env-file); values
already set in the environment take precedence.`,
		Args: cobra.NoArgs,
		RunE: runRegisterCmd,
	}

	addConfigFlags(cmd)
	addDiscordFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Print the commands without registering them")

	return cmd
}

func runRegisterCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := loadDiscord(cmd, cfg); err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, false)
	bot, err := discord.NewBot(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		for _, c := range bot.Commands() {
			fmt.Fprintf(out, "/%s  %s\n", c.Name, c.Description)
		}
		return nil
	}

	if err := cfg.Discord.ValidateRegister(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), registerTimeout)
	defer cancel()
	if err := bot.Register(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Registered %d commands in guild %s\n", len(bot.Commands()), cfg.Discord.GuildID)
	return nil
}
