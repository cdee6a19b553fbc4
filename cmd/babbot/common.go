package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/babbot/internal/config"
	"github.com/nao1215/babbot/internal/log"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return log.NewSecureJSONLogger(w, verbose)
	}
	return log.NewSecureLogger(w, verbose)
}

// addConfigFlags registers the flags every command that queries menus shares.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .babbot in current or home directory)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each menu page request")
}

// buildConfig creates a Config from the configuration file and the shared
// flags. Flags given on the command line win over the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	f, path, err := config.Load(cfg.ConfigFilePath)
	if err != nil {
		if path == "" {
			path = cfg.ConfigFilePath
		}
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg.ApplyFile(f)

	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// addDiscordFlags registers the flags of the commands that talk to Discord.
func addDiscordFlags(cmd *cobra.Command) {
	cmd.Flags().String("env-file", config.DefaultEnvFile,
		"Dotenv file with Discord credentials, ignored when missing")
}

// loadDiscord reads the Discord settings from the environment and the
// --env-file dotenv file into cfg.
func loadDiscord(cmd *cobra.Command, cfg *config.Config) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}
	d, err := config.LoadDiscord(envFile)
	if err != nil {
		return err
	}
	cfg.Discord = d
	return nil
}
