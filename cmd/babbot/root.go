package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for babbot.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "babbot",
		Short: "KAIST cafeteria menu bot",
		Long: `babbot fetches the current meal menu of the KAIST cafeterias.

Before 13:30 KST it shows lunch, afterwards dinner. The menu can be
printed on the command line or served as Discord slash commands named
after each dining hall (카이마루, 교수회관).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewMenuCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewRegisterCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
