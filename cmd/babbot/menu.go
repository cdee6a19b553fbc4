package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/babbot/internal/config"
	"github.com/nao1215/babbot/internal/meal"
	"github.com/nao1215/babbot/internal/query"
	"github.com/nao1215/babbot/internal/report"
)

// errQueryFailed is returned when at least one menu could not be loaded.
var errQueryFailed = errors.New("menu query failed")

// NewMenuCmd creates the menu command.
func NewMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu [location...]",
		Short: "Print the current menu of one or more dining halls",
		Long: `Menu prints the meal currently served at the given dining halls.

The meal is chosen from the time in Korea: until 13:30 KST it is lunch,
after that dinner. Without arguments every configured hall is shown.

Examples:
  # Current menu at Kaimaru
  babbot menu 카이마루

  # Both halls, as they looked at 18:00 today
  babbot menu --at 18:00

  # JSON for scripting
  babbot menu --json 교수회관

  # Markdown report written to a file
  babbot menu --markdown -o menu.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runMenuCmd,
	}

	addConfigFlags(cmd)
	cmd.Flags().String("at", "",
		`Instant to pick the meal for: RFC 3339, "2006-01-02 15:04" or "15:04" (KST)`)
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of halls queried concurrently")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

func runMenuCmd(cmd *cobra.Command, args []string) error {
	cfg, output, err := buildMenuConfig(cmd, args, time.Now())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, false)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := createOutputFile(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return runMenu(ctx, cfg, w, logger)
}

// buildMenuConfig creates a Config from the menu command flags. now is the
// reference day for a bare "15:04" --at value.
func buildMenuConfig(cmd *cobra.Command, args []string, now time.Time) (*config.Config, string, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, "", err
	}

	at, err := cmd.Flags().GetString("at")
	if err != nil {
		return nil, "", err
	}
	if at != "" {
		cfg.At, err = parseAt(at, now)
		if err != nil {
			return nil, "", err
		}
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, "", err
	}
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, "", err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, "", err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, "", err
	}

	cfg.Targets = args
	return cfg, output, nil
}

// parseAt interprets the --at flag. Values without a zone are KST.
func parseAt(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, meal.KST); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("15:04", s, meal.KST); err == nil {
		day := now.In(meal.KST)
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, meal.KST), nil
	}
	return time.Time{}, fmt.Errorf("invalid --at value %q: want RFC 3339, \"2006-01-02 15:04\" or \"15:04\"", s)
}

func runMenu(ctx context.Context, cfg *config.Config, w io.Writer, logger *slog.Logger) error {
	svc, err := query.NewServiceFromConfig(cfg, nil, logger)
	if err != nil {
		return err
	}

	targets := cfg.Targets
	if len(targets) == 0 {
		reg, err := cfg.File.Registry()
		if err != nil {
			return err
		}
		targets = reg.Names()
	}

	now := cfg.Now()
	logger.Info("querying menus", "locations", targets, "period", meal.CurrentPeriod(now), "batchSize", cfg.BatchSize)

	bq := query.NewBatchQuerier(svc,
		query.WithConcurrency(cfg.BatchSize),
		query.WithBatchLogger(logger),
	)
	results, err := bq.Run(ctx, targets, now)
	if err != nil {
		return err
	}

	if _, err := report.New(w, reportFormat(cfg)).Write(results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d locations", errQueryFailed, failed, len(results))
	}
	return nil
}

func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
