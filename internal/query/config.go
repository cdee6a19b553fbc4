package query

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nao1215/babbot/internal/config"
	"github.com/nao1215/babbot/internal/menu"
)

// NewServiceFromConfig builds a Service from the settings and file in cfg.
// A non-nil client replaces the fetcher's own HTTP client.
func NewServiceFromConfig(cfg *config.Config, client *http.Client, logger *slog.Logger) (*Service, error) {
	reg, err := cfg.File.Registry()
	if err != nil {
		return nil, fmt.Errorf("build location registry: %w", err)
	}
	ext, err := cfg.File.Extractor()
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}

	opts := cfg.FetcherOptions()
	if client != nil {
		opts = append(opts, menu.WithHTTPClient(client))
	}

	return NewService(
		WithLocations(reg),
		WithFetcher(menu.NewFetcher(opts...)),
		WithExtractor(ext),
		WithLogger(logger),
	), nil
}
