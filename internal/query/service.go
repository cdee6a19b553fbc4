package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/babbot/internal/location"
	"github.com/nao1215/babbot/internal/meal"
	"github.com/nao1215/babbot/internal/menu"
)

// Resolver maps a display name to a site parameter.
type Resolver interface {
	Resolve(name string) (string, error)
}

// DocumentFetcher retrieves the menu page for a site parameter.
type DocumentFetcher interface {
	Fetch(ctx context.Context, param string) (*menu.Document, error)
}

// FragmentExtractor selects the raw markup for a meal period.
type FragmentExtractor interface {
	Extract(doc *menu.Document, p meal.Period) (string, error)
}

// Target is a resolved query: where and which meal.
type Target struct {
	Name   string
	Param  string
	Period meal.Period
}

// Service runs menu queries. It holds no per-query state and is safe for
// concurrent use when its collaborators are.
type Service struct {
	locations Resolver
	fetcher   DocumentFetcher
	extractor FragmentExtractor
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLocations sets the location resolver.
func WithLocations(r Resolver) Option {
	return func(s *Service) { s.locations = r }
}

// WithFetcher sets the page fetcher.
func WithFetcher(f DocumentFetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// WithExtractor sets the fragment extractor.
func WithExtractor(e FragmentExtractor) Option {
	return func(s *Service) { s.extractor = e }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a Service. Unset collaborators default to the built-in
// location registry, a menu.Fetcher with default settings, the default
// extraction rules and slog.Default().
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.locations == nil {
		s.locations = location.Default()
	}
	if s.fetcher == nil {
		s.fetcher = menu.NewFetcher()
	}
	if s.extractor == nil {
		s.extractor = menu.DefaultExtractor()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Resolve performs the first two steps of a query without any I/O.
func (s *Service) Resolve(name string, now time.Time) (Target, error) {
	param, err := s.locations.Resolve(name)
	if err != nil {
		return Target{}, err
	}
	return Target{Name: name, Param: param, Period: meal.CurrentPeriod(now)}, nil
}

// Query returns the menu text for the meal served at name at instant now.
func (s *Service) Query(ctx context.Context, name string, now time.Time) (string, error) {
	target, err := s.Resolve(name, now)
	if err != nil {
		s.logger.Debug("location not resolved", "location", name, "error", err)
		return "", err
	}

	logger := s.logger.With(
		"location", target.Name,
		"param", target.Param,
		"period", target.Period.String(),
	)

	start := time.Now()
	doc, err := s.fetcher.Fetch(ctx, target.Param)
	if err != nil {
		logger.Warn("menu page fetch failed", "error", err)
		return "", err
	}
	logger.Debug("menu page fetched", "url", doc.URL(), "elapsed", time.Since(start))

	raw, err := s.extractor.Extract(doc, target.Period)
	if err != nil {
		logger.Warn("menu fragment not extracted", "error", err)
		return "", err
	}

	text := menu.Normalize(raw)
	logger.Debug("menu extracted", "bytes", len(text))
	return text, nil
}
