package query

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/babbot/internal/model"
)

// DefaultConcurrency is the number of locations queried at once.
const DefaultConcurrency = 2

// BatchQuerier queries several locations concurrently.
// Each location runs its own independent pipeline; one failure never stops
// the others.
type BatchQuerier struct {
	service     *Service
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchQuerier.
type BatchOption func(*BatchQuerier)

// WithConcurrency limits how many queries run at the same time.
// Values below one are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchQuerier) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets the logger for batch progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchQuerier) { b.logger = logger }
}

// NewBatchQuerier creates a BatchQuerier over service.
func NewBatchQuerier(service *Service, opts ...BatchOption) *BatchQuerier {
	b := &BatchQuerier{
		service:     service,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Run queries every name at instant now and returns one result per name in
// input order. Per-location failures are recorded in the results. The error
// is non-nil only when ctx ends before every query has started.
func (b *BatchQuerier) Run(ctx context.Context, names []string, now time.Time) ([]*model.MenuResult, error) {
	results := make([]*model.MenuResult, len(names))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, name := range names {
		g.Go(func() error {
			result := model.NewMenuResult(name, now)

			select {
			case <-ctx.Done():
				result.SetError(ctx.Err())
				mu.Lock()
				results[i] = result
				mu.Unlock()
				return ctx.Err()
			default:
			}

			if target, err := b.service.Resolve(name, now); err == nil {
				result.Param = target.Param
			}

			text, err := b.service.Query(ctx, name, now)
			if err != nil {
				result.SetError(err)
				b.logger.Debug("batch query failed", "location", name, "error", err)
			} else {
				result.Menu = text
			}

			mu.Lock()
			results[i] = result
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
