package discord

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nao1215/babbot/internal/location"
	"github.com/nao1215/babbot/internal/meal"
)

// Replies sent when no menu can be shown.
const (
	// NotImplementedReply answers a command that names no known location.
	NotImplementedReply = "not implemented :("

	// FailureReply answers a command whose menu could not be loaded.
	FailureReply = "메뉴를 불러오지 못했습니다 :("
)

// Querier returns the menu for a location at an instant.
type Querier interface {
	Query(ctx context.Context, name string, now time.Time) (string, error)
}

// Dispatcher turns a command name into reply text.
type Dispatcher struct {
	querier Querier
	clock   meal.Clock
	logger  *slog.Logger
}

// NewDispatcher creates a Dispatcher. A zero clock uses the wall clock and a
// nil logger uses slog.Default().
func NewDispatcher(q Querier, clock meal.Clock, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{querier: q, clock: clock, logger: logger}
}

// Dispatch answers command. The command name is the location display name.
// It never fails: errors become one of the fixed replies.
func (d *Dispatcher) Dispatch(ctx context.Context, command string) string {
	menu, err := d.querier.Query(ctx, command, d.clock.Current())
	switch {
	case err == nil:
		return menu
	case errors.Is(err, location.ErrUnknownLocation):
		d.logger.Debug("unknown command", "command", command)
		return NotImplementedReply
	default:
		d.logger.Warn("menu query failed", "command", command, "error", err)
		return FailureReply
	}
}
