package events

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type Event interface {
	EventName() string
}

type Publisher interface {
	Publish(ctx context.Context, e Event)
}

func NewID() uuid.UUID { return uuid.New() }

// LogPublisher writes events to the structured log. It is the default sink
// until a broker is wired in.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) {
	p.logger.InfoContext(ctx, "domain event", "event", e.EventName(), "payload", e)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
