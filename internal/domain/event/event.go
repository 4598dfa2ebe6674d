package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeRequestSubmitted = "request.submitted"
	TypeVoteCast         = "vote.cast"
	TypeRequestDecided   = "request.decided"
)

type Event struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"event_type"`
	Key        string    `json:"-"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func New(typ, key string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Noop drops every event; used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
