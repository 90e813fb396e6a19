package shared

import (
	"context"
	"time"

	"conference-seats/internal/domain/conference"
)

// EventStore is the append-only log of conference events, one ordered stream
// per conference id. The expected-version check on Append is the sole
// arbiter of write ordering for a stream.
type EventStore interface {
	// LoadHistory returns the full stream for id in append order. An empty
	// slice means the conference does not exist. The read is a snapshot of
	// the stream at call time and never blocks behind writers.
	LoadHistory(ctx context.Context, id string) ([]conference.Event, error)
	// Append writes events atomically after verifying the stream still has
	// exactly expectedVersion events. Returns the new version, or
	// ErrConcurrencyConflict without writing anything when another writer
	// got there first.
	Append(ctx context.Context, id string, expectedVersion int, events []conference.Event) (int, error)
	// LoadAll returns every stored event, ordered within each stream,
	// for projection rebuilds.
	LoadAll(ctx context.Context) ([]conference.Event, error)
}

// EventBus distributes freshly appended events to subscribers, synchronously
// and in append order. Delivery is at most once per subscriber.
type EventBus interface {
	Subscribe(handler func(ctx context.Context, event conference.Event))
	Publish(ctx context.Context, events []conference.Event)
}

// ConferenceProjection is the denormalized read-model row for one
// conference. LastUpdate is the occurred-at of the most recently applied
// event, kept for staleness checks; ordering is the bus's job.
type ConferenceProjection struct {
	Slug       string
	Name       string
	LastUpdate time.Time
}

// ProjectionRepository stores read-model rows keyed by conference id. Only
// the projection generator writes to it.
type ProjectionRepository interface {
	// Get returns nil with no error when no row exists for id.
	Get(ctx context.Context, id string) (*ConferenceProjection, error)
	Upsert(ctx context.Context, id string, projection ConferenceProjection) error
}
