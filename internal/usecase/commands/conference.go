package commands

import (
	"context"
	"errors"
	"log/slog"

	"conference-seats/internal/domain/conference"
	"conference-seats/internal/pkg/clock"
	"conference-seats/internal/pkg/errs"
	"conference-seats/internal/usecase/shared"
)

// maxAttempts bounds the load-decide-append retry cycle on concurrency
// conflicts. Three attempts, no backoff: a conflict means another writer
// just finished, so the immediate reload already sees its events.
const maxAttempts = 3

var (
	ErrConferenceNotFound = errs.ErrConferenceNotFound
	ErrRetryExhausted     = errs.ErrRetryExhausted
)

// SeatAvailability reports remaining quota for one seat type, derived from
// the write model by replay (strongly consistent, unlike projections).
type SeatAvailability struct {
	SeatType  string `json:"seat_type"`
	Quota     int    `json:"quota"`
	Reserved  int    `json:"reserved"`
	Remaining int    `json:"remaining"`
}

type ConferenceCommands interface {
	// Handle is the sole write-side entry point. A nil return means the
	// command was accepted: its events were appended and published, or it
	// was a defined no-op and the stream is untouched.
	Handle(ctx context.Context, cmd conference.Command) error
	Availability(ctx context.Context, id string) ([]SeatAvailability, error)
}

type conferenceCommandsImpl struct {
	store  shared.EventStore
	bus    shared.EventBus
	clock  clock.Clock
	logger *slog.Logger
}

func NewConferenceCommands(
	store shared.EventStore,
	bus shared.EventBus,
	clock clock.Clock,
	logger *slog.Logger,
) ConferenceCommands {
	return &conferenceCommandsImpl{
		store:  store,
		bus:    bus,
		clock:  clock,
		logger: logger,
	}
}

func (h *conferenceCommandsImpl) Handle(ctx context.Context, cmd conference.Command) error {
	id := cmd.AggregateID()

	// The decision may depend on state that changed between load and append
	// (another reservation eating the remaining quota), so a conflict restarts
	// the whole cycle, never just the append.
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		history, err := h.store.LoadHistory(ctx, id)
		if err != nil {
			return err
		}

		events, err := decide(history, cmd, h.clock)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			h.logger.Debug("command discarded as no-op",
				slog.String("stream_id", id))
			return nil
		}

		newVersion, err := h.store.Append(ctx, id, len(history), events)
		if err != nil {
			if errors.Is(err, errs.ErrConcurrencyConflict) {
				h.logger.Info("append conflict, retrying command",
					slog.String("stream_id", id),
					slog.Int("attempt", attempt))
				continue
			}
			return err
		}

		h.bus.Publish(ctx, events)
		h.logger.Debug("command handled",
			slog.String("stream_id", id),
			slog.Int("events", len(events)),
			slog.Int("version", newVersion))
		return nil
	}

	return errs.Mark(
		errs.New("command handling gave up after repeated conflicts"),
		ErrRetryExhausted,
	)
}

func (h *conferenceCommandsImpl) Availability(ctx context.Context, id string) ([]SeatAvailability, error) {
	agg, err := h.currentState(ctx, id)
	if err != nil {
		return nil, err
	}

	quotas := agg.SeatTypes()
	out := make([]SeatAvailability, 0, len(quotas))
	for seatType, quota := range quotas {
		reserved := agg.Reserved(seatType)
		out = append(out, SeatAvailability{
			SeatType:  seatType,
			Quota:     quota,
			Reserved:  reserved,
			Remaining: quota - reserved,
		})
	}
	return out, nil
}

func (h *conferenceCommandsImpl) currentState(ctx context.Context, id string) (*conference.Conference, error) {
	history, err := h.store.LoadHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrConferenceNotFound
	}
	return conference.Reconstruct(history)
}

// decide maps a command to its resulting events. An empty result is a
// defined no-op. Absence (empty history) is decided here without ever
// constructing an aggregate; reconstruction of a non-empty history cannot
// fail short of a programmer error, which is surfaced, not retried.
func decide(history []conference.Event, cmd conference.Command, clk clock.Clock) ([]conference.Event, error) {
	now := clk.Now()

	if len(history) == 0 {
		// Only creation means anything for a conference that does not exist.
		// Everything else is discarded, including reservations: there is no
		// aggregate to attach a rejection to.
		if create, ok := cmd.(conference.CreateConference); ok {
			return conference.Create(create, now), nil
		}
		return nil, nil
	}

	agg, err := conference.Reconstruct(history)
	if err != nil {
		return nil, err
	}

	switch c := cmd.(type) {
	case conference.CreateConference:
		// already exists: idempotent no-op
		return nil, nil
	case conference.UpdateConference:
		return agg.Update(c, now), nil
	case conference.PublishConference:
		return agg.Publish(c, now), nil
	case conference.AddSeatsToConference:
		return agg.AddSeats(c, now), nil
	case conference.MakeSeatsReservation:
		return agg.ReserveSeats(c, now), nil
	default:
		return nil, errs.New("unknown command variant")
	}
}
