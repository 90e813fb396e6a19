package conference

import (
	"time"

	"conference-seats/internal/pkg/errs"
)

// ErrEmptyHistory marks the programmer error of replaying a stream with no
// events. An absent conference is represented by not constructing the
// aggregate at all, never by an empty fold.
var ErrEmptyHistory = errs.New("conference: reconstruct called with empty history")

// Conference is the consistency boundary for one conference. It is
// ephemeral: rebuilt from its event stream for every command and discarded
// afterwards. Only the stream is durable.
type Conference struct {
	id             string
	name           string
	published      bool
	seatTypes      map[string]int
	reservedByType map[string]int
}

// Reconstruct folds history left to right into aggregate state. The fold is
// total: applying a well-formed event never fails, business rules are
// enforced at decision time only.
func Reconstruct(history []Event) (*Conference, error) {
	if len(history) == 0 {
		return nil, ErrEmptyHistory
	}
	c := &Conference{
		seatTypes:      make(map[string]int),
		reservedByType: make(map[string]int),
	}
	for _, e := range history {
		c.apply(e)
	}
	return c, nil
}

func (c *Conference) apply(e Event) {
	switch ev := e.(type) {
	case ConferenceCreated:
		c.id = ev.Slug
		c.name = ev.Name
	case ConferenceUpdated:
		c.name = ev.Name
	case ConferencePublished:
		c.published = true
	case SeatsAdded:
		c.seatTypes[ev.SeatType] = ev.Quota
	case SeatsReserved:
		c.reservedByType[ev.SeatType] += ev.Count
	case SeatsReservationRejected:
		// recorded for the read side; no aggregate state change
	}
}

// Create decides CreateConference for an absent conference. Creation against
// an existing stream is a no-op decided by the caller, which alone knows
// whether the stream exists.
func Create(cmd CreateConference, now time.Time) []Event {
	return []Event{ConferenceCreated{Name: cmd.Name, Slug: cmd.Slug, At: now}}
}

func (c *Conference) Update(cmd UpdateConference, now time.Time) []Event {
	return []Event{ConferenceUpdated{ID: c.id, Name: cmd.Name, At: now}}
}

// Publish is monotonic: once published a conference never reverts, and
// publishing again leaves the stream untouched.
func (c *Conference) Publish(cmd PublishConference, now time.Time) []Event {
	if c.published {
		return nil
	}
	return []Event{ConferencePublished{ID: c.id, At: now}}
}

// AddSeats registers a new seat type. Seat types grow only; re-adding a
// known type is discarded so a stale retry cannot shrink or reset a quota.
func (c *Conference) AddSeats(cmd AddSeatsToConference, now time.Time) []Event {
	if _, known := c.seatTypes[cmd.SeatType]; known {
		return nil
	}
	return []Event{SeatsAdded{ConferenceID: c.id, SeatType: cmd.SeatType, Quota: cmd.Quota, At: now}}
}

// ReserveSeats grants the reservation when the conference is published, the
// seat type is known and enough quota remains. Any business failure is
// recorded as SeatsReservationRejected: downstream order flows compensate on
// that fact, so it must appear in the stream rather than vanish.
func (c *Conference) ReserveSeats(cmd MakeSeatsReservation, now time.Time) []Event {
	quota, known := c.seatTypes[cmd.SeatType]
	if !c.published || !known || quota-c.reservedByType[cmd.SeatType] < cmd.Count {
		return []Event{SeatsReservationRejected{
			ConferenceID: c.id,
			OrderID:      cmd.OrderID,
			SeatType:     cmd.SeatType,
			Count:        cmd.Count,
			At:           now,
		}}
	}
	return []Event{SeatsReserved{
		ConferenceID: c.id,
		OrderID:      cmd.OrderID,
		SeatType:     cmd.SeatType,
		Count:        cmd.Count,
		At:           now,
	}}
}

func (c *Conference) ID() string      { return c.id }
func (c *Conference) Name() string    { return c.name }
func (c *Conference) Published() bool { return c.published }

// SeatQuota reports the quota for a seat type and whether the type exists.
func (c *Conference) SeatQuota(seatType string) (int, bool) {
	quota, ok := c.seatTypes[seatType]
	return quota, ok
}

// Reserved reports the cumulative accepted reservation count for a seat type.
func (c *Conference) Reserved(seatType string) int {
	return c.reservedByType[seatType]
}

// SeatTypes returns a copy of the known seat types and their quotas.
func (c *Conference) SeatTypes() map[string]int {
	out := make(map[string]int, len(c.seatTypes))
	for t, q := range c.seatTypes {
		out[t] = q
	}
	return out
}
