package conference

import (
	"time"

	"github.com/google/uuid"
)

// Event is the sealed set of facts recorded for a conference stream.
// Variants are value types; once appended they are never mutated.
type Event interface {
	AggregateID() string
	OccurredAt() time.Time

	isEvent()
}

type ConferenceCreated struct {
	Name string
	Slug string
	At   time.Time
}

type ConferenceUpdated struct {
	ID   string
	Name string
	At   time.Time
}

type ConferencePublished struct {
	ID string
	At time.Time
}

type SeatsAdded struct {
	ConferenceID string
	SeatType     string
	Quota        int
	At           time.Time
}

type SeatsReserved struct {
	ConferenceID string
	OrderID      uuid.UUID
	SeatType     string
	Count        int
	At           time.Time
}

type SeatsReservationRejected struct {
	ConferenceID string
	OrderID      uuid.UUID
	SeatType     string
	Count        int
	At           time.Time
}

// The conference id is its slug, fixed at creation.
func (e ConferenceCreated) AggregateID() string        { return e.Slug }
func (e ConferenceUpdated) AggregateID() string        { return e.ID }
func (e ConferencePublished) AggregateID() string      { return e.ID }
func (e SeatsAdded) AggregateID() string               { return e.ConferenceID }
func (e SeatsReserved) AggregateID() string            { return e.ConferenceID }
func (e SeatsReservationRejected) AggregateID() string { return e.ConferenceID }

func (e ConferenceCreated) OccurredAt() time.Time        { return e.At }
func (e ConferenceUpdated) OccurredAt() time.Time        { return e.At }
func (e ConferencePublished) OccurredAt() time.Time      { return e.At }
func (e SeatsAdded) OccurredAt() time.Time               { return e.At }
func (e SeatsReserved) OccurredAt() time.Time            { return e.At }
func (e SeatsReservationRejected) OccurredAt() time.Time { return e.At }

func (ConferenceCreated) isEvent()        {}
func (ConferenceUpdated) isEvent()        {}
func (ConferencePublished) isEvent()      {}
func (SeatsAdded) isEvent()               {}
func (SeatsReserved) isEvent()            {}
func (SeatsReservationRejected) isEvent() {}
