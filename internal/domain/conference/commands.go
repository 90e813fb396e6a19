package conference

import "github.com/google/uuid"

// Command is the sealed set of write-side requests. Each command targets
// exactly one conference stream, addressed by AggregateID.
type Command interface {
	AggregateID() string

	isCommand()
}

type CreateConference struct {
	Name string
	Slug string
}

type UpdateConference struct {
	ID   string
	Name string
}

type PublishConference struct {
	ID string
}

type AddSeatsToConference struct {
	ConferenceID string
	SeatType     string
	Quota        int
}

type MakeSeatsReservation struct {
	OrderID      uuid.UUID
	ConferenceID string
	SeatType     string
	Count        int
}

func (c CreateConference) AggregateID() string     { return c.Slug }
func (c UpdateConference) AggregateID() string     { return c.ID }
func (c PublishConference) AggregateID() string    { return c.ID }
func (c AddSeatsToConference) AggregateID() string { return c.ConferenceID }
func (c MakeSeatsReservation) AggregateID() string { return c.ConferenceID }

func (CreateConference) isCommand()     {}
func (UpdateConference) isCommand()     {}
func (PublishConference) isCommand()    {}
func (AddSeatsToConference) isCommand() {}
func (MakeSeatsReservation) isCommand() {}
