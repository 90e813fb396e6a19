package builder

import (
	"time"

	"conference-seats/internal/domain/conference"

	"github.com/google/uuid"
)

// ConferenceHistoryBuilder assembles event histories for tests. Defaults
// describe a freshly created conference; chain the With methods to grow the
// stream in causal order.
type ConferenceHistoryBuilder struct {
	slug   string
	name   string
	at     time.Time
	events []conference.Event
}

func NewConferenceHistoryBuilder() *ConferenceHistoryBuilder {
	b := &ConferenceHistoryBuilder{
		slug: "mix-it-18",
		name: "MixIT 2018",
		at:   time.Date(2018, 4, 19, 9, 0, 0, 0, time.UTC),
	}
	b.events = []conference.Event{
		conference.ConferenceCreated{Name: b.name, Slug: b.slug, At: b.at},
	}
	return b
}

func (b *ConferenceHistoryBuilder) WithSlug(slug string) *ConferenceHistoryBuilder {
	b.slug = slug
	b.events[0] = conference.ConferenceCreated{Name: b.name, Slug: slug, At: b.at}
	return b
}

func (b *ConferenceHistoryBuilder) WithName(name string) *ConferenceHistoryBuilder {
	b.name = name
	b.events[0] = conference.ConferenceCreated{Name: name, Slug: b.slug, At: b.at}
	return b
}

func (b *ConferenceHistoryBuilder) WithSeats(seatType string, quota int) *ConferenceHistoryBuilder {
	b.at = b.at.Add(time.Minute)
	b.events = append(b.events, conference.SeatsAdded{
		ConferenceID: b.slug,
		SeatType:     seatType,
		Quota:        quota,
		At:           b.at,
	})
	return b
}

func (b *ConferenceHistoryBuilder) Published() *ConferenceHistoryBuilder {
	b.at = b.at.Add(time.Minute)
	b.events = append(b.events, conference.ConferencePublished{ID: b.slug, At: b.at})
	return b
}

func (b *ConferenceHistoryBuilder) WithReservation(seatType string, count int) *ConferenceHistoryBuilder {
	b.at = b.at.Add(time.Minute)
	b.events = append(b.events, conference.SeatsReserved{
		ConferenceID: b.slug,
		OrderID:      uuid.New(),
		SeatType:     seatType,
		Count:        count,
		At:           b.at,
	})
	return b
}

func (b *ConferenceHistoryBuilder) Build() []conference.Event {
	out := make([]conference.Event, len(b.events))
	copy(out, b.events)
	return out
}

func (b *ConferenceHistoryBuilder) Slug() string {
	return b.slug
}

// BuildDomain replays the built history into an aggregate.
func (b *ConferenceHistoryBuilder) BuildDomain() (*conference.Conference, error) {
	return conference.Reconstruct(b.Build())
}
