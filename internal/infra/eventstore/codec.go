package eventstore

import (
	"encoding/json"
	"time"

	"conference-seats/internal/domain/conference"
	"conference-seats/internal/pkg/errs"

	"github.com/google/uuid"
)

// Storage representation of one event row. The type column discriminates the
// variant; occurred_at is stored in its own column and injected back on
// decode so the payload never drifts from it.
const (
	typeConferenceCreated        = "conference_created"
	typeConferenceUpdated        = "conference_updated"
	typeConferencePublished      = "conference_published"
	typeSeatsAdded               = "seats_added"
	typeSeatsReserved            = "seats_reserved"
	typeSeatsReservationRejected = "seats_reservation_rejected"
)

type createdPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type updatedPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type publishedPayload struct {
	ID string `json:"id"`
}

type seatsAddedPayload struct {
	ConferenceID string `json:"conference_id"`
	SeatType     string `json:"seat_type"`
	Quota        int    `json:"quota"`
}

type reservationPayload struct {
	ConferenceID string    `json:"conference_id"`
	OrderID      uuid.UUID `json:"order_id"`
	SeatType     string    `json:"seat_type"`
	Count        int       `json:"count"`
}

func encodeEvent(e conference.Event) (eventType string, payload []byte, err error) {
	switch ev := e.(type) {
	case conference.ConferenceCreated:
		payload, err = json.Marshal(createdPayload{Name: ev.Name, Slug: ev.Slug})
		return typeConferenceCreated, payload, err
	case conference.ConferenceUpdated:
		payload, err = json.Marshal(updatedPayload{ID: ev.ID, Name: ev.Name})
		return typeConferenceUpdated, payload, err
	case conference.ConferencePublished:
		payload, err = json.Marshal(publishedPayload{ID: ev.ID})
		return typeConferencePublished, payload, err
	case conference.SeatsAdded:
		payload, err = json.Marshal(seatsAddedPayload{ConferenceID: ev.ConferenceID, SeatType: ev.SeatType, Quota: ev.Quota})
		return typeSeatsAdded, payload, err
	case conference.SeatsReserved:
		payload, err = json.Marshal(reservationPayload{ConferenceID: ev.ConferenceID, OrderID: ev.OrderID, SeatType: ev.SeatType, Count: ev.Count})
		return typeSeatsReserved, payload, err
	case conference.SeatsReservationRejected:
		payload, err = json.Marshal(reservationPayload{ConferenceID: ev.ConferenceID, OrderID: ev.OrderID, SeatType: ev.SeatType, Count: ev.Count})
		return typeSeatsReservationRejected, payload, err
	default:
		return "", nil, errs.New("eventstore: unknown event variant")
	}
}

func decodeEvent(eventType string, payload []byte, occurredAt time.Time) (conference.Event, error) {
	switch eventType {
	case typeConferenceCreated:
		var p createdPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.Wrap(err, "decode "+eventType)
		}
		return conference.ConferenceCreated{Name: p.Name, Slug: p.Slug, At: occurredAt}, nil
	case typeConferenceUpdated:
		var p updatedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.Wrap(err, "decode "+eventType)
		}
		return conference.ConferenceUpdated{ID: p.ID, Name: p.Name, At: occurredAt}, nil
	case typeConferencePublished:
		var p publishedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.Wrap(err, "decode "+eventType)
		}
		return conference.ConferencePublished{ID: p.ID, At: occurredAt}, nil
	case typeSeatsAdded:
		var p seatsAddedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.Wrap(err, "decode "+eventType)
		}
		return conference.SeatsAdded{ConferenceID: p.ConferenceID, SeatType: p.SeatType, Quota: p.Quota, At: occurredAt}, nil
	case typeSeatsReserved:
		var p reservationPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.Wrap(err, "decode "+eventType)
		}
		return conference.SeatsReserved{ConferenceID: p.ConferenceID, OrderID: p.OrderID, SeatType: p.SeatType, Count: p.Count, At: occurredAt}, nil
	case typeSeatsReservationRejected:
		var p reservationPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.Wrap(err, "decode "+eventType)
		}
		return conference.SeatsReservationRejected{ConferenceID: p.ConferenceID, OrderID: p.OrderID, SeatType: p.SeatType, Count: p.Count, At: occurredAt}, nil
	default:
		return nil, errs.New("eventstore: unknown event type " + eventType)
	}
}
