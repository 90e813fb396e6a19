package request

import (
	"strings"

	"conference-seats/internal/domain/conference"

	"github.com/google/uuid"
)

type CreateConferenceRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

func (r CreateConferenceRequest) ToCommand() conference.CreateConference {
	return conference.CreateConference{
		Name: strings.TrimSpace(r.Name),
		Slug: strings.TrimSpace(r.Slug),
	}
}

type UpdateConferenceRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r UpdateConferenceRequest) ToCommand(slug string) conference.UpdateConference {
	return conference.UpdateConference{
		ID:   slug,
		Name: strings.TrimSpace(r.Name),
	}
}

type AddSeatsRequest struct {
	SeatType string `json:"seatType" binding:"required"`
	Quota    int    `json:"quota" binding:"required,gt=0"`
}

func (r AddSeatsRequest) ToCommand(slug string) conference.AddSeatsToConference {
	return conference.AddSeatsToConference{
		ConferenceID: slug,
		SeatType:     strings.TrimSpace(r.SeatType),
		Quota:        r.Quota,
	}
}

type MakeReservationRequest struct {
	OrderID  uuid.UUID `json:"orderId" binding:"required"`
	SeatType string    `json:"seatType" binding:"required"`
	Count    int       `json:"count" binding:"required,gt=0"`
}

func (r MakeReservationRequest) ToCommand(slug string) conference.MakeSeatsReservation {
	return conference.MakeSeatsReservation{
		OrderID:      r.OrderID,
		ConferenceID: slug,
		SeatType:     strings.TrimSpace(r.SeatType),
		Count:        r.Count,
	}
}
