package response

import (
	"time"

	"conference-seats/internal/usecase/commands"
	"conference-seats/internal/usecase/queries"
)

type ConferenceResponse struct {
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	LastUpdate time.Time `json:"lastUpdate"`
}

type SeatAvailabilityResponse struct {
	SeatType  string `json:"seatType"`
	Quota     int    `json:"quota"`
	Reserved  int    `json:"reserved"`
	Remaining int    `json:"remaining"`
}

type AvailabilityResponse struct {
	Slug  string                     `json:"slug"`
	Seats []SeatAvailabilityResponse `json:"seats"`
}

func FromConferenceView(rm *queries.ConferenceView) *ConferenceResponse {
	return &ConferenceResponse{
		Slug:       rm.Slug,
		Name:       rm.Name,
		LastUpdate: rm.LastUpdate,
	}
}

func FromAvailability(slug string, seats []commands.SeatAvailability) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Slug:  slug,
		Seats: make([]SeatAvailabilityResponse, 0, len(seats)),
	}
	for _, s := range seats {
		out.Seats = append(out.Seats, SeatAvailabilityResponse{
			SeatType:  s.SeatType,
			Quota:     s.Quota,
			Reserved:  s.Reserved,
			Remaining: s.Remaining,
		})
	}
	return out
}
