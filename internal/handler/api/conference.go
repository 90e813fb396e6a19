package api

import (
	"errors"
	"net/http"

	"conference-seats/internal/domain/conference"
	reqdto "conference-seats/internal/handler/dto/request"
	resdto "conference-seats/internal/handler/dto/response"
	"conference-seats/internal/usecase/commands"
	"conference-seats/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ConferenceHandler struct {
	conferenceCommands commands.ConferenceCommands
	conferenceQueries  queries.ConferenceQueries
}

func NewConferenceHandler(
	conferenceCommands commands.ConferenceCommands,
	conferenceQueries queries.ConferenceQueries,
) *ConferenceHandler {
	return &ConferenceHandler{
		conferenceCommands: conferenceCommands,
		conferenceQueries:  conferenceQueries,
	}
}

// @Summary Create conference
// @Description Create a new conference identified by its slug
// @Tags conferences
// @Accept json
// @Produce json
// @Param request body reqdto.CreateConferenceRequest true "Conference to create"
// @Success 202
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /conferences [post]
func (h *ConferenceHandler) CreateConference(c *gin.Context) {
	var req reqdto.CreateConferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	h.handleCommand(c, req.ToCommand())
}

// @Summary Update conference
// @Description Rename an existing conference
// @Tags conferences
// @Accept json
// @Produce json
// @Param slug path string true "Conference slug"
// @Param request body reqdto.UpdateConferenceRequest true "New name"
// @Success 202
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /conferences/{slug} [patch]
func (h *ConferenceHandler) UpdateConference(c *gin.Context) {
	var req reqdto.UpdateConferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	h.handleCommand(c, req.ToCommand(c.Param("slug")))
}

// @Summary Publish conference
// @Description Open a conference for seat reservations
// @Tags conferences
// @Produce json
// @Param slug path string true "Conference slug"
// @Success 202
// @Failure 409 {object} map[string]string
// @Router /conferences/{slug}/publish [post]
func (h *ConferenceHandler) PublishConference(c *gin.Context) {
	h.handleCommand(c, conference.PublishConference{ID: c.Param("slug")})
}

// @Summary Add seats
// @Description Register a seat type with its quota
// @Tags conferences
// @Accept json
// @Produce json
// @Param slug path string true "Conference slug"
// @Param request body reqdto.AddSeatsRequest true "Seat type and quota"
// @Success 202
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /conferences/{slug}/seats [post]
func (h *ConferenceHandler) AddSeats(c *gin.Context) {
	var req reqdto.AddSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	h.handleCommand(c, req.ToCommand(c.Param("slug")))
}

// @Summary Make seats reservation
// @Description Reserve seats for an order; business rejections are recorded, not erred
// @Tags conferences
// @Accept json
// @Produce json
// @Param slug path string true "Conference slug"
// @Param request body reqdto.MakeReservationRequest true "Reservation request"
// @Success 202
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /conferences/{slug}/reservations [post]
func (h *ConferenceHandler) MakeReservation(c *gin.Context) {
	var req reqdto.MakeReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	h.handleCommand(c, req.ToCommand(c.Param("slug")))
}

// @Summary Get conference
// @Description Read the conference projection
// @Tags conferences
// @Produce json
// @Param slug path string true "Conference slug"
// @Success 200 {object} resdto.ConferenceResponse
// @Failure 404 {object} map[string]string
// @Router /conferences/{slug} [get]
func (h *ConferenceHandler) GetConference(c *gin.Context) {
	view, err := h.conferenceQueries.GetConference(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, queries.ErrConferenceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Conference not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromConferenceView(view))
}

// @Summary Seat availability
// @Description Remaining quota per seat type, derived from the event stream
// @Tags conferences
// @Produce json
// @Param slug path string true "Conference slug"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 404 {object} map[string]string
// @Router /conferences/{slug}/availability [get]
func (h *ConferenceHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	seats, err := h.conferenceCommands.Availability(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, commands.ErrConferenceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Conference not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailability(slug, seats))
}

// handleCommand funnels every write through the command handler. Accepted
// commands answer 202 whether or not they produced events: no-op discards
// and recorded rejections are successful outcomes by contract.
func (h *ConferenceHandler) handleCommand(c *gin.Context, cmd conference.Command) {
	if err := h.conferenceCommands.Handle(c.Request.Context(), cmd); err != nil {
		if errors.Is(err, commands.ErrRetryExhausted) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Conference is under heavy contention, retry later",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusAccepted)
}
