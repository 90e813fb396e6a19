//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conference-seats/internal/handler/api"
	"conference-seats/internal/infra/eventbus"
	"conference-seats/internal/infra/eventstore"
	"conference-seats/internal/infra/projection"
	"conference-seats/internal/pkg/clock"
	"conference-seats/internal/usecase/commands"
	"conference-seats/internal/usecase/projections"
	"conference-seats/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the whole write and read side in memory, exactly as
// the fx modules do in production but without the DB.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := eventstore.NewMemoryStore()
	bus := eventbus.NewInProcessBus()
	repo := projection.NewMemoryRepository()

	generator := projections.NewConferenceGenerator(repo, logger)
	bus.Subscribe(generator.Apply)

	handler := api.NewConferenceHandler(
		commands.NewConferenceCommands(store, bus, clock.NewMockClock(time.Date(2018, 4, 20, 10, 0, 0, 0, time.UTC)), logger),
		queries.NewConferenceQueries(repo),
	)

	engine := gin.New()
	conferences := engine.Group("/api/conferences")
	conferences.POST("", handler.CreateConference)
	conferences.GET("/:slug", handler.GetConference)
	conferences.PATCH("/:slug", handler.UpdateConference)
	conferences.POST("/:slug/publish", handler.PublishConference)
	conferences.POST("/:slug/seats", handler.AddSeats)
	conferences.POST("/:slug/reservations", handler.MakeReservation)
	conferences.GET("/:slug/availability", handler.Availability)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestConferenceAPI_CreateAndRead(t *testing.T) {
	engine := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/conferences", gin.H{
		"name": "MixIT 2018",
		"slug": "mix-it-18",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/conferences/mix-it-18", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mix-it-18", resp.Slug)
	assert.Equal(t, "MixIT 2018", resp.Name)
}

func TestConferenceAPI_GetUnknownConference(t *testing.T) {
	engine := newTestRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/api/conferences/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConferenceAPI_CreateValidation(t *testing.T) {
	engine := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/conferences", gin.H{"name": "MixIT 2018"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConferenceAPI_UpdatePropagatesToProjection(t *testing.T) {
	engine := newTestRouter(t)

	require.Equal(t, http.StatusAccepted, doJSON(t, engine, http.MethodPost, "/api/conferences", gin.H{
		"name": "MixIT 2018",
		"slug": "mix-it-18",
	}).Code)

	require.Equal(t, http.StatusAccepted, doJSON(t, engine, http.MethodPatch, "/api/conferences/mix-it-18", gin.H{
		"name": "MixIT 2019",
	}).Code)

	w := doJSON(t, engine, http.MethodGet, "/api/conferences/mix-it-18", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MixIT 2019", resp.Name)
}

func TestConferenceAPI_ReservationFlow(t *testing.T) {
	engine := newTestRouter(t)

	require.Equal(t, http.StatusAccepted, doJSON(t, engine, http.MethodPost, "/api/conferences", gin.H{
		"name": "MixIT 2018",
		"slug": "mix-it-18",
	}).Code)
	require.Equal(t, http.StatusAccepted, doJSON(t, engine, http.MethodPost, "/api/conferences/mix-it-18/seats", gin.H{
		"seatType": "Workshop",
		"quota":    10,
	}).Code)
	require.Equal(t, http.StatusAccepted, doJSON(t, engine, http.MethodPost, "/api/conferences/mix-it-18/publish", nil).Code)

	require.Equal(t, http.StatusAccepted, doJSON(t, engine, http.MethodPost, "/api/conferences/mix-it-18/reservations", gin.H{
		"orderId":  uuid.New().String(),
		"seatType": "Workshop",
		"count":    7,
	}).Code)

	// a rejected reservation is still an accepted command
	require.Equal(t, http.StatusAccepted, doJSON(t, engine, http.MethodPost, "/api/conferences/mix-it-18/reservations", gin.H{
		"orderId":  uuid.New().String(),
		"seatType": "Workshop",
		"count":    4,
	}).Code)

	w := doJSON(t, engine, http.MethodGet, "/api/conferences/mix-it-18/availability", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Slug  string `json:"slug"`
		Seats []struct {
			SeatType  string `json:"seatType"`
			Quota     int    `json:"quota"`
			Reserved  int    `json:"reserved"`
			Remaining int    `json:"remaining"`
		} `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Seats, 1)
	assert.Equal(t, 10, resp.Seats[0].Quota)
	assert.Equal(t, 7, resp.Seats[0].Reserved, "the rejected reservation must not consume quota")
	assert.Equal(t, 3, resp.Seats[0].Remaining)
}

func TestConferenceAPI_ReservationAgainstUnknownConference(t *testing.T) {
	engine := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/conferences/ghost/reservations", gin.H{
		"orderId":  uuid.New().String(),
		"seatType": "Workshop",
		"count":    1,
	})
	assert.Equal(t, http.StatusAccepted, w.Code, "discarded commands still answer success")

	w = doJSON(t, engine, http.MethodGet, "/api/conferences/ghost/availability", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "the discard left no stream behind")
}
