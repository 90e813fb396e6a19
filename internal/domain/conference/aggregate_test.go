//go:build unit

package conference_test

import (
	"testing"
	"time"

	"conference-seats/internal/domain/conference"
	"conference-seats/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2018, 4, 20, 10, 0, 0, 0, time.UTC)

func TestReconstruct(t *testing.T) {
	t.Run("空の履歴はプログラマエラー", func(t *testing.T) {
		_, err := conference.Reconstruct(nil)
		require.ErrorIs(t, err, conference.ErrEmptyHistory)

		_, err = conference.Reconstruct([]conference.Event{})
		require.ErrorIs(t, err, conference.ErrEmptyHistory)
	})

	t.Run("履歴の左畳み込みで状態を再構築する", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().
			WithSeats("Workshop", 10).
			Published().
			WithReservation("Workshop", 7).
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "mix-it-18", agg.ID())
		assert.Equal(t, "MixIT 2018", agg.Name())
		assert.True(t, agg.Published())

		quota, known := agg.SeatQuota("Workshop")
		assert.True(t, known)
		assert.Equal(t, 10, quota)
		assert.Equal(t, 7, agg.Reserved("Workshop"))
	})

	t.Run("却下イベントは状態を変えない", func(t *testing.T) {
		history := builder.NewConferenceHistoryBuilder().
			WithSeats("Workshop", 10).
			Published().
			Build()
		history = append(history, conference.SeatsReservationRejected{
			ConferenceID: "mix-it-18",
			OrderID:      uuid.New(),
			SeatType:     "Workshop",
			Count:        4,
			At:           now,
		})

		agg, err := conference.Reconstruct(history)
		require.NoError(t, err)
		assert.Equal(t, 0, agg.Reserved("Workshop"))
	})
}

func TestCreate(t *testing.T) {
	events := conference.Create(conference.CreateConference{Name: "MixIT 2018", Slug: "mix-it-18"}, now)

	expected := []conference.Event{
		conference.ConferenceCreated{Name: "MixIT 2018", Slug: "mix-it-18", At: now},
	}
	if diff := cmp.Diff(expected, events); diff != "" {
		t.Errorf("Events mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	agg, err := builder.NewConferenceHistoryBuilder().BuildDomain()
	require.NoError(t, err)

	events := agg.Update(conference.UpdateConference{ID: "mix-it-18", Name: "MixIT 2019"}, now)

	require.Len(t, events, 1)
	assert.Equal(t, conference.ConferenceUpdated{ID: "mix-it-18", Name: "MixIT 2019", At: now}, events[0])
}

func TestPublish(t *testing.T) {
	t.Run("未公開なら公開イベントを発行する", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().BuildDomain()
		require.NoError(t, err)

		events := agg.Publish(conference.PublishConference{ID: "mix-it-18"}, now)

		require.Len(t, events, 1)
		assert.Equal(t, conference.ConferencePublished{ID: "mix-it-18", At: now}, events[0])
	})

	t.Run("公開済みなら何もしない", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().Published().BuildDomain()
		require.NoError(t, err)

		events := agg.Publish(conference.PublishConference{ID: "mix-it-18"}, now)
		assert.Empty(t, events)
	})
}

func TestAddSeats(t *testing.T) {
	t.Run("未知の席種は追加できる", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().BuildDomain()
		require.NoError(t, err)

		events := agg.AddSeats(conference.AddSeatsToConference{
			ConferenceID: "mix-it-18",
			SeatType:     "Workshop",
			Quota:        10,
		}, now)

		require.Len(t, events, 1)
		assert.Equal(t, conference.SeatsAdded{
			ConferenceID: "mix-it-18",
			SeatType:     "Workshop",
			Quota:        10,
			At:           now,
		}, events[0])
	})

	t.Run("既知の席種は破棄される", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().WithSeats("Workshop", 10).BuildDomain()
		require.NoError(t, err)

		events := agg.AddSeats(conference.AddSeatsToConference{
			ConferenceID: "mix-it-18",
			SeatType:     "Workshop",
			Quota:        50,
		}, now)
		assert.Empty(t, events)

		// quota must stay untouched
		quota, _ := agg.SeatQuota("Workshop")
		assert.Equal(t, 10, quota)
	})
}

func TestReserveSeats(t *testing.T) {
	orderID := uuid.New()

	reserve := func(count int) conference.MakeSeatsReservation {
		return conference.MakeSeatsReservation{
			OrderID:      orderID,
			ConferenceID: "mix-it-18",
			SeatType:     "Workshop",
			Count:        count,
		}
	}

	t.Run("残席があれば予約が成立する", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().
			WithSeats("Workshop", 10).
			Published().
			BuildDomain()
		require.NoError(t, err)

		events := agg.ReserveSeats(reserve(5), now)

		require.Len(t, events, 1)
		assert.Equal(t, conference.SeatsReserved{
			ConferenceID: "mix-it-18",
			OrderID:      orderID,
			SeatType:     "Workshop",
			Count:        5,
			At:           now,
		}, events[0])
	})

	t.Run("残席不足は却下イベントとして記録される", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().
			WithSeats("Workshop", 10).
			Published().
			WithReservation("Workshop", 7).
			BuildDomain()
		require.NoError(t, err)

		events := agg.ReserveSeats(reserve(4), now)

		require.Len(t, events, 1)
		rejected, ok := events[0].(conference.SeatsReservationRejected)
		require.True(t, ok)
		assert.Equal(t, "Workshop", rejected.SeatType)
		assert.Equal(t, 4, rejected.Count)
		assert.Equal(t, orderID, rejected.OrderID)
	})

	t.Run("未公開のカンファレンスは却下される", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().
			WithSeats("Workshop", 10).
			BuildDomain()
		require.NoError(t, err)

		events := agg.ReserveSeats(reserve(1), now)

		require.Len(t, events, 1)
		_, ok := events[0].(conference.SeatsReservationRejected)
		assert.True(t, ok)
	})

	t.Run("未知の席種は却下される", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().
			WithSeats("Workshop", 10).
			Published().
			BuildDomain()
		require.NoError(t, err)

		events := agg.ReserveSeats(conference.MakeSeatsReservation{
			OrderID:      orderID,
			ConferenceID: "mix-it-18",
			SeatType:     "Keynote",
			Count:        1,
		}, now)

		require.Len(t, events, 1)
		_, ok := events[0].(conference.SeatsReservationRejected)
		assert.True(t, ok)
	})

	t.Run("残数ちょうどの予約は成立する", func(t *testing.T) {
		agg, err := builder.NewConferenceHistoryBuilder().
			WithSeats("Workshop", 10).
			Published().
			WithReservation("Workshop", 7).
			BuildDomain()
		require.NoError(t, err)

		events := agg.ReserveSeats(reserve(3), now)

		require.Len(t, events, 1)
		_, ok := events[0].(conference.SeatsReserved)
		assert.True(t, ok)
	})
}
