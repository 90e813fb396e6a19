//go:build unit

package projections_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"conference-seats/internal/domain/conference"
	"conference-seats/internal/infra/eventstore"
	"conference-seats/internal/infra/projection"
	"conference-seats/internal/usecase/projections"
	"conference-seats/internal/usecase/shared"
	"conference-seats/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator() (*projections.ConferenceGenerator, *projection.MemoryRepository) {
	repo := projection.NewMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return projections.NewConferenceGenerator(repo, logger), repo
}

func TestGenerator_Apply(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2018, 4, 19, 9, 0, 0, 0, time.UTC)
	updatedAt := createdAt.Add(time.Hour)

	t.Run("作成イベントで行が生まれる", func(t *testing.T) {
		gen, repo := newGenerator()

		gen.Apply(ctx, conference.ConferenceCreated{Name: "MixIT 2018", Slug: "mix-it-18", At: createdAt})

		row, err := repo.Get(ctx, "mix-it-18")
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, shared.ConferenceProjection{
			Slug:       "mix-it-18",
			Name:       "MixIT 2018",
			LastUpdate: createdAt,
		}, *row)
	})

	t.Run("更新イベントで名前とLastUpdateが変わる", func(t *testing.T) {
		gen, repo := newGenerator()

		gen.Apply(ctx, conference.ConferenceCreated{Name: "MixIT 2018", Slug: "mix-it-18", At: createdAt})
		gen.Apply(ctx, conference.ConferenceUpdated{ID: "mix-it-18", Name: "MixIT 2019", At: updatedAt})

		row, err := repo.Get(ctx, "mix-it-18")
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "MixIT 2019", row.Name)
		assert.Equal(t, updatedAt, row.LastUpdate)
	})

	t.Run("行が無い更新は無視してクラッシュしない", func(t *testing.T) {
		gen, repo := newGenerator()

		assert.NotPanics(t, func() {
			gen.Apply(ctx, conference.ConferenceUpdated{ID: "ghost", Name: "x", At: updatedAt})
		})

		row, err := repo.Get(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, row, "a protocol violation must not conjure a row")
	})

	t.Run("席・予約イベントはこのプロジェクションに影響しない", func(t *testing.T) {
		gen, repo := newGenerator()
		gen.Apply(ctx, conference.ConferenceCreated{Name: "MixIT 2018", Slug: "mix-it-18", At: createdAt})

		for _, e := range builder.NewConferenceHistoryBuilder().
			WithSeats("Workshop", 10).
			Published().
			WithReservation("Workshop", 3).
			Build()[1:] {
			gen.Apply(ctx, e)
		}

		row, err := repo.Get(ctx, "mix-it-18")
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, createdAt, row.LastUpdate, "ignored events do not touch the row")
	})
}

func TestRebuilder(t *testing.T) {
	ctx := context.Background()
	store := eventstore.NewMemoryStore()

	first := builder.NewConferenceHistoryBuilder().WithSlug("devoxx-18").WithName("Devoxx 2018").Build()
	second := builder.NewConferenceHistoryBuilder().WithSeats("Workshop", 10).Published().Build()
	_, err := store.Append(ctx, "devoxx-18", 0, first)
	require.NoError(t, err)
	_, err = store.Append(ctx, "mix-it-18", 0, second)
	require.NoError(t, err)

	gen, repo := newGenerator()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rebuilder := projections.NewRebuilder(store, gen, logger)

	require.NoError(t, rebuilder.Rebuild(ctx))

	for _, slug := range []string{"devoxx-18", "mix-it-18"} {
		row, err := repo.Get(ctx, slug)
		require.NoError(t, err)
		require.NotNil(t, row, "rebuild recreates every row from the log")
	}
}
