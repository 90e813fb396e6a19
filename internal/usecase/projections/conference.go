package projections

import (
	"context"
	"log/slog"

	"conference-seats/internal/domain/conference"
	"conference-seats/internal/usecase/shared"
)

// ConferenceGenerator folds published events into the conference read model.
// It relies on the bus for at-most-once, per-stream in-order delivery;
// applying the same event twice would double-apply.
type ConferenceGenerator struct {
	repo   shared.ProjectionRepository
	logger *slog.Logger
}

func NewConferenceGenerator(repo shared.ProjectionRepository, logger *slog.Logger) *ConferenceGenerator {
	return &ConferenceGenerator{
		repo:   repo,
		logger: logger,
	}
}

// Apply updates the read model for one event. It never fails the delivery:
// a generator problem must not take down event distribution for other
// aggregates, so violations are logged and swallowed.
func (g *ConferenceGenerator) Apply(ctx context.Context, event conference.Event) {
	switch e := event.(type) {
	case conference.ConferenceCreated:
		row := shared.ConferenceProjection{
			Slug:       e.Slug,
			Name:       e.Name,
			LastUpdate: e.At,
		}
		if err := g.repo.Upsert(ctx, e.Slug, row); err != nil {
			g.logger.Error("failed to create projection row",
				slog.String("slug", e.Slug),
				slog.String("error", err.Error()))
		}
	case conference.ConferenceUpdated:
		row, err := g.repo.Get(ctx, e.ID)
		if err != nil {
			g.logger.Error("failed to read projection row",
				slog.String("slug", e.ID),
				slog.String("error", err.Error()))
			return
		}
		if row == nil {
			// Update before create breaks the per-stream ordering contract.
			g.logger.Warn("projection row missing for update, skipping",
				slog.String("slug", e.ID))
			return
		}
		row.Name = e.Name
		row.LastUpdate = e.At
		if err := g.repo.Upsert(ctx, e.ID, *row); err != nil {
			g.logger.Error("failed to update projection row",
				slog.String("slug", e.ID),
				slog.String("error", err.Error()))
		}
	default:
		// seat and reservation events do not affect this projection
	}
}

// Rebuilder replays the whole event log into a projection repository,
// reproducing the read model from scratch.
type Rebuilder struct {
	store     shared.EventStore
	generator *ConferenceGenerator
	logger    *slog.Logger
}

func NewRebuilder(store shared.EventStore, generator *ConferenceGenerator, logger *slog.Logger) *Rebuilder {
	return &Rebuilder{
		store:     store,
		generator: generator,
		logger:    logger,
	}
}

func (r *Rebuilder) Rebuild(ctx context.Context) error {
	events, err := r.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range events {
		r.generator.Apply(ctx, e)
	}
	r.logger.Info("projection rebuild complete", slog.Int("events", len(events)))
	return nil
}
