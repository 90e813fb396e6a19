package projection

import (
	"context"
	"errors"
	"log/slog"

	"conference-seats/internal/infra"
	"conference-seats/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores read-model rows in conference_projections.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresRepository(pool *pgxpool.Pool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*shared.ConferenceProjection, error) {
	var row shared.ConferenceProjection
	err := r.pool.QueryRow(ctx,
		`SELECT slug, name, last_update
		   FROM conference_projections
		  WHERE slug = $1`, id).Scan(&row.Slug, &row.Name, &row.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get projection", err)
	}
	return &row, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, id string, projection shared.ConferenceProjection) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO conference_projections (slug, name, last_update)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (slug) DO UPDATE
		    SET name = EXCLUDED.name, last_update = EXCLUDED.last_update`,
		id, projection.Name, projection.LastUpdate)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to upsert projection", err)
	}
	return nil
}
