package eventstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"conference-seats/internal/domain/conference"
	"conference-seats/internal/infra"
	"conference-seats/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresStore persists streams in conference_events. Versions are 1-based
// and dense per stream; UNIQUE (stream_id, version) makes the database the
// final arbiter between concurrent appenders.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		logger: logger,
	}
}

func (s *PostgresStore) LoadHistory(ctx context.Context, id string) ([]conference.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT event_type, payload, occurred_at
		   FROM conference_events
		  WHERE stream_id = $1
		  ORDER BY version`, id)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to load stream", err)
	}
	defer rows.Close()

	return s.collectEvents(rows)
}

func (s *PostgresStore) Append(ctx context.Context, id string, expectedVersion int, events []conference.Event) (int, error) {
	if len(events) == 0 {
		return 0, errs.New("eventstore: append called with no events")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to begin append transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// The count check catches a stream that moved backwards relative to the
	// caller's read; the unique index catches the race between two appenders
	// that both passed it.
	var current int
	err = tx.QueryRow(ctx,
		`SELECT count(*) FROM conference_events WHERE stream_id = $1`, id).Scan(&current)
	if err != nil {
		return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read stream version", err)
	}
	if current != expectedVersion {
		return 0, errs.Mark(
			errs.New("eventstore: stream moved past expected version"),
			errs.ErrConcurrencyConflict,
		)
	}

	version := expectedVersion
	for _, e := range events {
		eventType, payload, encErr := encodeEvent(e)
		if encErr != nil {
			return 0, encErr
		}
		version++
		_, err = tx.Exec(ctx,
			`INSERT INTO conference_events (stream_id, version, event_type, payload, occurred_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, version, eventType, payload, e.OccurredAt())
		if err != nil {
			if isUniqueViolation(err) {
				return 0, errs.Mark(
					errs.New("eventstore: concurrent append to stream"),
					errs.ErrConcurrencyConflict,
				)
			}
			return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to append event", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to commit append", err)
	}
	return version, nil
}

func (s *PostgresStore) LoadAll(ctx context.Context) ([]conference.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT event_type, payload, occurred_at
		   FROM conference_events
		  ORDER BY position`)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to load event log", err)
	}
	defer rows.Close()

	return s.collectEvents(rows)
}

func (s *PostgresStore) collectEvents(rows pgx.Rows) ([]conference.Event, error) {
	var out []conference.Event
	for rows.Next() {
		var (
			eventType string
			payload   []byte
			occurred  time.Time
		)
		if err := rows.Scan(&eventType, &payload, &occurred); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan event row", err)
		}
		ev, err := decodeEvent(eventType, payload, occurred)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate event rows", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
